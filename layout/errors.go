package layout

import "errors"

var (
	ErrSizeMismatch      = errors.New("member list does not indicate correct size for record")
	ErrAlignMismatch     = errors.New("member list does not indicate correct alignment for record")
	ErrOffsetMismatch    = errors.New("member list does not indicate correct offsets for record")
	ErrQualifiedRecord   = errors.New("record must be a struct type, not a pointer or other kind")
	ErrUnsupportedMember = errors.New("unsupported member type")
)
