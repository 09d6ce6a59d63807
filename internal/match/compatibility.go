package match

import (
	"fmt"
	"go/types"
)

// MemberCompatibility represents how a declared member relates to the field it covers.
type MemberCompatibility int

const (
	// MemberIncompatible means the member describes different storage than the field.
	MemberIncompatible MemberCompatibility = iota
	// MemberLayoutCompatible means size and alignment agree but the types differ,
	// so the view reinterprets the field's bytes.
	MemberLayoutCompatible
	// MemberIdentical means the member is the field's own type.
	MemberIdentical
)

const (
	VerdictIdentical        = "identical"
	VerdictLayoutCompatible = "layout_compatible"
	VerdictIncompatible     = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c MemberCompatibility) String() string {
	switch c {
	case MemberIdentical:
		return VerdictIdentical
	case MemberLayoutCompatible:
		return VerdictLayoutCompatible
	case MemberIncompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// MemberCompatibilityResult contains detailed information about a member/field pair.
type MemberCompatibilityResult struct {
	Compatibility MemberCompatibility
	Reason        string // Human-readable explanation
	MemberType    string
	FieldType     string
}

// ScoreMemberCompatibility compares a declared member type with a field type
// under the given layout model.
func ScoreMemberCompatibility(member, field types.Type, sizes types.Sizes) MemberCompatibilityResult {
	res := MemberCompatibilityResult{
		MemberType: member.String(),
		FieldType:  field.String(),
	}

	if types.Identical(member, field) {
		res.Compatibility = MemberIdentical
		res.Reason = "types are identical"

		return res
	}

	ms, fs := sizes.Sizeof(member), sizes.Sizeof(field)
	ma, fa := sizes.Alignof(member), sizes.Alignof(field)

	switch {
	case ms != fs:
		res.Compatibility = MemberIncompatible
		res.Reason = fmt.Sprintf("member is %d bytes, field is %d bytes", ms, fs)
	case ma != fa:
		res.Compatibility = MemberIncompatible
		res.Reason = fmt.Sprintf("member is aligned to %d, field to %d", ma, fa)
	case ContainsPointers(member) || ContainsPointers(field):
		res.Compatibility = MemberIncompatible
		res.Reason = "the types differ and one of them holds pointers"
	default:
		res.Compatibility = MemberLayoutCompatible
		res.Reason = fmt.Sprintf("both are %d bytes aligned to %d; the field is viewed as %s", ms, ma, res.MemberType)
	}

	return res
}

// ContainsPointers reports whether values of t hold words the garbage collector
// scans as pointers. Such words may only be viewed through their own type.
func ContainsPointers(t types.Type) bool {
	switch u := t.Underlying().(type) {
	case *types.Basic:
		return u.Kind() == types.String || u.Kind() == types.UnsafePointer
	case *types.Array:
		return u.Len() > 0 && ContainsPointers(u.Elem())
	case *types.Struct:
		for i := range u.NumFields() {
			if ContainsPointers(u.Field(i).Type()) {
				return true
			}
		}

		return false
	default:
		// Pointers, slices, maps, channels, functions and interfaces.
		return true
	}
}
