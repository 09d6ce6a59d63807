package diagnostic

//go:generate go tool stringer -type=Code -linecomment -output=code_string.go

// Code identifies a kind of diagnostic.
type Code int

const (
	CodeNone                Code = iota // none
	CodeInvalidManifest                 // invalid_manifest
	CodeRecordNotFound                  // record_not_found
	CodeQualifiedRecord                 // qualified_record
	CodeNotAStruct                      // not_a_struct
	CodeZeroSizeMember                  // zero_size_member
	CodeBlankField                      // blank_field
	CodeUnexportedField                 // unexported_field
	CodeMemberCountMismatch             // member_count_mismatch
	CodeMemberTypeMismatch              // member_type_mismatch
	CodeInvalidMember                   // invalid_member
	CodeSizeMismatch                    // size_mismatch
	CodeAlignMismatch                   // align_mismatch
	CodeOffsetMismatch                  // offset_mismatch
	CodeWideRecord                      // wide_record
	CodeDuplicateRecord                 // duplicate_record
)
