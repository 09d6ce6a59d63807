package plan

import (
	"go/types"

	"structview/internal/analyze"
	"structview/internal/diagnostic"
	"structview/internal/manifest"
	"structview/internal/match"
)

// Plan is the final output of the resolution pipeline.
type Plan struct {
	// Records holds every record that resolved without errors, in manifest order.
	Records []RecordPlan
	// TypeGraph holds all analyzed types and packages.
	TypeGraph *analyze.TypeGraph
	// Diagnostics contains all findings from resolution.
	Diagnostics diagnostic.Diagnostics
}

// RecordPlan is a fully resolved record.
type RecordPlan struct {
	// Spec is the manifest entry this record came from.
	Spec manifest.RecordSpec
	// Type is the record's struct type.
	Type *analyze.TypeInfo
	// Package declares the record.
	Package *analyze.PackageInfo
	// Identifier is the stem of every generated declaration.
	Identifier string
	// Members is the member list in declaration order.
	Members []Member
	// Declared is true when the manifest listed the members explicitly.
	Declared bool
	// OutputDir is the directory the generated file goes to.
	OutputDir string
	// OutputPackage is the package name of the generated file.
	OutputPackage string
	// OutputPkgPath is the import path of the output package when it was loaded.
	OutputPkgPath string
	// External is true when the generated file is not part of the record's package.
	External bool
	// ReadOnly omits mutable accessors.
	ReadOnly bool
}

// Member is one entry of a record's member list.
type Member struct {
	// Index in the member list.
	Index int
	// Type of the member.
	Type types.Type
	// Offset, Size and Align come from the surrogate.
	Offset uintptr
	Size   uintptr
	Align  uintptr
	// Field is the record field this member covers, when members and fields pair up one to one.
	Field *analyze.FieldInfo
	// Compatibility of Type with Field's type; MemberIncompatible when Field is nil.
	Compatibility match.MemberCompatibility
}

// Selectable reports whether generated code may name the member's field directly.
func (m *Member) Selectable(external bool) bool {
	if m.Field == nil || m.Field.IsBlank() || m.Compatibility != match.MemberIdentical {
		return false
	}

	return m.Field.Exported || !external
}

// IsFlatView reports whether the members describe the record's bytes without
// pairing up with its fields.
func (p *RecordPlan) IsFlatView() bool {
	return len(p.Members) != len(p.Type.Fields)
}

// Name is the record's type name.
func (p *RecordPlan) Name() string {
	return p.Type.ID.Name
}

// FileName is the base name of the generated file.
func (p *RecordPlan) FileName() string {
	return toSnake(p.Identifier) + "_fields.go"
}
