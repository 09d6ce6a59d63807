package manifest

import (
	"strings"
)

// CurrentVersion is the only manifest schema version understood.
const CurrentVersion = "1"

// Manifest represents the root of a manifest file.
type Manifest struct {
	// Version of the manifest schema (for future compatibility).
	Version string `toml:"version,omitempty" yaml:"version,omitempty"`

	// Packages are the package patterns to load, relative to Dir.
	Packages []string `toml:"packages,omitempty" yaml:"packages,omitempty"`

	// Records lists the records to generate field views for.
	Records []RecordSpec `toml:"records" yaml:"records"`

	// Dir is the directory the manifest was loaded from.
	Dir string `toml:"-" yaml:"-"`
}

// RecordSpec describes one record.
type RecordSpec struct {
	// Type identifier (e.g., "store.Order", a full import path, or a bare name).
	Type string `toml:"type" yaml:"type"`

	// Name is the identifier stem for generated declarations. Defaults to the type name.
	Name string `toml:"name,omitempty" yaml:"name,omitempty"`

	// Members optionally declares the member types in declaration order.
	// Each entry is a Go type expression evaluated in the record's package.
	Members []string `toml:"members,omitempty" yaml:"members,omitempty"`

	// Output overrides the directory the generated file is written to.
	// Outside the record's package directory, the file declares a package of
	// its own named after the directory and imports the record's package.
	Output string `toml:"output,omitempty" yaml:"output,omitempty"`

	// ReadOnly omits every mutable accessor from the generated code.
	ReadOnly bool `toml:"readonly,omitempty" yaml:"readonly,omitempty"`
}

// TypeName returns the last segment of Type ("Order" for "structview/store.Order").
func (r *RecordSpec) TypeName() string {
	if i := strings.LastIndex(r.Type, "."); i >= 0 {
		return r.Type[i+1:]
	}

	return r.Type
}

// Identifier returns Name, or the type name when Name is empty.
func (r *RecordSpec) Identifier() string {
	if r.Name != "" {
		return r.Name
	}

	return r.TypeName()
}

// HasMembers reports whether the member list was declared.
func (r *RecordSpec) HasMembers() bool {
	return r.Members != nil
}
