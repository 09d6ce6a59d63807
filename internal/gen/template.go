package gen

import (
	"text/template"
)

// Header starts every generated file.
const Header = "// Code generated by structview. DO NOT EDIT."

// templateData holds all data needed for the record template.
type templateData struct {
	Header      string
	PackageName string
	Imports     []importSpec
	// Record is the record type as spelled in the file ("Order" or "store.Order").
	Record     string
	Identifier string
	Layout     string // Local name of the layout package
	Size       uintptr
	Align      uintptr
	Offsets    []offsetAssertion
	Members    []memberData
	ReadOnly   bool
}

// offsetAssertion pins one field offset at compile time.
type offsetAssertion struct {
	Field  string
	Offset uintptr
}

// memberData describes one member accessor.
type memberData struct {
	Index  int
	Type   string
	Access string // Expression of type *Type given r
	Value  string // Expression of type Type given r
	Field  string // Field the member covers, if any
}

var recordTemplate = template.Must(template.New("record").Parse(`{{.Header}}

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

func _() {
	// An "invalid array index" compiler error signifies that the layout of {{.Record}} has changed.
	// Re-run structview to generate this file again.
	var x [1]struct{}
	_ = x[unsafe.Sizeof({{.Record}}{})-{{.Size}}]
	_ = x[unsafe.Alignof({{.Record}}{})-{{.Align}}]
{{range .Offsets}}	_ = x[unsafe.Offsetof({{$.Record}}{}.{{.Field}})-{{.Offset}}]
{{end}}}

// {{.Identifier}}Members returns the member types of {{.Record}} in declaration order.
func {{.Identifier}}Members() []reflect.Type {
	return []reflect.Type{{"{"}}{{range .Members}}
		reflect.TypeFor[{{.Type}}](),{{end}}{{if .Members}}
	{{end}}}
}
{{range .Members}}
// {{$.Identifier}}Field{{.Index}} {{if $.ReadOnly}}returns{{else}}points at{{end}} member {{.Index}} of r{{if .Field}} ({{.Field}}){{end}}.
{{if $.ReadOnly}}func {{$.Identifier}}Field{{.Index}}(r *{{$.Record}}) {{.Type}} {
	return {{.Value}}
}
{{else}}func {{$.Identifier}}Field{{.Index}}(r *{{$.Record}}) *{{.Type}} {
	return {{.Access}}
}
{{end}}{{end}}
{{if .ReadOnly}}
// {{.Identifier}}ConstGetter reads the members of {{.Record}} by index.
var {{.Identifier}}ConstGetter = {{.Layout}}.MustOffsetGetter[{{.Record}}]({{.Identifier}}Members()...).Const()
{{else}}
// {{.Identifier}}Getter projects the members of {{.Record}} by index.
var {{.Identifier}}Getter = {{.Layout}}.MustOffsetGetter[{{.Record}}]({{.Identifier}}Members()...)

// {{.Identifier}}ConstGetter is the read-only view of {{.Identifier}}Getter.
var {{.Identifier}}ConstGetter = {{.Identifier}}Getter.Const()

// Flatten{{.Identifier}} ties every member of r, in order.
func Flatten{{.Identifier}}(r *{{.Record}}) {{.Layout}}.Tuple[{{.Layout}}.Ref] {
	return {{.Layout}}.Tie[{{.Layout}}.Ref]({{range .Members}}
		{{$.Layout}}.RefOf({{.Access}}),{{end}}{{if .Members}}
	{{end}})
}
{{end}}
// FlattenConst{{.Identifier}} ties every member of r, in order, for reading.
func FlattenConst{{.Identifier}}(r *{{.Record}}) {{.Layout}}.Tuple[{{.Layout}}.ConstRef] {
	return {{.Layout}}.Tie[{{.Layout}}.ConstRef]({{range .Members}}
		{{$.Layout}}.RefOf({{.Access}}).Const(),{{end}}{{if .Members}}
	{{end}})
}
`))
