package analyze

import (
	"go/types"
	"strconv"
	"strings"
)

// TypePath builds a readable path string for a record member.
// Examples:
//   - "Order" for a record
//   - "Order.Items" for a field
//   - "Order.#2" for the third declared member
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Member appends a positional member index to the path.
func (p *TypePath) Member(i int) *TypePath {
	return p.Field("#" + strconv.Itoa(i))
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// TypeStringer renders types relative to one package.
type TypeStringer struct {
	pkg *types.Package
}

// NewTypeStringer creates a TypeStringer that omits the qualifier of pkg.
// A nil pkg qualifies every named type with its package name.
func NewTypeStringer(pkg *types.Package) *TypeStringer {
	return &TypeStringer{pkg: pkg}
}

// TypeString returns the Go spelling of a TypeInfo.
func (s *TypeStringer) TypeString(t *TypeInfo) string {
	if t == nil || t.GoType == nil {
		return "<nil>"
	}

	return types.TypeString(t.GoType, s.qualifier)
}

func (s *TypeStringer) qualifier(other *types.Package) string {
	if s.pkg != nil && other.Path() == s.pkg.Path() {
		return ""
	}

	return other.Name()
}

// LayoutString returns a one-line layout summary, e.g. "size=24 align=8".
func LayoutString(t *TypeInfo) string {
	return "size=" + strconv.FormatUint(uint64(t.Size), 10) +
		" align=" + strconv.FormatUint(uint64(t.Align), 10)
}
