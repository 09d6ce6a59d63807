package layout

import (
	"fmt"
	"reflect"
	"slices"
	"unsafe"
)

// Getter yields the i-th element of a container as a reference of type R.
type Getter[C, R any] interface {
	Get(c C, i int) R
}

// Accessor is a Getter that knows its arity.
type Accessor[C, R any] interface {
	Getter[C, R]
	Len() int
}

// OffsetGetter reads the fields of a record U through byte offsets measured on the
// Surrogate of its member list.
type OffsetGetter[U any] struct {
	record  reflect.Type
	members []reflect.Type
	offsets []uintptr
}

// NewOffsetGetter checks that members describe the layout of U and returns its getter.
//
// U must be a struct type. The surrogate built from members must have U's size and
// alignment; when members has one entry per field of U, every offset must match too.
// A member may differ from its field only when neither type holds pointers, and a
// view with a different member count needs a pointer-free record and members.
func NewOffsetGetter[U any](members ...reflect.Type) (*OffsetGetter[U], error) {
	record := reflect.TypeFor[U]()
	if record.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is a %s; strip it before building a getter",
			ErrQualifiedRecord, record, record.Kind())
	}

	surrogate, err := NewSurrogate(members)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", record, err)
	}

	if surrogate.Size() != record.Size() {
		return nil, fmt.Errorf("%w: record %s is %d bytes, its %d members describe %d bytes",
			ErrSizeMismatch, record, record.Size(), len(members), surrogate.Size())
	}

	if surrogate.Align() != uintptr(record.Align()) {
		return nil, fmt.Errorf("%w: record %s is aligned to %d, its members describe %d",
			ErrAlignMismatch, record, record.Align(), surrogate.Align())
	}

	// The garbage collector scans a record by its own field types, so a member may
	// only reinterpret bytes that hold no pointers on either side.
	if record.NumField() == len(members) {
		for i, off := range surrogate.offsets {
			f := record.Field(i)
			if f.Offset != off {
				return nil, fmt.Errorf("%w: record %s field %s is at %d, member %d describes %d",
					ErrOffsetMismatch, record, f.Name, f.Offset, i, off)
			}

			if m := members[i]; m != f.Type && (hasPointers(m) || hasPointers(f.Type)) {
				return nil, fmt.Errorf("%w: member %d (%s) reinterprets field %s (%s) and one of them holds pointers",
					ErrUnsupportedMember, i, m, f.Name, f.Type)
			}
		}
	} else {
		if hasPointers(record) {
			return nil, fmt.Errorf("%w: record %s holds pointers and has %d fields, not %d members",
				ErrUnsupportedMember, record, record.NumField(), len(members))
		}

		for i, m := range members {
			if hasPointers(m) {
				return nil, fmt.Errorf("%w: member %d (%s) holds pointers and does not pair with a field of %s",
					ErrUnsupportedMember, i, m, record)
			}
		}
	}

	return &OffsetGetter[U]{
		record:  record,
		members: slices.Clone(members),
		offsets: surrogate.offsets,
	}, nil
}

// MustOffsetGetter is like NewOffsetGetter but panics on error.
func MustOffsetGetter[U any](members ...reflect.Type) *OffsetGetter[U] {
	g, err := NewOffsetGetter[U](members...)
	if err != nil {
		panic(err)
	}

	return g
}

// For builds the getter of U from its reflected fields.
func For[U any]() (*OffsetGetter[U], error) {
	return NewOffsetGetter[U](MembersOf[U]()...)
}

func (g *OffsetGetter[U]) Record() reflect.Type { return g.record }

func (g *OffsetGetter[U]) Len() int { return len(g.members) }

func (g *OffsetGetter[U]) Members() []reflect.Type { return slices.Clone(g.members) }

func (g *OffsetGetter[U]) Offset(i int) uintptr { return g.offsets[i] }

// Get returns a reference to field i of *u. It panics if i is out of range.
func (g *OffsetGetter[U]) Get(u *U, i int) Ref {
	return Ref{ptr: unsafe.Add(unsafe.Pointer(u), g.offsets[i]), typ: g.members[i]}
}

// Const returns the read-only view of g.
func (g *OffsetGetter[U]) Const() ConstOffsetGetter[U] {
	return ConstOffsetGetter[U]{g: g}
}

// ConstOffsetGetter is the read-only counterpart of OffsetGetter.
type ConstOffsetGetter[U any] struct {
	g *OffsetGetter[U]
}

func (c ConstOffsetGetter[U]) Len() int { return c.g.Len() }

func (c ConstOffsetGetter[U]) Get(u *U, i int) ConstRef {
	return c.g.Get(u, i).Const()
}

// hasPointers reports whether values of t contain words the garbage collector
// treats as pointers.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func,
		reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
	}

	return false
}
