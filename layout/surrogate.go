package layout

import (
	"fmt"
	"reflect"
	"strconv"
)

// Surrogate is a struct type whose i-th field is a cell with the size and alignment
// of the i-th member type. It has the same size, alignment and field offsets as any
// record with those member types.
type Surrogate struct {
	typ     reflect.Type
	offsets []uintptr
}

// NewSurrogate builds the surrogate for members and measures its offsets.
func NewSurrogate(members []reflect.Type) (*Surrogate, error) {
	fields := make([]reflect.StructField, len(members))

	for i, m := range members {
		if m == nil {
			return nil, fmt.Errorf("%w: member %d is nil", ErrUnsupportedMember, i)
		}

		cell, err := CellOf(m.Size(), uintptr(m.Align()))
		if err != nil {
			return nil, fmt.Errorf("member %d (%s): %w", i, m, err)
		}

		fields[i] = reflect.StructField{Name: "F" + strconv.Itoa(i), Type: cell}
	}

	typ := reflect.StructOf(fields)

	return &Surrogate{typ: typ, offsets: offsetsOf(typ)}, nil
}

// offsetsOf measures every field offset as the byte difference between the field's
// address and the address of a scratch value. Only the differences outlive the call.
func offsetsOf(typ reflect.Type) []uintptr {
	scratch := reflect.New(typ).Elem()
	base := uintptr(scratch.Addr().UnsafePointer())

	offsets := make([]uintptr, typ.NumField())
	for i := range offsets {
		offsets[i] = uintptr(scratch.Field(i).Addr().UnsafePointer()) - base
	}

	return offsets
}

func (s *Surrogate) Type() reflect.Type { return s.typ }

func (s *Surrogate) Len() int { return len(s.offsets) }

func (s *Surrogate) Size() uintptr { return s.typ.Size() }

func (s *Surrogate) Align() uintptr { return uintptr(s.typ.Align()) }

// Offset returns the byte offset of cell i.
func (s *Surrogate) Offset(i int) uintptr { return s.offsets[i] }
