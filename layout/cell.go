package layout

import (
	"fmt"
	"reflect"
)

// alignCarriers are zero-length array element candidates that force a cell's alignment.
var alignCarriers = []reflect.Type{
	reflect.TypeFor[uint8](),
	reflect.TypeFor[uint16](),
	reflect.TypeFor[uint32](),
	reflect.TypeFor[uint64](),
	reflect.TypeFor[complex128](),
}

var byteType = reflect.TypeFor[byte]()

func alignCarrier(align uintptr) reflect.Type {
	for _, t := range alignCarriers {
		if uintptr(t.Align()) == align {
			return t
		}
	}

	return nil
}

// CellOf returns an opaque cell type of the given size and alignment:
//
//	struct {
//		A [0]alignT
//		B [size]byte
//	}
//
// A cell is constructible for any size, whatever type it stands in for.
func CellOf(size, align uintptr) (reflect.Type, error) {
	if align == 0 || align&(align-1) != 0 {
		return nil, fmt.Errorf("%w: alignment %d is not a power of two", ErrUnsupportedMember, align)
	}

	carrier := alignCarrier(align)
	if carrier == nil {
		return nil, fmt.Errorf("%w: no type has alignment %d on this platform", ErrUnsupportedMember, align)
	}

	if size == 0 {
		return nil, fmt.Errorf("%w: zero-size members are not supported", ErrUnsupportedMember)
	}

	if size%align != 0 {
		return nil, fmt.Errorf("%w: size %d is not a multiple of alignment %d", ErrUnsupportedMember, size, align)
	}

	return reflect.StructOf([]reflect.StructField{
		{Name: "A", Type: reflect.ArrayOf(0, carrier)},
		{Name: "B", Type: reflect.ArrayOf(int(size), byteType)},
	}), nil
}
