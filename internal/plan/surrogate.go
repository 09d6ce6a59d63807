package plan

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"strconv"

	"fortio.org/safecast"
)

var errZeroSize = errors.New("zero-size members are not supported")

// alignCarriers are zero-length array element candidates that force a cell's alignment.
var alignCarriers = []types.Type{
	types.Typ[types.Uint8],
	types.Typ[types.Uint16],
	types.Typ[types.Uint32],
	types.Typ[types.Uint64],
	types.Typ[types.Complex128],
}

// surrogate is the build-time counterpart of layout.Surrogate, measured under
// the analyzed layout model rather than the host's.
type surrogate struct {
	typ     *types.Struct
	size    uintptr
	align   uintptr
	offsets []uintptr
	// Member sizes and alignments, narrowed alongside the offsets.
	sizes  []uintptr
	aligns []uintptr
}

// cellOf returns struct { A [0]alignT; B [size]byte } under sizes.
func cellOf(size, align int64, sizes types.Sizes) (types.Type, error) {
	if size == 0 {
		return nil, errZeroSize
	}

	var carrier types.Type

	for _, c := range alignCarriers {
		if sizes.Alignof(c) == align {
			carrier = c
			break
		}
	}

	if carrier == nil {
		return nil, fmt.Errorf("no type has alignment %d", align)
	}

	if size%align != 0 {
		return nil, fmt.Errorf("size %d is not a multiple of alignment %d", size, align)
	}

	return types.NewStruct([]*types.Var{
		types.NewField(token.NoPos, nil, "A", types.NewArray(carrier, 0), false),
		types.NewField(token.NoPos, nil, "B", types.NewArray(types.Typ[types.Byte], size), false),
	}, nil), nil
}

func newSurrogate(members []types.Type, sizes types.Sizes) (*surrogate, error) {
	fields := make([]*types.Var, len(members))

	for i, m := range members {
		cell, err := cellOf(sizes.Sizeof(m), sizes.Alignof(m), sizes)
		if err != nil {
			return nil, fmt.Errorf("member %d (%s): %w", i, m, err)
		}

		fields[i] = types.NewField(token.NoPos, nil, "F"+strconv.Itoa(i), cell, false)
	}

	st := types.NewStruct(fields, nil)

	s := &surrogate{
		typ:     st,
		offsets: make([]uintptr, len(fields)),
		sizes:   make([]uintptr, len(fields)),
		aligns:  make([]uintptr, len(fields)),
	}

	var err error

	for i, m := range members {
		if s.sizes[i], err = safecast.Conv[uintptr](sizes.Sizeof(m)); err != nil {
			return nil, fmt.Errorf("member %d (%s): %w", i, m, err)
		}

		if s.aligns[i], err = safecast.Conv[uintptr](sizes.Alignof(m)); err != nil {
			return nil, fmt.Errorf("member %d (%s): %w", i, m, err)
		}
	}

	if s.size, err = safecast.Conv[uintptr](sizes.Sizeof(st)); err != nil {
		return nil, err
	}

	if s.align, err = safecast.Conv[uintptr](sizes.Alignof(st)); err != nil {
		return nil, err
	}

	for i, off := range sizes.Offsetsof(fields) {
		if s.offsets[i], err = safecast.Conv[uintptr](off); err != nil {
			return nil, err
		}
	}

	return s, nil
}
