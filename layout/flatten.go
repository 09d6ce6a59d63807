package layout

import "fmt"

// Flatten returns the tuple whose k-th entry is g.Get(c, begin+k), for k in [0, size).
//
// The range is split in halves, the right half taking the extra element of an odd
// size, so the recursion is ceil(log2(size)) levels deep.
func Flatten[C, R any](c C, g Getter[C, R], begin, size int) Tuple[R] {
	if begin < 0 || size < 0 {
		panic(fmt.Sprintf("layout: invalid range [%d, %d+%d)", begin, begin, size))
	}

	return flatten(c, g, begin, size)
}

func flatten[C, R any](c C, g Getter[C, R], begin, size int) Tuple[R] {
	switch size {
	case 0:
		return Tuple[R]{}
	case 1:
		return Tuple[R]{refs: []R{g.Get(c, begin)}}
	}

	half := size / 2

	return Concat(flatten(c, g, begin, half), flatten(c, g, begin+half, size-half))
}

// FlattenAll flattens every element of c.
func FlattenAll[C, R any](c C, a Accessor[C, R]) Tuple[R] {
	return Flatten[C, R](c, a, 0, a.Len())
}

// FlattenRecord returns mutable references to all fields of *u.
func FlattenRecord[U any](u *U, g *OffsetGetter[U]) Tuple[Ref] {
	return FlattenAll[*U, Ref](u, g)
}

// FlattenConst returns read-only references to all fields of *u.
func FlattenConst[U any](u *U, g *OffsetGetter[U]) Tuple[ConstRef] {
	return FlattenAll[*U, ConstRef](u, g.Const())
}

// TupleGetter reads entries of an already built tuple.
type TupleGetter[R any] struct{}

func (TupleGetter[R]) Get(t Tuple[R], i int) R { return t.At(i) }

// Retie rebuilds t through Flatten; the result aliases the same storage.
func Retie[R any](t Tuple[R]) Tuple[R] {
	return Flatten[Tuple[R], R](t, TupleGetter[R]{}, 0, t.Len())
}
