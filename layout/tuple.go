package layout

import (
	"iter"
	"slices"
)

// Tuple is a fixed-arity, positional sequence of references.
type Tuple[R any] struct {
	refs []R
}

// Tie bundles refs into a tuple, in order.
func Tie[R any](refs ...R) Tuple[R] {
	return Tuple[R]{refs: slices.Clone(refs)}
}

func (t Tuple[R]) Len() int { return len(t.refs) }

// At returns entry i. It panics if i is out of range.
func (t Tuple[R]) At(i int) R { return t.refs[i] }

// All yields the entries in ascending position.
func (t Tuple[R]) All() iter.Seq2[int, R] {
	return slices.All(t.refs)
}

// Concat returns the entries of a followed by the entries of b.
func Concat[R any](a, b Tuple[R]) Tuple[R] {
	refs := make([]R, 0, len(a.refs)+len(b.refs))
	refs = append(refs, a.refs...)

	return Tuple[R]{refs: append(refs, b.refs...)}
}
