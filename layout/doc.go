// Package layout views a plain struct ("record") as an ordered tuple of references to its fields.
//
// Two pieces do the work:
//   - OffsetGetter resolves field i of a record by adding a byte offset to the record's address.
//     The offsets are measured on a surrogate struct whose fields are opaque byte cells with the
//     size and alignment of the declared member types, so the member list must describe the
//     record's layout exactly; NewOffsetGetter rejects lists that do not.
//   - Flatten builds a Tuple of references from any Getter by balanced binary splitting.
//
// References alias the record. They never copy a field value and keep the record reachable.
//
//	type Point struct {
//		X int32
//		Y float64
//	}
//
//	g := layout.MustOffsetGetter[Point](layout.MembersOf[Point]()...)
//	p := Point{X: 1, Y: 2.5}
//	refs := layout.FlattenRecord(&p, g)
//	layout.Store(refs.At(0), int32(7)) // p.X == 7
package layout
