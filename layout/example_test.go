package layout_test

import (
	"fmt"

	"structview/layout"
)

func Example() {
	type Sample struct {
		X int32
		Y float64
		Z byte
	}

	g, err := layout.For[Sample]()
	if err != nil {
		panic(err)
	}

	s := Sample{X: 7, Y: 2.5, Z: 'q'}
	refs := layout.FlattenRecord(&s, g)

	for i, r := range refs.All() {
		fmt.Println(i, r.Type(), g.Offset(i), r.Interface())
	}

	layout.Store(refs.At(0), int32(42))
	fmt.Println(s.X)

	// Output:
	// 0 int32 0 7
	// 1 float64 8 2.5
	// 2 uint8 16 113
	// 42
}
