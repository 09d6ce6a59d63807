// Package gen provides deterministic Go code generation for record field views.
//
// Generation approach uses text/template + go/format for readable,
// allocation-free Go code. One file per record, written into the record's
// package unless the manifest moves it.
//
// Codegen patterns:
//   - Compile-time layout assertions (size, alignment, field offsets)
//   - Member type list as []reflect.Type
//   - Per-member accessors: field selection, or unsafe.Add at a fixed offset
//   - Offset getters built from the member list
//   - Straight-line flattening into layout tuples
package gen
