// Package analyze provides package loading and record layout extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types
// to build a canonical in-memory model of structs, their fields and
// the storage layout the target compiler and architecture give them.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/basic/alias/pointer/slice/array/external), size and alignment
//   - FieldInfo: describes field name, type, offset, size, alignment and embedding
package analyze
