package layout

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Ref is a mutable reference to a record field.
type Ref struct {
	ptr unsafe.Pointer
	typ reflect.Type
}

// RefOf returns a reference to *p.
func RefOf[T any](p *T) Ref {
	return Ref{ptr: unsafe.Pointer(p), typ: reflect.TypeFor[T]()}
}

func (r Ref) IsValid() bool { return r.ptr != nil }

func (r Ref) Type() reflect.Type { return r.typ }

func (r Ref) UnsafePointer() unsafe.Pointer { return r.ptr }

// Value returns an addressable, settable reflect.Value backed by the field storage.
func (r Ref) Value() reflect.Value {
	return reflect.NewAt(r.typ, r.ptr).Elem()
}

// Interface returns a copy of the referenced value.
func (r Ref) Interface() any {
	return r.Value().Interface()
}

// Set assigns v to the referenced field. A nil v stores the zero value.
func (r Ref) Set(v any) {
	if v == nil {
		r.Value().SetZero()
		return
	}

	r.Value().Set(reflect.ValueOf(v))
}

// Const drops write access.
func (r Ref) Const() ConstRef { return ConstRef{ref: r} }

// ConstRef is a read-only reference to a record field.
type ConstRef struct {
	ref Ref
}

func (r ConstRef) IsValid() bool { return r.ref.IsValid() }

func (r ConstRef) Type() reflect.Type { return r.ref.typ }

func (r ConstRef) UnsafePointer() unsafe.Pointer { return r.ref.ptr }

// Interface returns a copy of the referenced value.
func (r ConstRef) Interface() any { return r.ref.Interface() }

// Reader is implemented by Ref and ConstRef.
type Reader interface {
	Type() reflect.Type
	UnsafePointer() unsafe.Pointer
}

// Pointer returns the field as *T. It panics if the field is not of type T.
func Pointer[T any](r Ref) *T {
	mustType[T](r)
	return (*T)(r.ptr)
}

// Load returns the field value. It panics if the field is not of type T.
func Load[T any](r Reader) T {
	mustType[T](r)
	return *(*T)(r.UnsafePointer())
}

// Store assigns v to the field. It panics if the field is not of type T.
func Store[T any](r Ref, v T) {
	*Pointer[T](r) = v
}

func mustType[T any](r Reader) {
	if want := reflect.TypeFor[T](); r.Type() != want {
		panic(fmt.Sprintf("layout: reference to %v used as %v", r.Type(), want))
	}
}
