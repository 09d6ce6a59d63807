package layout

import "reflect"

// MembersOf returns the field types of U in declaration order.
func MembersOf[U any]() []reflect.Type {
	return MembersOfType(reflect.TypeFor[U]())
}

// MembersOfType returns the field types of t, or nil if t is not a struct.
func MembersOfType(t reflect.Type) []reflect.Type {
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	members := make([]reflect.Type, t.NumField())
	for i := range members {
		members[i] = t.Field(i).Type
	}

	return members
}
