package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View matches entities against a struct of component pointers, e.g.
//
//	ecs.NewView[struct {
//		*Position
//		*Velocity
//	}](storage)
//
// Every field must be a pointer to a component type. Named fields tagged
// `ecs:"optional"` may be nil; all other fields are required.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
}

// NewView creates a view for the struct type T.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Pointer {
			panic("View struct fields must be pointer types")
		}

		isOptional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			isOptional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}
	return v
}

// Get returns the populated view struct for id, or nil if the entity lacks a
// required component.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef is Get for an EntityRef.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

// Fill populates *ptr for id and reports whether all required components
// were present.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	if !v.storage.Exists(id) {
		return false
	}
	archetype := v.storage.archetypes[id.ArchetypeId()]
	return v.populate(unsafe.Pointer(ptr), archetype, int(id.Index()), v.columnsOf(archetype))
}

// Iter yields every matching entity, archetypes in creation order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for archetype := range v.storage.Archetypes() {
			if !v.matchesArchetype(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values is Iter without the entity IDs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		columns := v.columnsOf(archetype)

		var result T
		resultPtr := unsafe.Pointer(&result)
		for id := range archetype.Iter() {
			if !v.populate(resultPtr, archetype, int(id.Index()), columns) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// matchesArchetype reports whether archetype has every required type.
func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, typ := range v.types {
		if !v.optional[i] && !archetype.HasComponent(typ) {
			return false
		}
	}
	return true
}

// columnsOf maps each view field to its archetype column, -1 when absent.
func (v *View[T]) columnsOf(archetype *Archetype) []int {
	columns := make([]int, len(v.types))
	for i, typ := range v.types {
		col, ok := archetype.columns[typ]
		if !ok {
			col = -1
		}
		columns[i] = col
	}
	return columns
}

// populate writes component pointers straight into the struct at resultPtr
// using the precomputed field offsets.
func (v *View[T]) populate(resultPtr unsafe.Pointer, archetype *Archetype, index int, columns []int) bool {
	for i, col := range columns {
		fieldPtr := unsafe.Add(resultPtr, v.fieldOffset[i])

		var component any
		if col != -1 {
			component = archetype.storages[col].Get(index)
		}
		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = dataPointer(component)
	}
	return true
}
