package ecs

import (
	"iter"
	"reflect"
	"slices"
	"strings"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype stores every entity that has exactly one particular set of
// component types. Each type gets its own column; an entity's slot index is
// the same in every column.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	columns  map[reflect.Type]int
	storages []componentStorage
	refs     *intmap.Map[EntityId, weak.Pointer[EntityRef]]
	// generations[i] is bumped whenever slot i is freed.
	generations []uint16
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		columns:  make(map[reflect.Type]int, len(types)),
		storages: make([]componentStorage, len(types)),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](16),
	}
	for idx, typ := range types {
		a.columns[typ] = idx
		a.storages[idx] = registry.newStorage(typ)
	}
	return a
}

// spawn appends one component per column and returns the new entity's ID.
func (a *Archetype) spawn(components []any) EntityId {
	if len(components) != len(a.types) {
		panic("component count does not match archetype")
	}

	index := -1
	for _, comp := range components {
		col, ok := a.columns[componentType(comp)]
		if !ok {
			panic("component type " + componentType(comp).String() + " not part of archetype")
		}
		pos := a.storages[col].Append(comp)
		if index != -1 && pos != index {
			panic("archetype columns out of sync")
		}
		index = pos
	}
	for len(a.generations) <= index {
		a.generations = append(a.generations, 0)
	}
	return a.idFor(uint32(index))
}

func (a *Archetype) idFor(index uint32) EntityId {
	return NewEntityId(a.id, a.generations[index], index)
}

// GetComponent returns a pointer to the entity's component of compType, or nil.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	col, ok := a.columns[compType]
	if !ok {
		return nil
	}
	return a.storages[col].Get(int(entityIndex))
}

// has reports whether id names the entity currently in its slot.
func (a *Archetype) has(id EntityId) bool {
	index := id.Index()
	return len(a.storages) > 0 && a.storages[0].Has(int(index)) &&
		a.generations[index] == id.Generation()
}

// delete empties the slot and invalidates any EntityRef pointing at it.
func (a *Archetype) delete(id EntityId) {
	if weakPtr, ok := a.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}
	a.free(id.Index())
}

// free empties the slot and retires its generation.
func (a *Archetype) free(index uint32) {
	for _, storage := range a.storages {
		storage.Delete(int(index))
	}
	a.generations[index]++
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	_, ok := a.columns[compType]
	return ok
}

// ID returns the archetype's identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types of this archetype, sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return slices.Clone(a.types)
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Iter yields the live entities of this archetype in slot order.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for index := range a.storages[0].Iter() {
			if !yield(a.idFor(uint32(index))) {
				return
			}
		}
	}
}

// componentType returns the value type of a component, dereferencing pointers.
func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t == nil {
		panic("nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// sortTypes orders types by package path and name so that the same set always
// produces the same signature.
func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(typeKey(a), typeKey(b))
	})
}

func typeKey(t reflect.Type) string {
	return t.PkgPath() + "." + t.String()
}

func signature(types []reflect.Type) string {
	var sb strings.Builder
	for i, t := range types {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(typeKey(t))
	}
	return sb.String()
}
