package ecs

import (
	"iter"
	"maps"
	"reflect"
	"slices"
	"unsafe"
	"weak"
)

// Storage owns every entity, component and singleton of one world.
type Storage struct {
	registry        *ComponentRegistry
	archetypes      map[uint32]*Archetype
	signatures      map[string]uint32
	nextArchetypeId uint32
	singletons      map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	value   reflect.Value // *T
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage backed by the given component registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:        registry,
		archetypes:      make(map[uint32]*Archetype),
		signatures:      make(map[string]uint32),
		nextArchetypeId: 1,
		singletons:      make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry this storage was built with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// archetypeFor returns the archetype for a sorted type set, creating it on
// first use. Archetype IDs are handed out sequentially starting at 1.
func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	sig := signature(types)
	if id, ok := s.signatures[sig]; ok {
		return s.archetypes[id]
	}

	id := s.nextArchetypeId
	if id > MaxArchetypes {
		panic("ecs: too many archetypes")
	}
	s.nextArchetypeId++
	archetype := newArchetype(id, types, s.registry)
	s.signatures[sig] = id
	s.archetypes[id] = archetype
	return archetype
}

// GetArchetype returns the archetype holding exactly the given component
// types, or nil if no entity with that combination was ever spawned.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	return s.GetArchetypeByTypes(extractComponentTypes(components))
}

// GetArchetypeByTypes is GetArchetype keyed by reflect.Type.
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	types = slices.Clone(types)
	sortTypes(types)
	id, ok := s.signatures[signature(types)]
	if !ok {
		return nil
	}
	return s.archetypes[id]
}

// GetArchetypeById returns the archetype with the given ID, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// Archetypes yields every archetype in ID (creation) order.
func (s *Storage) Archetypes() iter.Seq[*Archetype] {
	return func(yield func(*Archetype) bool) {
		for _, id := range slices.Sorted(maps.Keys(s.archetypes)) {
			if !yield(s.archetypes[id]) {
				return
			}
		}
	}
}

// Entities yields every live entity, grouped by archetype in creation order.
func (s *Storage) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for archetype := range s.Archetypes() {
			for id := range archetype.Iter() {
				if !yield(id) {
					return
				}
			}
		}
	}
}

// Spawn creates a new entity with the provided components. Components may be
// passed by value or by pointer; the storage always keeps its own copy.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	archetype := s.archetypeFor(extractComponentTypes(components))
	return archetype.spawn(components)
}

// Exists reports whether id names a live entity.
func (s *Storage) Exists(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.has(id)
}

// Delete removes the entity and all of its components. Deleting an entity
// that does not exist is a no-op. The id stays dead even after its slot is
// reused by a later spawn.
func (s *Storage) Delete(id EntityId) {
	if !s.Exists(id) {
		return
	}
	s.archetypes[id.ArchetypeId()].delete(id)
}

// AddComponent attaches component to the entity, moving it to the matching
// archetype, and returns the entity's new ID. If the entity already has a
// component of that type it is overwritten in place. Panics if the entity
// does not exist.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	s.mustExist(id, "AddComponent")
	oldArchetype := s.archetypes[id.ArchetypeId()]

	compType := componentType(component)
	if oldArchetype.HasComponent(compType) {
		dst := reflect.ValueOf(oldArchetype.GetComponent(id.Index(), compType)).Elem()
		dst.Set(reflect.Indirect(reflect.ValueOf(component)))
		return id
	}

	newTypes := append(slices.Clone(oldArchetype.types), compType)
	sortTypes(newTypes)

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == compType {
			components = append(components, component)
		} else {
			components = append(components, oldArchetype.GetComponent(id.Index(), typ))
		}
	}
	return s.move(id, oldArchetype, newTypes, components)
}

// RemoveComponent detaches the component of compType and returns the entity's
// new ID. Removing the last component deletes the entity and returns 0.
// Removing a type the entity lacks returns id unchanged. Panics if the
// entity does not exist.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	s.mustExist(id, "RemoveComponent")
	oldArchetype := s.archetypes[id.ArchetypeId()]

	if !oldArchetype.HasComponent(compType) {
		return id
	}
	if len(oldArchetype.types) == 1 {
		oldArchetype.delete(id)
		return 0
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	components := make([]any, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ == compType {
			continue
		}
		newTypes = append(newTypes, typ)
		components = append(components, oldArchetype.GetComponent(id.Index(), typ))
	}
	return s.move(id, oldArchetype, newTypes, components)
}

// move copies components into the archetype for newTypes, carries any live
// EntityRef along and frees the old slot.
func (s *Storage) move(id EntityId, from *Archetype, newTypes []reflect.Type, components []any) EntityId {
	to := s.archetypeFor(newTypes)
	newId := to.spawn(components)

	if weakPtr, ok := from.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = to
			to.refs.Put(newId, weakPtr)
		}
		from.refs.Del(id)
	}

	from.free(id.Index())
	return newId
}

func (s *Storage) mustExist(id EntityId, op string) {
	if !s.Exists(id) {
		panic("ecs: " + op + " on entity that does not exist")
	}
}

// GetComponent returns a pointer to the entity's component of compType, or
// nil when the entity or the component is missing.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	if !s.Exists(id) {
		return nil
	}
	return s.archetypes[id.ArchetypeId()].GetComponent(id.Index(), compType)
}

// HasComponent checks if a live entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	return s.Exists(id) && s.archetypes[id.ArchetypeId()].HasComponent(compType)
}

// CreateEntityRef returns the EntityRef for id, reusing one that is still
// referenced elsewhere. Returns nil if the entity does not exist.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	if !s.Exists(id) {
		return nil
	}
	archetype := s.archetypes[id.ArchetypeId()]

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: archetype}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current ID behind ref, or false if the entity
// has been deleted.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil || ref.Id == 0 {
		return 0, false
	}
	return ref.Id, true
}

// AddSingleton stores value as the world-wide instance of its type, replacing
// any previous instance.
func (s *Storage) AddSingleton(value any) {
	typ := componentType(value)
	if entry, ok := s.singletons[typ]; ok {
		entry.value.Elem().Set(reflect.Indirect(reflect.ValueOf(value)))
		return
	}

	ptr := reflect.New(typ)
	ptr.Elem().Set(reflect.Indirect(reflect.ValueOf(value)))
	s.singletons[typ] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton points *out (a **T) at the stored singleton of type T.
// It returns false and leaves out untouched if no such singleton exists.
func (s *Storage) ReadSingleton(out any) bool {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Pointer || target.Elem().Kind() != reflect.Pointer {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	entry, ok := s.singletons[target.Elem().Type().Elem()]
	if !ok {
		return false
	}
	target.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// extractComponentTypes returns the sorted value types of components,
// rejecting reference kinds and duplicates.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		switch compType.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		if slices.Contains(types, compType) {
			panic("duplicate component type " + compType.String())
		}
		types = append(types, compType)
	}
	sortTypes(types)
	return types
}

// ComponentReader is satisfied by Storage.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent is the typed form of GetComponent. It returns nil if the
// entity lacks T.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp := reader.GetComponent(entityId, reflect.TypeFor[T]())
	if comp == nil {
		return nil
	}
	return comp.(*T)
}
