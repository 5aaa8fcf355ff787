package ecs

import (
	"iter"
	"math/bits"
	"reflect"
)

// ComponentRegistry maps component types to their storage factories. Each
// Storage owns one, so independent worlds never share component tables.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStorage
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStorage),
	}
}

// RegisterComponent makes T usable as a component in storages built from r.
// Registering the same type twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentStorage {
		return &blockStorage[T]{}
	}
}

// IsRegistered reports whether t has been registered.
func (r *ComponentRegistry) IsRegistered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newStorage(t reflect.Type) componentStorage {
	factory, ok := r.factories[t]
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

// componentStorage is one type-erased column of an archetype.
type componentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

const blockSize = 64

// blockStorage keeps components of type T in fixed-size heap blocks. Blocks
// are never moved once allocated, so pointers returned by Get stay valid until
// the slot is deleted. Occupancy is one bit per slot.
type blockStorage[T any] struct {
	blocks    []*[blockSize]T
	occupied  []uint64
	freeSlots []int
	next      int
	count     int
}

func (s *blockStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		panic("component of type " + reflect.TypeOf(item).String() + " appended to storage of " + reflect.TypeFor[T]().String())
	}

	var index int
	if n := len(s.freeSlots); n > 0 {
		index = s.freeSlots[n-1]
		s.freeSlots = s.freeSlots[:n-1]
	} else {
		index = s.next
		s.next++
		if index/blockSize >= len(s.blocks) {
			s.blocks = append(s.blocks, new([blockSize]T))
			s.occupied = append(s.occupied, 0)
		}
	}

	block, slot := index/blockSize, index%blockSize
	s.blocks[block][slot] = value
	s.occupied[block] |= 1 << slot
	s.count++
	return index
}

func (s *blockStorage[T]) Has(index int) bool {
	if index < 0 || index >= s.next {
		return false
	}
	return s.occupied[index/blockSize]&(1<<(index%blockSize)) != 0
}

// Get returns a *T for the slot, or nil when the slot is empty.
func (s *blockStorage[T]) Get(index int) any {
	if !s.Has(index) {
		return nil
	}
	return &s.blocks[index/blockSize][index%blockSize]
}

func (s *blockStorage[T]) Delete(index int) {
	if !s.Has(index) {
		return
	}
	block, slot := index/blockSize, index%blockSize
	var zero T
	s.blocks[block][slot] = zero
	s.occupied[block] &^= 1 << slot
	s.freeSlots = append(s.freeSlots, index)
	s.count--
}

func (s *blockStorage[T]) Len() int {
	return s.count
}

// Iter yields occupied slot indices in ascending order.
func (s *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for block, mask := range s.occupied {
			for mask != 0 {
				slot := bits.TrailingZeros64(mask)
				mask &= mask - 1
				if !yield(block*blockSize + slot) {
					return
				}
			}
		}
	}
}
