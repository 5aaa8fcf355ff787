package ecs

// EntityId is an opaque entity handle. From the top: 16 bits of archetype,
// 16 bits of slot generation, 32 bits of slot index. The generation changes
// every time a slot is freed, so an id kept past Delete never matches the
// entity that later reuses its slot (until the generation wraps).
// The zero value never names a live entity.
type EntityId uint64

// MaxArchetypes is the number of distinct archetypes a Storage can hold.
const MaxArchetypes = 1<<16 - 1

// NewEntityId packs an archetype ID, slot generation and slot index into an
// EntityId. Archetype IDs above MaxArchetypes are truncated.
func NewEntityId(archetypeId uint32, generation uint16, index uint32) EntityId {
	return EntityId(uint64(archetypeId&0xFFFF)<<48 | uint64(generation)<<32 | uint64(index))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 48)
}

// Generation extracts the slot generation from the entity ID.
func (e EntityId) Generation() uint16 {
	return uint16(e >> 32)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// EntityRef follows an entity across archetype moves. Storage keeps a weak
// pointer to every ref it hands out and rewrites Id when the entity gains or
// loses a component. Id is zero once the entity is deleted.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}
