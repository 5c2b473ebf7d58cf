package types

const (
	// NilAddress is the address meaning "no node". It is never handed out by the allocator.
	NilAddress NodeAddress = 0

	// DefaultNodesPerChunk is the default number of node slots allocated at once.
	DefaultNodesPerChunk = 1024
)

type (
	// NodeAddress is the address of a node slot inside the arena.
	NodeAddress uint64

	// Generation counts how many times a node slot has been allocated.
	Generation uint64
)

// Pointer is a non-owning reference to a node. It resolves only while the slot generation matches.
type Pointer struct {
	Address    NodeAddress
	Generation Generation
}

// IsNil returns true if pointer does not reference any node.
func (p Pointer) IsNil() bool {
	return p.Address == NilAddress
}
