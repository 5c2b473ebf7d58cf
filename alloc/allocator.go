package alloc

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/outofforest/reclist/types"
)

// Config stores configuration of allocator.
type Config struct {
	RecordSize    uint64
	NodesPerChunk uint64
	Logger        *zap.Logger
}

// NewAllocator creates node allocator storing records of fixed size together with header of type H.
func NewAllocator[H any](config Config) (*Allocator[H], error) {
	if config.RecordSize == 0 {
		return nil, errors.New("record size must be positive")
	}
	if config.NodesPerChunk == 0 {
		config.NodesPerChunk = types.DefaultNodesPerChunk
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	return &Allocator[H]{
		config: config,
		free:   newRing[types.NodeAddress](config.NodesPerChunk),
	}, nil
}

type slot[H any] struct {
	generation types.Generation
	live       bool
	header     H
}

// chunk is never resized after creation, so records it holds keep their addresses.
type chunk[H any] struct {
	records []byte
	slots   []slot[H]
}

// Allocator owns node slots of a single list.
type Allocator[H any] struct {
	config Config
	chunks []*chunk[H]
	free   *ring[types.NodeAddress]

	lastAllocatedNode types.NodeAddress
	allocated         uint64
	released          bool
}

// Allocate allocates node and copies record into it.
func (a *Allocator[H]) Allocate(copyFrom []byte) (types.Pointer, []byte, *H, error) {
	if a.released {
		return types.Pointer{}, nil, nil, errors.New("allocator has been released")
	}

	nodeAddress, err := a.free.Get()
	if err != nil {
		a.lastAllocatedNode++
		nodeAddress = a.lastAllocatedNode
		if uint64(nodeAddress)/a.config.NodesPerChunk >= uint64(len(a.chunks)) {
			a.grow()
		}
	}

	c, index := a.locate(nodeAddress)
	s := &c.slots[index]
	s.live = true
	s.generation++

	record := a.record(c, index)
	copy(record, copyFrom)
	a.allocated++

	return types.Pointer{
		Address:    nodeAddress,
		Generation: s.generation,
	}, record, &s.header, nil
}

// Deallocate releases node. Releasing nil or not allocated address is a no-op.
func (a *Allocator[H]) Deallocate(nodeAddress types.NodeAddress) {
	c, index, ok := a.liveSlot(nodeAddress)
	if !ok {
		return
	}

	clear(a.record(c, index))
	s := &c.slots[index]
	var h H
	s.header = h
	s.live = false

	a.free.Put(nodeAddress)
	a.allocated--
}

// Resolve returns address referenced by the pointer if the node it was taken from is still allocated.
func (a *Allocator[H]) Resolve(pointer types.Pointer) (types.NodeAddress, bool) {
	c, index, ok := a.liveSlot(pointer.Address)
	if !ok || c.slots[index].generation != pointer.Generation {
		return types.NilAddress, false
	}
	return pointer.Address, true
}

// Pointer returns pointer to the allocated node.
func (a *Allocator[H]) Pointer(nodeAddress types.NodeAddress) types.Pointer {
	c, index := a.locate(nodeAddress)
	return types.Pointer{
		Address:    nodeAddress,
		Generation: c.slots[index].generation,
	}
}

// Record returns record bytes of the node.
func (a *Allocator[H]) Record(nodeAddress types.NodeAddress) []byte {
	c, index := a.locate(nodeAddress)
	return a.record(c, index)
}

// Header returns header of the node.
func (a *Allocator[H]) Header(nodeAddress types.NodeAddress) *H {
	c, index := a.locate(nodeAddress)
	return &c.slots[index].header
}

// Allocated returns number of allocated nodes.
func (a *Allocator[H]) Allocated() uint64 {
	return a.allocated
}

// Chunks returns number of chunks held by the allocator.
func (a *Allocator[H]) Chunks() uint64 {
	return uint64(len(a.chunks))
}

// RecordSize returns size of record stored in the node.
func (a *Allocator[H]) RecordSize() uint64 {
	return a.config.RecordSize
}

// Release drops all the memory held by the allocator. Allocator can't be used afterwards.
func (a *Allocator[H]) Release() {
	if a.released {
		return
	}

	a.config.Logger.Debug("Releasing node allocator",
		zap.Uint64("chunks", uint64(len(a.chunks))),
		zap.Uint64("allocated", a.allocated))

	a.chunks = nil
	a.free = newRing[types.NodeAddress](1)
	a.allocated = 0
	a.released = true
}

func (a *Allocator[H]) grow() {
	a.chunks = append(a.chunks, &chunk[H]{
		records: make([]byte, a.config.NodesPerChunk*a.config.RecordSize),
		slots:   make([]slot[H], a.config.NodesPerChunk),
	})

	a.config.Logger.Debug("Node chunk allocated",
		zap.Uint64("chunk", uint64(len(a.chunks)-1)),
		zap.Uint64("nodesPerChunk", a.config.NodesPerChunk),
		zap.Uint64("recordSize", a.config.RecordSize))
}

func (a *Allocator[H]) locate(nodeAddress types.NodeAddress) (*chunk[H], uint64) {
	return a.chunks[uint64(nodeAddress)/a.config.NodesPerChunk], uint64(nodeAddress) % a.config.NodesPerChunk
}

func (a *Allocator[H]) liveSlot(nodeAddress types.NodeAddress) (*chunk[H], uint64, bool) {
	if nodeAddress == types.NilAddress || nodeAddress > a.lastAllocatedNode || a.released {
		return nil, 0, false
	}
	c, index := a.locate(nodeAddress)
	if !c.slots[index].live {
		return nil, 0, false
	}
	return c, index, true
}

func (a *Allocator[H]) record(c *chunk[H], index uint64) []byte {
	start := index * a.config.RecordSize
	end := start + a.config.RecordSize
	return c.records[start:end:end]
}
