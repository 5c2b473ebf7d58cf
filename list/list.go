package list

import (
	"bytes"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/outofforest/reclist/alloc"
	"github.com/outofforest/reclist/types"
)

// Config stores list configuration.
type Config struct {
	RecordSize    int
	NodesPerChunk uint64
	Logger        *zap.Logger
}

// New creates new empty list storing records of config.RecordSize bytes.
func New(config Config) (*List, error) {
	if config.RecordSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "record size %d is not positive", config.RecordSize)
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	allocator, err := alloc.NewAllocator[node](alloc.Config{
		RecordSize:    uint64(config.RecordSize),
		NodesPerChunk: config.NodesPerChunk,
		Logger:        config.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &List{
		config:    config,
		allocator: allocator,
	}, nil
}

// List is the doubly linked list of fixed-size records.
// Slices returned by read operations point to memory owned by the list and are valid until next mutation.
type List struct {
	config    Config
	allocator *alloc.Allocator[node]

	head, tail types.NodeAddress
	cursor     types.Pointer
	length     int
}

// Destruct removes all the nodes and releases memory. Handle can't be used afterwards.
func (l *List) Destruct() error {
	if err := l.validate(); err != nil {
		return err
	}
	if err := l.Clear(); err != nil {
		return err
	}

	l.allocator.Release()
	l.allocator = nil
	l.config.Logger.Debug("List destructed")

	return nil
}

// Len returns number of nodes in the list.
func (l *List) Len() int {
	if l.validate() != nil {
		return 0
	}
	return l.length
}

// RecordSize returns size of the record stored in every node.
func (l *List) RecordSize() int {
	if l.validate() != nil {
		return 0
	}
	return l.config.RecordSize
}

// GetHead moves cursor to the first node and returns its record.
func (l *List) GetHead() ([]byte, error) {
	if err := l.validateNotEmpty(); err != nil {
		return nil, err
	}

	l.setCursor(l.head)
	return l.allocator.Record(l.head), nil
}

// GetTail moves cursor to the last node and returns its record.
func (l *List) GetTail() ([]byte, error) {
	if err := l.validateNotEmpty(); err != nil {
		return nil, err
	}

	l.setCursor(l.tail)
	return l.allocator.Record(l.tail), nil
}

// GetNext moves cursor to the next node and returns its record.
func (l *List) GetNext() ([]byte, error) {
	if err := l.validateNotEmpty(); err != nil {
		return nil, err
	}

	cursor, exists := l.cursorAddress()
	if !exists {
		return nil, ErrEndOfTraversal
	}

	return l.moveCursor(l.allocator.Header(cursor).Next)
}

// GetPrevious moves cursor to the previous node and returns its record.
func (l *List) GetPrevious() ([]byte, error) {
	if err := l.validateNotEmpty(); err != nil {
		return nil, err
	}

	cursor, exists := l.cursorAddress()
	if !exists {
		return nil, ErrEndOfTraversal
	}

	return l.moveCursor(l.allocator.Header(cursor).Previous)
}

// AddHead adds copy of the value at the beginning of the list.
func (l *List) AddHead(value []byte) error {
	if err := l.validate(); err != nil {
		return err
	}
	if err := l.validateRecord(value, "value"); err != nil {
		return err
	}

	nodeAddress, n, err := l.newNode(value)
	if err != nil {
		return err
	}

	n.Next = l.head
	if l.head == types.NilAddress {
		l.tail = nodeAddress
	} else {
		l.allocator.Header(l.head).Previous = nodeAddress
	}
	l.head = nodeAddress

	return nil
}

// AddTail adds copy of the value at the end of the list.
func (l *List) AddTail(value []byte) error {
	if err := l.validate(); err != nil {
		return err
	}
	if err := l.validateRecord(value, "value"); err != nil {
		return err
	}

	nodeAddress, n, err := l.newNode(value)
	if err != nil {
		return err
	}

	n.Previous = l.tail
	if l.tail == types.NilAddress {
		l.head = nodeAddress
	} else {
		l.allocator.Header(l.tail).Next = nodeAddress
	}
	l.tail = nodeAddress

	return nil
}

// AddBefore adds copy of the value before the first node equal to refValue.
func (l *List) AddBefore(value, refValue []byte) error {
	refAddress, err := l.findReference(value, refValue)
	if err != nil {
		return err
	}

	nodeAddress, n, err := l.newNode(value)
	if err != nil {
		return err
	}

	ref := l.allocator.Header(refAddress)
	n.Previous = ref.Previous
	n.Next = refAddress
	if ref.Previous == types.NilAddress {
		l.head = nodeAddress
	} else {
		l.allocator.Header(ref.Previous).Next = nodeAddress
	}
	ref.Previous = nodeAddress

	return nil
}

// AddAfter adds copy of the value after the first node equal to refValue.
func (l *List) AddAfter(value, refValue []byte) error {
	refAddress, err := l.findReference(value, refValue)
	if err != nil {
		return err
	}

	nodeAddress, n, err := l.newNode(value)
	if err != nil {
		return err
	}

	ref := l.allocator.Header(refAddress)
	n.Previous = refAddress
	n.Next = ref.Next
	if ref.Next == types.NilAddress {
		l.tail = nodeAddress
	} else {
		l.allocator.Header(ref.Next).Previous = nodeAddress
	}
	ref.Next = nodeAddress

	return nil
}

// RemoveHead removes the first node.
func (l *List) RemoveHead() error {
	if err := l.validateNotEmpty(); err != nil {
		return err
	}

	l.removeNode(l.head)
	return nil
}

// RemoveTail removes the last node.
func (l *List) RemoveTail() error {
	if err := l.validateNotEmpty(); err != nil {
		return err
	}

	l.removeNode(l.tail)
	return nil
}

// Remove removes the first node equal to refValue.
func (l *List) Remove(refValue []byte) error {
	if err := l.validate(); err != nil {
		return err
	}
	if err := l.validateRecord(refValue, "reference value"); err != nil {
		return err
	}
	if l.head == types.NilAddress {
		return ErrEmpty
	}

	nodeAddress := l.find(refValue)
	if nodeAddress == types.NilAddress {
		return ErrNotFound
	}

	l.removeNode(nodeAddress)
	return nil
}

// Clear removes all the nodes.
func (l *List) Clear() error {
	if err := l.validate(); err != nil {
		return err
	}

	for l.head != types.NilAddress {
		l.removeNode(l.head)
	}
	return nil
}

// Contains returns true if any node is equal to the value.
func (l *List) Contains(value []byte) bool {
	if l.validate() != nil || l.validateRecord(value, "value") != nil {
		return false
	}
	return l.find(value) != types.NilAddress
}

// Iterator iterates over records from head to tail. It doesn't move the cursor.
func (l *List) Iterator() func(func([]byte) bool) {
	return func(yield func([]byte) bool) {
		if l.validate() != nil {
			return
		}

		for nodeAddress := l.head; nodeAddress != types.NilAddress; {
			next := l.allocator.Header(nodeAddress).Next
			if !yield(l.allocator.Record(nodeAddress)) {
				return
			}
			nodeAddress = next
		}
	}
}

// ReverseIterator iterates over records from tail to head. It doesn't move the cursor.
func (l *List) ReverseIterator() func(func([]byte) bool) {
	return func(yield func([]byte) bool) {
		if l.validate() != nil {
			return
		}

		for nodeAddress := l.tail; nodeAddress != types.NilAddress; {
			previous := l.allocator.Header(nodeAddress).Previous
			if !yield(l.allocator.Record(nodeAddress)) {
				return
			}
			nodeAddress = previous
		}
	}
}

func (l *List) validate() error {
	if l == nil || l.allocator == nil {
		return ErrInvalidHandle
	}
	return nil
}

func (l *List) validateNotEmpty() error {
	if err := l.validate(); err != nil {
		return err
	}
	if l.head == types.NilAddress {
		return ErrEmpty
	}
	return nil
}

func (l *List) validateRecord(value []byte, name string) error {
	if value == nil {
		return errors.Wrapf(ErrInvalidArgument, "%s is nil", name)
	}
	if len(value) != l.config.RecordSize {
		return errors.Wrapf(ErrInvalidArgument, "%s has %d bytes, expected %d", name, len(value),
			l.config.RecordSize)
	}
	return nil
}

func (l *List) findReference(value, refValue []byte) (types.NodeAddress, error) {
	if err := l.validate(); err != nil {
		return types.NilAddress, err
	}
	if err := l.validateRecord(value, "value"); err != nil {
		return types.NilAddress, err
	}
	if err := l.validateRecord(refValue, "reference value"); err != nil {
		return types.NilAddress, err
	}
	if l.head == types.NilAddress {
		return types.NilAddress, ErrEmpty
	}

	refAddress := l.find(refValue)
	if refAddress == types.NilAddress {
		return types.NilAddress, ErrNotFound
	}
	return refAddress, nil
}

// find returns the first node, in head to tail order, equal to the value.
func (l *List) find(value []byte) types.NodeAddress {
	for nodeAddress := l.head; nodeAddress != types.NilAddress; nodeAddress = l.allocator.Header(nodeAddress).Next {
		if bytes.Equal(l.allocator.Record(nodeAddress), value) {
			return nodeAddress
		}
	}
	return types.NilAddress
}

func (l *List) newNode(value []byte) (types.NodeAddress, *node, error) {
	pointer, _, n, err := l.allocator.Allocate(value)
	if err != nil {
		return types.NilAddress, nil, errors.Wrap(err, "node allocation failed")
	}

	l.length++

	return pointer.Address, n, nil
}

func (l *List) removeNode(nodeAddress types.NodeAddress) {
	n := l.allocator.Header(nodeAddress)
	if n.Previous == types.NilAddress {
		l.head = n.Next
	} else {
		l.allocator.Header(n.Previous).Next = n.Next
	}
	if n.Next == types.NilAddress {
		l.tail = n.Previous
	} else {
		l.allocator.Header(n.Next).Previous = n.Previous
	}

	if l.cursor == l.allocator.Pointer(nodeAddress) {
		l.cursor = types.Pointer{}
	}

	l.allocator.Deallocate(nodeAddress)
	l.length--
}

func (l *List) setCursor(nodeAddress types.NodeAddress) {
	l.cursor = l.allocator.Pointer(nodeAddress)
}

func (l *List) cursorAddress() (types.NodeAddress, bool) {
	if l.cursor.IsNil() {
		return types.NilAddress, false
	}

	nodeAddress, exists := l.allocator.Resolve(l.cursor)
	if !exists {
		l.cursor = types.Pointer{}
	}
	return nodeAddress, exists
}

func (l *List) moveCursor(nodeAddress types.NodeAddress) ([]byte, error) {
	if nodeAddress == types.NilAddress {
		l.cursor = types.Pointer{}
		return nil, ErrEndOfTraversal
	}

	l.setCursor(nodeAddress)
	return l.allocator.Record(nodeAddress), nil
}
