package list

import (
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/outofforest/photon"
)

// OfConfig stores configuration of typed list.
type OfConfig struct {
	NodesPerChunk uint64
	Logger        *zap.Logger
}

// NewOf creates list storing values of type T.
// T must be a fixed-size type without pointers and padding because values are stored and compared as raw bytes.
func NewOf[T comparable](config OfConfig) (*Of[T], error) {
	var v T
	if err := validateType(reflect.TypeFor[T]()); err != nil {
		return nil, err
	}

	l, err := New(Config{
		RecordSize:    int(unsafe.Sizeof(v)),
		NodesPerChunk: config.NodesPerChunk,
		Logger:        config.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Of[T]{list: l}, nil
}

// Of is the list of values of type T. Returned pointers reference memory owned by the list.
type Of[T comparable] struct {
	list *List
}

// List returns underlying list of records.
func (o *Of[T]) List() *List {
	if o == nil {
		return nil
	}
	return o.list
}

// Destruct removes all the values and releases memory.
func (o *Of[T]) Destruct() error {
	return o.List().Destruct()
}

// Len returns number of values in the list.
func (o *Of[T]) Len() int {
	return o.List().Len()
}

// GetHead moves cursor to the first value and returns it.
func (o *Of[T]) GetHead() (*T, error) {
	return project[T](o.List().GetHead())
}

// GetTail moves cursor to the last value and returns it.
func (o *Of[T]) GetTail() (*T, error) {
	return project[T](o.List().GetTail())
}

// GetNext moves cursor to the next value and returns it.
func (o *Of[T]) GetNext() (*T, error) {
	return project[T](o.List().GetNext())
}

// GetPrevious moves cursor to the previous value and returns it.
func (o *Of[T]) GetPrevious() (*T, error) {
	return project[T](o.List().GetPrevious())
}

// AddHead adds value at the beginning of the list.
func (o *Of[T]) AddHead(v T) error {
	return o.List().AddHead(photon.NewFromValue(&v).B)
}

// AddTail adds value at the end of the list.
func (o *Of[T]) AddTail(v T) error {
	return o.List().AddTail(photon.NewFromValue(&v).B)
}

// AddBefore adds value before the first value equal to ref.
func (o *Of[T]) AddBefore(v, ref T) error {
	return o.List().AddBefore(photon.NewFromValue(&v).B, photon.NewFromValue(&ref).B)
}

// AddAfter adds value after the first value equal to ref.
func (o *Of[T]) AddAfter(v, ref T) error {
	return o.List().AddAfter(photon.NewFromValue(&v).B, photon.NewFromValue(&ref).B)
}

// RemoveHead removes the first value.
func (o *Of[T]) RemoveHead() error {
	return o.List().RemoveHead()
}

// RemoveTail removes the last value.
func (o *Of[T]) RemoveTail() error {
	return o.List().RemoveTail()
}

// Remove removes the first value equal to ref.
func (o *Of[T]) Remove(ref T) error {
	return o.List().Remove(photon.NewFromValue(&ref).B)
}

// Clear removes all the values.
func (o *Of[T]) Clear() error {
	return o.List().Clear()
}

// Contains returns true if list contains value equal to v.
func (o *Of[T]) Contains(v T) bool {
	return o.List().Contains(photon.NewFromValue(&v).B)
}

// Iterator iterates over values from head to tail.
func (o *Of[T]) Iterator() func(func(*T) bool) {
	return wrapIterator[T](o.List().Iterator())
}

// ReverseIterator iterates over values from tail to head.
func (o *Of[T]) ReverseIterator() func(func(*T) bool) {
	return wrapIterator[T](o.List().ReverseIterator())
}

func project[T comparable](record []byte, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	return photon.FromBytes[T](record), nil
}

func wrapIterator[T comparable](it func(func([]byte) bool)) func(func(*T) bool) {
	return func(yield func(*T) bool) {
		for record := range it {
			if !yield(photon.FromBytes[T](record)) {
				return
			}
		}
	}
}

// validateType returns ErrInvalidArgument if bytes of the type contain pointers or padding.
func validateType(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return validateType(t.Elem())
	case reflect.Struct:
		var size uintptr
		for i := range t.NumField() {
			field := t.Field(i)
			if err := validateType(field.Type); err != nil {
				return err
			}
			size += field.Type.Size()
		}
		if size != t.Size() {
			return errors.Wrapf(ErrInvalidArgument, "type %s contains padding", t)
		}
		return nil
	default:
		return errors.Wrapf(ErrInvalidArgument, "type %s contains pointers", t)
	}
}
