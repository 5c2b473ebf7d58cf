package test

import (
	"bytes"

	"github.com/samber/lo"

	"github.com/outofforest/photon"
	"github.com/outofforest/reclist/list"
)

// Record returns bytes representing value, used as 4-byte record in tests.
func Record(v uint32) []byte {
	return bytes.Clone(photon.NewFromValue(&v).B)
}

// Records returns records representing values.
func Records(values ...uint32) [][]byte {
	return lo.Map(values, func(v uint32, _ int) []byte {
		return Record(v)
	})
}

// Values converts records back to values.
func Values(records [][]byte) []uint32 {
	return lo.Map(records, func(record []byte, _ int) uint32 {
		return *photon.FromBytes[uint32](record)
	})
}

// CollectForward walks the list from head to tail using the cursor and copies the records.
func CollectForward(l *list.List) [][]byte {
	records := [][]byte{}
	record, err := l.GetHead()
	for err == nil {
		records = append(records, bytes.Clone(record))
		record, err = l.GetNext()
	}
	return records
}

// CollectBackward walks the list from tail to head using the cursor and copies the records.
func CollectBackward(l *list.List) [][]byte {
	records := [][]byte{}
	record, err := l.GetTail()
	for err == nil {
		records = append(records, bytes.Clone(record))
		record, err = l.GetPrevious()
	}
	return records
}

// CollectListItems collects values available in the typed list.
func CollectListItems[T comparable](l *list.Of[T]) []T {
	items := []T{}
	for item := range l.Iterator() {
		items = append(items, *item)
	}
	return items
}
