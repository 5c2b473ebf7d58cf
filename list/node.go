package list

import (
	"github.com/outofforest/reclist/types"
)

// node is the header stored by the allocator next to the record.
type node struct {
	Previous types.NodeAddress
	Next     types.NodeAddress
}
