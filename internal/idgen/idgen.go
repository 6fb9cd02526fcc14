package idgen

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
)

// NewID returns a record id.
func NewID() string {
	return uuid.NewString()
}

// NewKSUID returns a time-sortable id used for object keys.
func NewKSUID() string {
	return ksuid.New().String()
}

// References produces short human-readable booking references.
type References struct {
	node *snowflake.Node
}

// NewReferences creates a generator for the given snowflake node. An invalid
// node id falls back to node 1.
func NewReferences(nodeID int64) *References {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		node, _ = snowflake.NewNode(1)
	}
	return &References{node: node}
}

// Booking returns a reference such as "BR-1A2B3C4D5E".
func (r *References) Booking() string {
	return "BR-" + strings.ToUpper(r.node.Generate().Base36())
}
