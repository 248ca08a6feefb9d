// Package ids mints entity identifiers and auction access codes.
package ids

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// Generator hands out time-ordered snowflake IDs for one node.
type Generator struct {
	node *snowflake.Node
}

// NewGenerator builds a generator for nodeID, falling back to node 1 when
// the ID is outside snowflake's node range.
func NewGenerator(nodeID int64) *Generator {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		node, _ = snowflake.NewNode(1) //nolint:errcheck // node 1 is always valid
	}
	return &Generator{node: node}
}

// Next returns a fresh positive ID.
func (g *Generator) Next() int64 {
	return g.node.Generate().Int64()
}

// accessCodeLen is the number of trailing KSUID characters kept. The tail
// is drawn from the KSUID's random payload.
const accessCodeLen = 8

// NewAccessCode returns a short uppercase code managers type to enter an
// auction.
func NewAccessCode() string {
	s := ksuid.New().String()
	return strings.ToUpper(s[len(s)-accessCodeLen:])
}
