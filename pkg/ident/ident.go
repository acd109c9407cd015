package ident

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator issues prefixed, time-ordered ids that stay unique within
// the same millisecond. Log entries created for a whole batch in one
// pass must never collide.
type Generator struct {
	node *snowflake.Node
}

func NewGenerator(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("create id node: %w", err)
	}
	return &Generator{node: node}, nil
}

func (g *Generator) LogID() string {
	return "log-" + g.node.Generate().String()
}

func (g *Generator) RequestID() string {
	return "req-" + g.node.Generate().String()
}

func (g *Generator) ItemID() string {
	return "item-" + g.node.Generate().String()
}
