package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node with the given node ID.
// Servers and workers must use distinct node IDs.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New generates a new time-ordered int64 ID. Init must have been called.
func New() int64 {
	return node.Generate().Int64()
}

// Parse converts the decimal string form used in JSON payloads back to an ID.
func Parse(s string) (int64, error) {
	sf, err := snowflake.ParseString(s)
	if err != nil {
		return 0, err
	}
	return sf.Int64(), nil
}
