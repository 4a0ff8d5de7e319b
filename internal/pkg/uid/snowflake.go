package uid

import (
	"os"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates int64 ids using the Twitter snowflake layout.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake builds a generator for the node derived from the host name.
func NewSnowflake() (*Snowflake, error) {
	return NewSnowflakeNode(nodeFromHostname())
}

// NewSnowflakeNode builds a generator for an explicit node number (0-1023).
func NewSnowflakeNode(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: n}, nil
}

// Generate returns a new snowflake id.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

func nodeFromHostname() int64 {
	host, err := os.Hostname()
	if err != nil {
		return 1
	}

	var h int64
	for i := 0; i < len(host); i++ {
		h = (h*31 + int64(host[i])) % 1024
	}
	return h
}
