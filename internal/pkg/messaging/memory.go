package messaging

import (
	"context"
	"sync"
	"time"
)

// Published is a message recorded by Memory.
type Published struct {
	Destination string
	Message     Message
}

// Memory keeps published messages in process. It backs the "memory" driver
// used when no broker is configured, and tests.
type Memory struct {
	mu       sync.Mutex
	messages []Published
	closed   bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

func (m *Memory) Publish(ctx context.Context, destination string, msg Message) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrDestinationRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return PublishResult{}, ErrClosed
	}
	m.messages = append(m.messages, Published{Destination: destination, Message: msg})

	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

// Messages returns a copy of everything published so far.
func (m *Memory) Messages() []Published {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Published(nil), m.messages...)
}
