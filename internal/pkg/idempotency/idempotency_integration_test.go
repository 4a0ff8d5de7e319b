//go:build integration

package idempotency

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.uber.org/atomic"
)

func TestStateTracker_Integration_Concurrent(t *testing.T) {
	ctx := context.Background()

	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	url, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })

	tracker := New(client, "it:")

	var (
		ran        atomic.Int32
		inProgress atomic.Int32
		wg         sync.WaitGroup
		start      = make(chan struct{})
	)
	for range 8 {
		wg.Go(func() {
			<-start
			err := tracker.Exec(ctx, "cpf:31286578078", func(context.Context) error {
				ran.Inc()
				time.Sleep(200 * time.Millisecond)
				return nil
			})
			if errors.Is(err, ErrAlreadyInProgress) {
				inProgress.Inc()
			}
		})
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), ran.Load())
	assert.Equal(t, int32(7), inProgress.Load())

	err = tracker.Exec(ctx, "cpf:31286578078", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	ttl, err := client.TTL(ctx, "it:cpf:31286578078").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}
