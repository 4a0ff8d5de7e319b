// Package idempotency serializes work per key on top of redis. SET NX takes the
// lock; a successful run leaves a "completed" marker until its TTL runs out.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrAlreadyInProgress = errors.New("operation already in progress")
	ErrAlreadyCompleted  = errors.New("operation already completed")
	ErrInvalidState      = errors.New("invalid state")
	// ErrNotMarked means fn succeeded but the completed marker could not be
	// written. The work itself is done.
	ErrNotMarked = errors.New("operation done but not marked completed")
)

type State string

const (
	StateNone       State = "none"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateError      State = "error"
)

func (s State) String() string {
	return string(s)
}

type Idempotency interface {
	Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error)
	MarkCompleted(ctx context.Context, key string, ttl time.Duration) error
	Release(ctx context.Context, key string) error
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

type StateTracker struct {
	client *redis.Client
	prefix string
}

func New(client *redis.Client, prefix string) *StateTracker {
	if prefix == "" {
		prefix = "idempotency:"
	}

	return &StateTracker{client: client, prefix: prefix}
}

const (
	defaultLockDuration = 30 * time.Second
	defaultStateTTL     = time.Minute
)

// CompletedCheck reports whether the outcome behind a completed marker still
// holds.
type CompletedCheck func(ctx context.Context) (bool, error)

type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
	stillHolds   CompletedCheck
}

func WithLockDuration(d time.Duration) Option {
	return func(o *execOptions) {
		if d > 0 {
			o.lockDuration = d
		}
	}
}

func WithStateTTL(ttl time.Duration) Option {
	return func(o *execOptions) {
		if ttl > 0 {
			o.stateTTL = ttl
		}
	}
}

// WithCompletedCheck makes Exec consult check before answering
// ErrAlreadyCompleted. A marker whose outcome no longer holds is dropped and
// the lock is taken again.
func WithCompletedCheck(check CompletedCheck) Option {
	return func(o *execOptions) {
		o.stillHolds = check
	}
}

// Acquire tries to take the lock for key. StateNone means the caller owns it.
func (s *StateTracker) Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error) {
	fk := s.prefix + key

	for range 2 {
		acquired, err := s.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
		if err != nil {
			return StateError, err
		}
		if acquired {
			return StateNone, nil
		}

		current, err := s.client.Get(ctx, fk).Result()
		if errors.Is(err, redis.Nil) {
			// holder expired between SETNX and GET
			continue
		}
		if err != nil {
			return StateError, err
		}

		switch State(current) {
		case StateInProgress, StateCompleted:
			return State(current), nil
		default:
			return StateError, ErrInvalidState
		}
	}

	return StateError, ErrInvalidState
}

func (s *StateTracker) MarkCompleted(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, StateCompleted.String(), ttl).Err()
}

func (s *StateTracker) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

// Exec runs fn while holding the lock for key. A failed fn releases the lock.
// When fn succeeds but the marker write fails, the returned error wraps
// ErrNotMarked.
func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	o := execOptions{lockDuration: defaultLockDuration, stateTTL: defaultStateTTL}
	for _, opt := range opts {
		opt(&o)
	}

	if err := s.lock(ctx, key, o); err != nil {
		return err
	}

	detached := context.WithoutCancel(ctx)
	if err := fn(ctx); err != nil {
		if relErr := s.Release(detached, key); relErr != nil {
			return errors.Join(err, relErr)
		}
		return err
	}

	if err := s.MarkCompleted(detached, key, o.stateTTL); err != nil {
		return errors.Join(ErrNotMarked, err)
	}
	return nil
}

func (s *StateTracker) lock(ctx context.Context, key string, o execOptions) error {
	state, err := s.Acquire(ctx, key, o.lockDuration)
	if err != nil {
		return err
	}

	switch state {
	case StateNone:
		return nil
	case StateInProgress:
		return ErrAlreadyInProgress
	}

	if o.stillHolds == nil {
		return ErrAlreadyCompleted
	}
	holds, err := o.stillHolds(ctx)
	if err != nil {
		return err
	}
	if holds {
		return ErrAlreadyCompleted
	}

	// stale marker; a racing caller may win the lock after the delete
	if err := s.Release(ctx, key); err != nil {
		return err
	}
	state, err = s.Acquire(ctx, key, o.lockDuration)
	if err != nil {
		return err
	}
	switch state {
	case StateNone:
		return nil
	case StateInProgress:
		return ErrAlreadyInProgress
	default:
		return ErrAlreadyCompleted
	}
}
