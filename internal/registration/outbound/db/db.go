// Package db is the Postgres user store.
package db

import (
	"context"
	_ "embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/gocadastro/internal/pkg/goerror"
	"github.com/shandysiswandi/gocadastro/internal/pkg/instrument"
	"github.com/shandysiswandi/gocadastro/internal/registration/entity"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Schema is the table layout the store expects. Provisioning it is left to
// the deployment.
//
//go:embed schema.sql
var Schema string

const (
	constraintEmail = "usuarios_email_key"
	constraintCPF   = "usuarios_cpf_key"

	readAttempts = 3
	readBackoff  = 50 * time.Millisecond
)

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

// - 23505 unique violation → *entity.UniqueViolation for a known constraint,
// goerror.ErrConflict otherwise
// - no rows → goerror.ErrNotFound
func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case constraintEmail:
			return &entity.UniqueViolation{Field: entity.FieldEmail}
		case constraintCPF:
			return &entity.UniqueViolation{Field: entity.FieldCPF}
		default:
			return goerror.ErrConflict
		}
	}

	return err
}

// read retries fn while the driver reports the failure as safe to retry
// (nothing reached the server).
func (s *DB) read(ctx context.Context, fn func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(readAttempts-1, retry.NewExponential(readBackoff))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && pgconn.SafeToRetry(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("registration.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
