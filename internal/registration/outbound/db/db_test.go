package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shandysiswandi/gocadastro/internal/pkg/goerror"
	"github.com/shandysiswandi/gocadastro/internal/pkg/instrument"
	"github.com/shandysiswandi/gocadastro/internal/registration/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_mapError(t *testing.T) {
	s := NewDB(nil, instrument.NewNoop())
	errOther := errors.New("other")

	assert.NoError(t, s.mapError(nil))
	assert.ErrorIs(t, s.mapError(pgx.ErrNoRows), goerror.ErrNotFound)
	assert.Same(t, errOther, s.mapError(errOther))

	var uv *entity.UniqueViolation
	err := s.mapError(&pgconn.PgError{Code: "23505", ConstraintName: constraintEmail})
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, entity.FieldEmail, uv.Field)

	err = s.mapError(&pgconn.PgError{Code: "23505", ConstraintName: constraintCPF})
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, entity.FieldCPF, uv.Field)

	err = s.mapError(&pgconn.PgError{Code: "23505", ConstraintName: "usuarios_pkey"})
	assert.ErrorIs(t, err, goerror.ErrConflict)
	assert.False(t, errors.As(err, &uv))

	err = s.mapError(&pgconn.PgError{Code: "23502"})
	assert.False(t, errors.Is(err, goerror.ErrConflict))
}

func TestSchema(t *testing.T) {
	assert.Contains(t, Schema, constraintEmail)
	assert.Contains(t, Schema, constraintCPF)
}
