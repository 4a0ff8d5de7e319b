package entity

import (
	"time"

	"github.com/shandysiswandi/gocadastro/internal/pkg/goerror"
)

// User is a persisted registration. The password is only ever kept hashed.
type User struct {
	ID           int64
	Nome         string
	Email        string
	CPF          string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserListFilter struct {
	Search string
	Page   int32
	Size   int32
}

// Offset is the number of rows skipped before the requested page.
func (f UserListFilter) Offset() int32 {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Size
}

// UniqueViolation reports the unique attribute a write collided on. It
// unwraps to goerror.ErrConflict.
type UniqueViolation struct {
	Field Field
}

func (e *UniqueViolation) Error() string {
	return "unique violation on " + e.Field.String()
}

func (e *UniqueViolation) Unwrap() error {
	return goerror.ErrConflict
}
