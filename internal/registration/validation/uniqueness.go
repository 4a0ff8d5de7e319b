package validation

import (
	"context"
	"errors"
	"fmt"

	"github.com/shandysiswandi/gocadastro/internal/pkg/goerror"
	"github.com/shandysiswandi/gocadastro/internal/registration/entity"
)

// Store finds existing users by their unique attributes. goerror.ErrNotFound
// means no such user; any other error is a lookup failure.
type Store interface {
	FindUserByEmail(ctx context.Context, email string) (*entity.User, error)
	FindUserByCPF(ctx context.Context, cpf string) (*entity.User, error)
}

// LookupError reports that the uniqueness lookup of Field could not complete.
type LookupError struct {
	Field entity.Field
	Err   error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("validation: uniqueness lookup of %s failed: %v", e.Field, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Lookup resolves a value to the user holding it.
type Lookup func(ctx context.Context, value string) (*entity.User, error)

// UniquenessChecker fails a field when its value already belongs to a user.
type UniquenessChecker struct {
	Field   entity.Field
	Message string
	Lookup  Lookup
}

// Check reports the failure message and true when value is taken. A lookup
// error other than not-found is returned as a *LookupError.
func (u UniquenessChecker) Check(ctx context.Context, value string) (string, bool, *LookupError) {
	_, err := u.Lookup(ctx, value)
	switch {
	case err == nil:
		return u.Message, true, nil
	case errors.Is(err, goerror.ErrNotFound):
		return "", false, nil
	default:
		return "", false, &LookupError{Field: u.Field, Err: err}
	}
}

// RegistrationUniqueness declares the uniqueness checks, in field order.
func RegistrationUniqueness(c *Catalog, store Store) []UniquenessChecker {
	return []UniquenessChecker{
		{Field: entity.FieldEmail, Message: c.Text(MsgEmailExists), Lookup: store.FindUserByEmail},
		{Field: entity.FieldCPF, Message: c.Text(MsgCPFExists), Lookup: store.FindUserByCPF},
	}
}
