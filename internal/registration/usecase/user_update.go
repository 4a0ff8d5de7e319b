package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gocadastro/internal/pkg/goerror"
	"github.com/shandysiswandi/gocadastro/internal/registration/entity"
)

type (
	// UserUpdateInput replaces every registration field of user ID. The same
	// rules as registration apply.
	UserUpdateInput struct {
		ID int64 `validate:"required,gt=0"`
		RegisterInput
	}

	UserUpdateOutput struct {
		User entity.User
	}
)

func (s *Usecase) UserUpdate(ctx context.Context, in UserUpdateInput) (*UserUpdateOutput, error) {
	ctx, span := s.startSpan(ctx, "UserUpdate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	in.normalize()

	current, err := s.repoDB.GetUserByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user not found", "user_id", in.ID)
		return nil, goerror.NewBusiness(messageUserNotFound, goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	verdict, err := s.orchestrator.ValidateExcluding(ctx, in.payload(), in.ID)
	if err != nil {
		return nil, s.lookupFailed(ctx, err)
	}
	if err := verdict.Err(); err != nil {
		return nil, err
	}

	hashed, err := s.bcrypt.Hash(in.Senha)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	user := *current
	user.Nome = in.Nome
	user.Email = in.Email
	user.CPF = in.CPF
	user.PasswordHash = string(hashed)
	user.UpdatedAt = s.clock.Now()

	err = s.repoDB.UpdateUser(ctx, user)
	var unique *entity.UniqueViolation
	switch {
	case errors.As(err, &unique):
		slog.WarnContext(ctx, "update collided on write", "user_id", user.ID, "field", unique.Field.String())
		return nil, s.orchestrator.Taken(unique.Field).Err()
	case errors.Is(err, goerror.ErrNotFound):
		slog.WarnContext(ctx, "user deleted during update", "user_id", user.ID)
		return nil, goerror.NewBusiness(messageUserNotFound, goerror.CodeNotFound)
	case err != nil:
		slog.ErrorContext(ctx, "failed to repo update user", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserUpdateOutput{User: user}, nil
}
