package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gocadastro/internal/pkg/goerror"
	"github.com/shandysiswandi/gocadastro/internal/pkg/idempotency"
	"github.com/shandysiswandi/gocadastro/internal/registration/entity"
	"github.com/shandysiswandi/gocadastro/internal/registration/validation"
)

type (
	RegisterInput struct {
		Nome  string
		Email string
		Senha string
		CPF   string
	}

	RegisterOutput struct {
		User entity.User
	}
)

func (in RegisterInput) payload() entity.Payload {
	return entity.Payload{Nome: in.Nome, Email: in.Email, Senha: in.Senha, CPF: in.CPF}
}

func (in *RegisterInput) normalize() {
	in.Nome = strings.TrimSpace(in.Nome)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.normalize()

	if err := s.validate(ctx, in.payload()); err != nil {
		return nil, err
	}

	var user entity.User
	err := s.exclusive(ctx, in.CPF, func(ctx context.Context) error {
		var err error
		user, err = s.createUser(ctx, in)
		return err
	})
	switch {
	case errors.Is(err, idempotency.ErrNotMarked):
		slog.WarnContext(ctx, "user stored but registration lock not marked", "user_id", user.ID, "error", err)
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		slog.WarnContext(ctx, "registration already in progress", "email", in.Email)
		return nil, goerror.NewBusiness("Cadastro em andamento, tente novamente", goerror.CodeTooManyRequest)
	case errors.Is(err, idempotency.ErrAlreadyCompleted):
		return nil, s.orchestrator.Taken(entity.FieldCPF).Err()
	case err != nil:
		var gerr *goerror.Error
		if errors.As(err, &gerr) {
			return nil, err
		}
		slog.ErrorContext(ctx, "failed to run registration exclusively", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if s.cfg.GetBool("modules.registration.publish_event") {
		event := UserRegisteredEvent{
			UserID:       user.ID,
			Nome:         user.Nome,
			Email:        user.Email,
			RegisteredAt: user.CreatedAt,
		}
		s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
			if err := s.repoMessaging.PublishUserRegistered(ctx, event); err != nil {
				slog.ErrorContext(ctx, "failed to publish user registered", "user_id", event.UserID, "error", err)
				return err
			}
			return nil
		})
	}

	return &RegisterOutput{User: user}, nil
}

func (s *Usecase) createUser(ctx context.Context, in RegisterInput) (entity.User, error) {
	hashed, err := s.bcrypt.Hash(in.Senha)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return entity.User{}, goerror.NewServer(err)
	}

	now := s.clock.Now()
	user := entity.User{
		ID:           s.uid.Generate(),
		Nome:         in.Nome,
		Email:        in.Email,
		CPF:          in.CPF,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.repoDB.CreateUser(ctx, user)
	var unique *entity.UniqueViolation
	if errors.As(err, &unique) {
		slog.WarnContext(ctx, "registration collided on insert", "field", unique.Field.String())
		return entity.User{}, s.orchestrator.Taken(unique.Field).Err()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create user", "email", user.Email, "error", err)
		return entity.User{}, goerror.NewServer(err)
	}

	return user, nil
}

// exclusive runs fn under the per-CPF lock when a tracker is set. A completed
// marker only rejects while a user with that CPF is still stored.
func (s *Usecase) exclusive(ctx context.Context, cpf string, fn func(context.Context) error) error {
	if s.idemp == nil {
		return fn(ctx)
	}

	return s.idemp.Exec(ctx, registrationKey(cpf), fn,
		idempotency.WithStateTTL(s.cfg.GetSecond("modules.registration.idempotency_ttl_seconds")),
		idempotency.WithCompletedCheck(func(ctx context.Context) (bool, error) {
			_, err := s.repoDB.FindUserByCPF(ctx, cpf)
			if errors.Is(err, goerror.ErrNotFound) {
				return false, nil
			}
			return err == nil, err
		}),
	)
}

func registrationKey(cpf string) string {
	return "registration:" + cpf
}

func (s *Usecase) validate(ctx context.Context, p entity.Payload) error {
	verdict, err := s.orchestrator.Validate(ctx, p)
	if err != nil {
		return s.lookupFailed(ctx, err)
	}

	return verdict.Err()
}

func (s *Usecase) lookupFailed(ctx context.Context, err error) error {
	var lerr *validation.LookupError
	if errors.As(err, &lerr) {
		slog.ErrorContext(ctx, "failed to look up uniqueness", "field", lerr.Field.String(), "error", lerr.Err)
	} else {
		slog.ErrorContext(ctx, "failed to validate registration", "error", err)
	}
	return goerror.NewServer(err)
}
