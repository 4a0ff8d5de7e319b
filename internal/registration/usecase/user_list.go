package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gocadastro/internal/pkg/goerror"
	"github.com/shandysiswandi/gocadastro/internal/registration/entity"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type UserListInput struct {
	Search string // value already trimmed
	Page   int32  `validate:"gte=0"`
	Size   int32  `validate:"gte=0"`
}

type UserListOutput struct {
	Page  int32
	Size  int32
	Total int64
	Users []entity.User
}

func (s *Usecase) UserList(ctx context.Context, in UserListInput) (*UserListOutput, error) {
	ctx, span := s.startSpan(ctx, "UserList")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	if in.Size <= 0 || in.Size > maxPageSize {
		in.Size = defaultPageSize
	}
	filter := entity.UserListFilter{
		Search: in.Search,
		Page:   max(in.Page, 1),
		Size:   in.Size,
	}

	users, count, err := s.repoDB.ListUsers(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list users", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserListOutput{
		Page:  filter.Page,
		Size:  filter.Size,
		Total: count,
		Users: users,
	}, nil
}
