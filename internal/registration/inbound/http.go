package inbound

import (
	"context"

	"github.com/shandysiswandi/gocadastro/internal/pkg/router"
	"github.com/shandysiswandi/gocadastro/internal/registration/usecase"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	ValidateOnly(ctx context.Context, in usecase.ValidateInput) error

	UserList(ctx context.Context, in usecase.UserListInput) (*usecase.UserListOutput, error)
	UserDetail(ctx context.Context, in usecase.UserDetailInput) (*usecase.UserDetailOutput, error)
	UserUpdate(ctx context.Context, in usecase.UserUpdateInput) (*usecase.UserUpdateOutput, error)
	UserDelete(ctx context.Context, in usecase.UserDeleteInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/usuarios", end.Register)
	r.POST("/api/v1/usuarios/validate", end.Validate)

	r.GET("/api/v1/usuarios", end.UserList)
	r.GET("/api/v1/usuarios/:id", end.UserDetail)
	r.PUT("/api/v1/usuarios/:id", end.UserUpdate)
	r.DELETE("/api/v1/usuarios/:id", end.UserDelete)
}
