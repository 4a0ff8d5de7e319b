package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/gocadastro/internal/pkg/router"
	"github.com/shandysiswandi/gocadastro/internal/registration/entity"
	"github.com/shandysiswandi/gocadastro/internal/registration/usecase"
)

// HTTPEndpoint exposes HTTP handlers for user registration.
type HTTPEndpoint struct {
	uc uc
}

// Register validates and stores a new user.
// @Summary Register user
// @Description Validates the payload, checks email and CPF uniqueness and stores the user.
// @Tags Usuarios
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} router.successResponse{data=RegisterResponse} "Registered user"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Registration already in progress"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/usuarios [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Nome:  req.Nome,
		Email: req.Email,
		Senha: req.Senha,
		CPF:   req.CPF,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{User: toUserResponse(resp.User)}, nil
}

// Validate runs the registration rules without storing.
// @Summary Validate registration
// @Tags Usuarios
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 200 {object} router.successResponse{data=ValidateResponse} "Payload is valid"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/usuarios/validate [post]
func (h *HTTPEndpoint) Validate(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ValidateOnly(r.Context(), usecase.ValidateInput{
		Nome:  req.Nome,
		Email: req.Email,
		Senha: req.Senha,
		CPF:   req.CPF,
	}); err != nil {
		return nil, err
	}

	return ValidateResponse{Valid: true}, nil
}

// @Summary List users
// @Tags Usuarios
// @Produce json
// @Param search query string false "Search by nome or email"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} router.successResponse{data=UsersResponse} "Users"
// @Failure 400 {object} router.errorResponse "Invalid query"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/usuarios [get]
func (h *HTTPEndpoint) UserList(r *router.Request) (any, error) {
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UserList(r.Context(), usecase.UserListInput{
		Search: r.GetQuery("search"),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		return nil, err
	}

	return UsersResponse{
		total: resp.Total,
		size:  resp.Size,
		page:  resp.Page,
		Users: lo.Map(resp.Users, func(item entity.User, _ int) UserResponse { return toUserResponse(item) }),
	}, nil
}

// @Summary Get user detail
// @Tags Usuarios
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} router.successResponse{data=UserDetailResponse} "User detail"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/usuarios/{id} [get]
func (h *HTTPEndpoint) UserDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UserDetail(r.Context(), usecase.UserDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return UserDetailResponse{User: toUserResponse(resp.User)}, nil
}

// @Summary Update user
// @Description Replaces every field. Email and CPF may stay the user's own.
// @Tags Usuarios
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body RegisterRequest true "New user data"
// @Success 200 {object} router.successResponse{data=UserUpdateResponse} "Updated user"
// @Failure 400 {object} router.errorResponse "Invalid request"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/usuarios/{id} [put]
func (h *HTTPEndpoint) UserUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.UserUpdate(r.Context(), usecase.UserUpdateInput{
		ID: id,
		RegisterInput: usecase.RegisterInput{
			Nome:  req.Nome,
			Email: req.Email,
			Senha: req.Senha,
			CPF:   req.CPF,
		},
	})
	if err != nil {
		return nil, err
	}

	return UserUpdateResponse{User: toUserResponse(resp.User)}, nil
}

// @Summary Delete user
// @Tags Usuarios
// @Param id path int true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/usuarios/{id} [delete]
func (h *HTTPEndpoint) UserDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.UserDelete(r.Context(), usecase.UserDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}
