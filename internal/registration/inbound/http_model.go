package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/gocadastro/internal/registration/entity"
)

// RegisterRequest carries the registration payload. Absent keys decode as empty.
type RegisterRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
	CPF   string `json:"cpf"`
}

type UserResponse struct {
	ID        int64     `json:"id,string"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	CPF       string    `json:"cpf"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Nome:      u.Nome,
		Email:     u.Email,
		CPF:       u.CPF,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type RegisterResponse struct {
	User UserResponse `json:"user"`
}

func (RegisterResponse) StatusCode() int {
	return http.StatusCreated
}

func (RegisterResponse) Message() string {
	return "Usuário cadastrado com sucesso"
}

type ValidateResponse struct {
	Valid bool `json:"valid"`
}

func (ValidateResponse) Message() string {
	return "Dados válidos"
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
	// meta
	total int64
	size  int32
	page  int32
}

func (r UsersResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.total,
		"size":  r.size,
		"page":  r.page,
	}
}

type UserDetailResponse struct {
	User UserResponse `json:"user"`
}

type UserUpdateResponse struct {
	User UserResponse `json:"user"`
}

func (UserUpdateResponse) Message() string {
	return "Usuário atualizado com sucesso"
}
