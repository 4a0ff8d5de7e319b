// Package memory is an in-process user store. It satisfies the same contract
// as the Postgres store and backs the "memory" store setting and tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/shandysiswandi/gocadastro/internal/pkg/goerror"
	"github.com/shandysiswandi/gocadastro/internal/registration/entity"
)

type Store struct {
	mu    sync.RWMutex
	users map[int64]entity.User
}

func New() *Store {
	return &Store{users: make(map[int64]entity.User)}
}

func (s *Store) find(match func(u entity.User) bool) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.find(func(u entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *Store) FindUserByCPF(ctx context.Context, cpf string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.find(func(u entity.User) bool { return u.CPF == cpf })
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &u, nil
}

// CreateUser rejects a duplicate id with goerror.ErrConflict and a duplicate
// email or CPF with *entity.UniqueViolation.
func (s *Store) CreateUser(ctx context.Context, user entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return goerror.ErrConflict
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return &entity.UniqueViolation{Field: entity.FieldEmail}
		}
		if u.CPF == user.CPF {
			return &entity.UniqueViolation{Field: entity.FieldCPF}
		}
	}

	s.users[user.ID] = user
	return nil
}

// UpdateUser replaces the stored user with the same id. Another user holding
// the email or CPF yields *entity.UniqueViolation.
func (s *Store) UpdateUser(ctx context.Context, user entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return goerror.ErrNotFound
	}
	for id, u := range s.users {
		if id == user.ID {
			continue
		}
		if strings.EqualFold(u.Email, user.Email) {
			return &entity.UniqueViolation{Field: entity.FieldEmail}
		}
		if u.CPF == user.CPF {
			return &entity.UniqueViolation{Field: entity.FieldCPF}
		}
	}

	s.users[user.ID] = user
	return nil
}

// ListUsers orders by id descending, newest first, like the Postgres store.
func (s *Store) ListUsers(ctx context.Context, filter entity.UserListFilter) ([]entity.User, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	matched := make([]entity.User, 0, len(s.users))
	for _, u := range s.users {
		if search == "" || strings.Contains(strings.ToLower(u.Nome), search) || strings.Contains(u.Email, search) {
			matched = append(matched, u)
		}
	}
	slices.SortFunc(matched, func(a, b entity.User) int { return cmp.Compare(b.ID, a.ID) })

	total := int64(len(matched))
	start := min(int(filter.Offset()), len(matched))
	end := len(matched)
	if filter.Size > 0 {
		end = min(start+int(filter.Size), len(matched))
	}

	return matched[start:end], total, nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(s.users, id)
	return nil
}
