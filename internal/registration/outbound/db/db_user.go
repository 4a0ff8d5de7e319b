package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/gocadastro/internal/pkg/goerror"
	"github.com/shandysiswandi/gocadastro/internal/registration/entity"
)

const userColumns = `id, nome, email, cpf, senha_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Nome, &u.Email, &u.CPF, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *DB) getUser(ctx context.Context, query string, arg any) (*entity.User, error) {
	var user *entity.User
	err := s.read(ctx, func(ctx context.Context) error {
		var err error
		user, err = scanUser(s.conn.QueryRow(ctx, query, arg))
		return err
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	return user, nil
}

func (s *DB) FindUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "FindUserByEmail")
	defer func() { s.endSpan(span, err) }()

	return s.getUser(ctx, `SELECT `+userColumns+` FROM usuarios WHERE lower(email) = lower($1)`, email)
}

func (s *DB) FindUserByCPF(ctx context.Context, cpf string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "FindUserByCPF")
	defer func() { s.endSpan(span, err) }()

	return s.getUser(ctx, `SELECT `+userColumns+` FROM usuarios WHERE cpf = $1`, cpf)
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	return s.getUser(ctx, `SELECT `+userColumns+` FROM usuarios WHERE id = $1`, id)
}

func (s *DB) ListUsers(ctx context.Context, filter entity.UserListFilter) (_ []entity.User, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListUsers")
	defer func() { s.endSpan(span, err) }()

	const where = ` WHERE ($1 = '' OR nome ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')`

	var total int64
	if err = s.read(ctx, func(ctx context.Context) error {
		return s.conn.QueryRow(ctx, `SELECT count(*) FROM usuarios`+where, filter.Search).Scan(&total)
	}); err != nil {
		return nil, 0, s.mapError(err)
	}

	var users []entity.User
	err = s.read(ctx, func(ctx context.Context) error {
		rows, err := s.conn.Query(ctx,
			`SELECT `+userColumns+` FROM usuarios`+where+` ORDER BY id DESC LIMIT $2 OFFSET $3`,
			filter.Search, filter.Size, filter.Offset(),
		)
		if err != nil {
			return err
		}
		users, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.User, error) {
			u, err := scanUser(row)
			if err != nil {
				return entity.User{}, err
			}
			return *u, nil
		})
		return err
	})
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	return users, total, nil
}

func (s *DB) CreateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO usuarios (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Nome, user.Email, user.CPF, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	err = s.mapError(err)
	return err
}

// UpdateUser rewrites every mutable column; id and created_at are kept.
func (s *DB) UpdateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUser")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE usuarios SET nome = $2, email = $3, cpf = $4, senha_hash = $5, updated_at = $6 WHERE id = $1`,
		user.ID, user.Nome, user.Email, user.CPF, user.PasswordHash, user.UpdatedAt,
	)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
	}
	return err
}

func (s *DB) DeleteUser(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteUser")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
	}
	return err
}
