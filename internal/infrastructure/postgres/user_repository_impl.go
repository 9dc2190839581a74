package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/karanshah229/taskapp/internal/domain/entity"
	repo "github.com/karanshah229/taskapp/internal/domain/repository"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, age, email, password, tokens, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Age, &u.Email, &u.Password, &u.Tokens, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (name, age, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Age, u.Email, u.Password)
	return mapError(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) GetByIDAndToken(ctx context.Context, id, token string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1 AND $2 = ANY(tokens)
	`, id, token))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET name = $1, age = $2, email = $3, password = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`, u.Name, u.Age, u.Email, u.Password, u.ID)
	return mapError(row.Scan(&u.UpdatedAt))
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM users WHERE id = $1`, id)
}

// Token list changes are single statements so concurrent logins never lose a token.
func (r *UserRepository) AddToken(ctx context.Context, id, token string) error {
	return r.execOne(ctx, `UPDATE users SET tokens = array_append(tokens, $2) WHERE id = $1`, id, token)
}

func (r *UserRepository) RemoveToken(ctx context.Context, id, token string) error {
	return r.execOne(ctx, `UPDATE users SET tokens = array_remove(tokens, $2) WHERE id = $1`, id, token)
}

func (r *UserRepository) ClearTokens(ctx context.Context, id string) error {
	return r.execOne(ctx, `UPDATE users SET tokens = '{}' WHERE id = $1`, id)
}

func (r *UserRepository) execOne(ctx context.Context, sql string, args ...any) error {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

var _ repo.UserRepository = (*UserRepository)(nil)
