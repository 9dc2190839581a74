package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/karanshah229/taskapp/internal/domain/entity"
	repo "github.com/karanshah229/taskapp/internal/domain/repository"
)

type UserRepository struct {
	s    *Store
	held bool
}

func copyUser(u entity.User) *entity.User {
	u.Tokens = slices.Clone(u.Tokens)
	u.Avatar = nil
	return &u
}

func (r *UserRepository) emailTaken(email, exceptID string) bool {
	for id, u := range r.s.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	defer r.s.lock(r.held)()
	if r.emailTaken(u.Email, "") {
		return repo.ErrDuplicateEmail
	}
	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = *copyUser(*u)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	defer r.s.lock(r.held)()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	defer r.s.lock(r.held)()
	for _, u := range r.s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *UserRepository) GetByIDAndToken(ctx context.Context, id, token string) (*entity.User, error) {
	defer r.s.lock(r.held)()
	u, ok := r.s.users[id]
	if !ok || !u.HasToken(token) {
		return nil, repo.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	defer r.s.lock(r.held)()
	cur, ok := r.s.users[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return repo.ErrDuplicateEmail
	}
	cur.Name, cur.Age, cur.Email, cur.Password = u.Name, u.Age, u.Email, u.Password
	cur.UpdatedAt = time.Now().UTC()
	u.UpdatedAt = cur.UpdatedAt
	r.s.users[u.ID] = cur
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lock(r.held)()
	if _, ok := r.s.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.users, id)
	delete(r.s.avatars, id)
	return nil
}

func (r *UserRepository) AddToken(ctx context.Context, id, token string) error {
	return r.mutateTokens(id, func(tokens []string) []string { return append(tokens, token) })
}

func (r *UserRepository) RemoveToken(ctx context.Context, id, token string) error {
	return r.mutateTokens(id, func(tokens []string) []string {
		return slices.DeleteFunc(tokens, func(t string) bool { return t == token })
	})
}

func (r *UserRepository) ClearTokens(ctx context.Context, id string) error {
	return r.mutateTokens(id, func([]string) []string { return nil })
}

func (r *UserRepository) mutateTokens(id string, fn func([]string) []string) error {
	defer r.s.lock(r.held)()
	u, ok := r.s.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Tokens = fn(slices.Clone(u.Tokens))
	r.s.users[id] = u
	return nil
}
