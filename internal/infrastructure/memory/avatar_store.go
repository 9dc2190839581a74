package memory

import (
	"context"
	"slices"

	repo "github.com/karanshah229/taskapp/internal/domain/repository"
)

type AvatarStore struct {
	s *Store
}

func (a *AvatarStore) PutAvatar(ctx context.Context, userID string, png []byte) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if _, ok := a.s.users[userID]; !ok {
		return repo.ErrNotFound
	}
	a.s.avatars[userID] = slices.Clone(png)
	return nil
}

func (a *AvatarStore) GetAvatar(ctx context.Context, userID string) ([]byte, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	png, ok := a.s.avatars[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return slices.Clone(png), nil
}

func (a *AvatarStore) DeleteAvatar(ctx context.Context, userID string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	delete(a.s.avatars, userID)
	return nil
}
