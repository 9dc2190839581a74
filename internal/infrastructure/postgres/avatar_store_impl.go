package postgres

import (
	"context"

	repo "github.com/karanshah229/taskapp/internal/domain/repository"
)

// AvatarStore keeps avatars in the users.avatar column.
type AvatarStore struct {
	db DBTX
}

func NewAvatarStore(db DBTX) *AvatarStore {
	return &AvatarStore{db: db}
}

func (s *AvatarStore) PutAvatar(ctx context.Context, userID string, png []byte) error {
	tag, err := s.db.Exec(ctx, `UPDATE users SET avatar = $2, updated_at = now() WHERE id = $1`, userID, png)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *AvatarStore) GetAvatar(ctx context.Context, userID string) ([]byte, error) {
	var png []byte
	if err := s.db.QueryRow(ctx, `SELECT avatar FROM users WHERE id = $1`, userID).Scan(&png); err != nil {
		return nil, mapError(err)
	}
	if png == nil {
		return nil, repo.ErrNotFound
	}
	return png, nil
}

func (s *AvatarStore) DeleteAvatar(ctx context.Context, userID string) error {
	_, err := s.db.Exec(ctx, `UPDATE users SET avatar = NULL, updated_at = now() WHERE id = $1 AND avatar IS NOT NULL`, userID)
	return mapError(err)
}

var _ repo.AvatarStore = (*AvatarStore)(nil)
