package gcs

import (
	"context"
	"errors"

	"cloud.google.com/go/storage"

	repo "github.com/karanshah229/taskapp/internal/domain/repository"
	"github.com/karanshah229/taskapp/pkg/helpers"
)

// AvatarStore keeps each avatar as the object avatars/<userID>.png.
type AvatarStore struct {
	client *storage.Client
	bucket string
}

func NewAvatarStore(client *storage.Client, bucket string) *AvatarStore {
	return &AvatarStore{client: client, bucket: bucket}
}

func objectPath(userID string) string {
	return "avatars/" + userID + ".png"
}

func (s *AvatarStore) PutAvatar(ctx context.Context, userID string, png []byte) error {
	return helpers.UploadObject(ctx, s.client, s.bucket, objectPath(userID), "image/png", png)
}

func (s *AvatarStore) GetAvatar(ctx context.Context, userID string) ([]byte, error) {
	data, err := helpers.ReadObject(ctx, s.client, s.bucket, objectPath(userID))
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, repo.ErrNotFound
	}
	return data, err
}

func (s *AvatarStore) DeleteAvatar(ctx context.Context, userID string) error {
	err := helpers.DeleteObject(ctx, s.client, s.bucket, objectPath(userID))
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

var _ repo.AvatarStore = (*AvatarStore)(nil)
