package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/karanshah229/taskapp/internal/domain/entity"
	repo "github.com/karanshah229/taskapp/internal/domain/repository"
	"github.com/karanshah229/taskapp/pkg/helpers"
)

// TokenService issues bearer tokens and keeps each user's session list in sync.
// A token is valid only while it is signed correctly and still listed on its user.
type TokenService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Logger logrus.FieldLogger
}

func NewTokenService(users repo.UserRepository, jwt *helpers.JWTManager, logger logrus.FieldLogger) *TokenService {
	return &TokenService{Users: users, JWT: jwt, Logger: logger}
}

func (s *TokenService) Issue(ctx context.Context, u *entity.User) (string, error) {
	token, err := s.JWT.Generate(u.ID)
	if err != nil {
		helpers.LogError(s.Logger, "generate token failed", err, logrus.Fields{"user_id": u.ID})
		return "", err
	}
	if err := s.Users.AddToken(ctx, u.ID, token); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		helpers.LogError(s.Logger, "store token failed", err, logrus.Fields{"user_id": u.ID})
		return "", err
	}
	u.Tokens = append(u.Tokens, token)
	return token, nil
}

// Revoke drops one session; other sessions of the user stay valid.
func (s *TokenService) Revoke(ctx context.Context, u *entity.User, token string) error {
	if err := s.Users.RemoveToken(ctx, u.ID, token); err != nil {
		helpers.LogError(s.Logger, "revoke token failed", err, logrus.Fields{"user_id": u.ID})
		return err
	}
	kept := make([]string, 0, len(u.Tokens))
	for _, t := range u.Tokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
	return nil
}

func (s *TokenService) RevokeAll(ctx context.Context, u *entity.User) error {
	if err := s.Users.ClearTokens(ctx, u.ID); err != nil {
		helpers.LogError(s.Logger, "revoke all tokens failed", err, logrus.Fields{"user_id": u.ID})
		return err
	}
	u.Tokens = nil
	return nil
}

// Resolve maps a bearer token to its user. Every token problem is ErrUnauthenticated;
// storage failures are returned as-is.
func (s *TokenService) Resolve(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.JWT.Parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	u, err := s.Users.GetByIDAndToken(ctx, claims.UserID, token)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return u, nil
}
