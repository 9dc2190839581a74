package application

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/karanshah229/taskapp/internal/domain/entity"
	repo "github.com/karanshah229/taskapp/internal/domain/repository"
	"github.com/karanshah229/taskapp/pkg/helpers"
)

const (
	// MaxAvatarBytes is the largest upload accepted before decoding.
	MaxAvatarBytes = 5_000_000
	// AvatarSize bounds both sides of the stored avatar.
	AvatarSize = 300
)

type UserService struct {
	Users    repo.UserRepository
	Tx       repo.TxManager
	Avatars  repo.AvatarStore
	Notifier Notifier
	Index    TaskIndexer
	Logger   logrus.FieldLogger
}

func NewUserService(users repo.UserRepository, tx repo.TxManager, avatars repo.AvatarStore, notifier Notifier, index TaskIndexer, logger logrus.FieldLogger) *UserService {
	return &UserService{
		Users:    users,
		Tx:       tx,
		Avatars:  avatars,
		Notifier: notifier,
		Index:    index,
		Logger:   logger,
	}
}

type RegisterInput struct {
	Name     string
	Age      int
	Email    string
	Password string
}

// UserPatch carries the profile fields a user may change; nil means unchanged.
type UserPatch struct {
	Name     *string
	Age      *int
	Email    *string
	Password *string
}

type profileRules struct {
	Name  string `json:"name" validate:"required"`
	Age   int    `json:"age" validate:"gte=0"`
	Email string `json:"email" validate:"required,email"`
}

type passwordRules struct {
	Password string `json:"password" validate:"required,pwd"`
}

func validateProfile(u *entity.User) error {
	return check(profileRules{Name: u.Name, Age: u.Age, Email: u.Email})
}

func validatePassword(plain string) error {
	return check(passwordRules{Password: plain})
}

// Register creates a user with a hashed password. The caller issues the first token.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	u := &entity.User{
		Name:  strings.TrimSpace(in.Name),
		Age:   in.Age,
		Email: normalizeEmail(in.Email),
	}
	if err := validateProfile(u); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u.Password = hash

	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		helpers.LogError(s.Logger, "create user failed", err, logrus.Fields{"email": u.Email})
		return nil, err
	}

	if s.Notifier != nil {
		if err := s.Notifier.Welcome(ctx, u); err != nil {
			helpers.LogError(s.Logger, "queue welcome email failed", err, logrus.Fields{"user_id": u.ID})
		}
	}
	return u, nil
}

// VerifyCredentials fails with the same error for an unknown email and a wrong password.
func (s *UserService) VerifyCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnableToLogin
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrUnableToLogin
	}
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile merges p into u, validates the result and persists it.
// u is only modified when the update succeeds.
func (s *UserService) UpdateProfile(ctx context.Context, u *entity.User, p UserPatch) (*entity.User, error) {
	next := *u
	if p.Name != nil {
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Age != nil {
		next.Age = *p.Age
	}
	if p.Email != nil {
		next.Email = normalizeEmail(*p.Email)
	}
	if err := validateProfile(&next); err != nil {
		return nil, err
	}
	if p.Password != nil {
		if err := validatePassword(*p.Password); err != nil {
			return nil, err
		}
		hash, err := helpers.HashPassword(*p.Password)
		if err != nil {
			return nil, err
		}
		next.Password = hash
	}

	if err := s.Users.Update(ctx, &next); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		}
		helpers.LogError(s.Logger, "update user failed", err, logrus.Fields{"user_id": u.ID})
		return nil, err
	}
	*u = next
	return u, nil
}

// DeleteUser removes the user and every task it owns in one unit of work.
func (s *UserService) DeleteUser(ctx context.Context, u *entity.User) error {
	var removed int64
	err := s.Tx.WithinTx(ctx, func(ctx context.Context, r repo.Repos) error {
		n, err := r.Tasks.DeleteByOwner(ctx, u.ID)
		if err != nil {
			return err
		}
		removed = n
		return r.Users.Delete(ctx, u.ID)
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		helpers.LogError(s.Logger, "delete user failed", err, logrus.Fields{"user_id": u.ID})
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "tasks": removed}).Info("user deleted")
	}

	// External state lives outside the transaction; failures here only leave orphans.
	if s.Avatars != nil {
		if err := s.Avatars.DeleteAvatar(ctx, u.ID); err != nil && !errors.Is(err, repo.ErrNotFound) {
			helpers.LogError(s.Logger, "delete avatar failed", err, logrus.Fields{"user_id": u.ID})
		}
	}
	if s.Index != nil {
		if err := s.Index.RemoveOwner(ctx, u.ID); err != nil {
			helpers.LogError(s.Logger, "remove tasks from index failed", err, logrus.Fields{"user_id": u.ID})
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.Farewell(ctx, u); err != nil {
			helpers.LogError(s.Logger, "queue farewell email failed", err, logrus.Fields{"user_id": u.ID})
		}
	}
	return nil
}

// SetAvatar stores data as a PNG that fits within AvatarSize x AvatarSize.
func (s *UserService) SetAvatar(ctx context.Context, u *entity.User, data []byte) error {
	if len(data) == 0 {
		return &ValidationError{Field: "avatar", Reason: "is required"}
	}
	if len(data) > MaxAvatarBytes {
		return &ValidationError{Field: "avatar", Reason: "must be at most " + strconv.Itoa(MaxAvatarBytes) + " bytes"}
	}
	png, err := helpers.NormalizeImagePNG(data, AvatarSize, AvatarSize)
	if err != nil {
		if errors.Is(err, helpers.ErrNotAnImage) {
			return &ValidationError{Field: "avatar", Reason: "must be a jpg, jpeg or png image"}
		}
		if errors.Is(err, helpers.ErrImageTooLarge) {
			return &ValidationError{Field: "avatar", Reason: "must be at most " + strconv.Itoa(helpers.MaxImagePixels) + " pixels"}
		}
		return err
	}
	if err := s.Avatars.PutAvatar(ctx, u.ID, png); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		helpers.LogError(s.Logger, "store avatar failed", err, logrus.Fields{"user_id": u.ID})
		return err
	}
	u.Avatar = png
	return nil
}

// ClearAvatar is a no-op when the user has no avatar.
func (s *UserService) ClearAvatar(ctx context.Context, u *entity.User) error {
	if err := s.Avatars.DeleteAvatar(ctx, u.ID); err != nil && !errors.Is(err, repo.ErrNotFound) {
		helpers.LogError(s.Logger, "delete avatar failed", err, logrus.Fields{"user_id": u.ID})
		return err
	}
	u.Avatar = nil
	return nil
}

func (s *UserService) GetAvatar(ctx context.Context, u *entity.User) ([]byte, error) {
	png, err := s.Avatars.GetAvatar(ctx, u.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAvatarNotFound
		}
		return nil, err
	}
	return png, nil
}
