package application

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karanshah229/taskapp/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func TestRegister(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u, err := e.users.Register(ctx, RegisterInput{Name: "  Ann ", Age: 30, Email: " Ann@Example.COM ", Password: "red12345"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.NotEqual(t, "red12345", u.Password)
	assert.Equal(t, []string{"ann@example.com"}, e.notifier.welcome)

	_, err = e.users.Register(ctx, RegisterInput{Name: "Other", Email: "ann@example.com", Password: "blue12345"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{"missing name", RegisterInput{Email: "a@b.co", Password: "red12345"}, "name"},
		{"bad email", RegisterInput{Name: "A", Email: "nope", Password: "red12345"}, "email"},
		{"negative age", RegisterInput{Name: "A", Age: -1, Email: "a@b.co", Password: "red12345"}, "age"},
		{"short password", RegisterInput{Name: "A", Email: "a@b.co", Password: "abc"}, "password"},
		{"contains password", RegisterInput{Name: "A", Email: "a@b.co", Password: "MyPassWord1"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			_, err := e.users.Register(context.Background(), tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestVerifyCredentials_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.register(t, "ann@example.com")

	_, errUnknown := e.users.VerifyCredentials(ctx, "nobody@example.com", "red12345")
	_, errWrong := e.users.VerifyCredentials(ctx, "ann@example.com", "wrong123")
	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
	assert.ErrorIs(t, errWrong, ErrUnableToLogin)

	u, err := e.users.VerifyCredentials(ctx, "ANN@example.com", "red12345")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", u.Email)
}

func TestUpdateProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "ann@example.com")
	e.register(t, "bob@example.com")
	oldHash := u.Password

	_, err := e.users.UpdateProfile(ctx, u, UserPatch{Password: ptr("password123")})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, oldHash, u.Password, "failed update leaves the user untouched")

	_, err = e.users.UpdateProfile(ctx, u, UserPatch{Email: ptr("BOB@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)

	got, err := e.users.UpdateProfile(ctx, u, UserPatch{Name: ptr("Annie"), Age: ptr(31)})
	require.NoError(t, err)
	assert.Equal(t, "Annie", got.Name)
	assert.Equal(t, 31, got.Age)
	assert.Equal(t, oldHash, got.Password, "password is only re-hashed when supplied")

	_, err = e.users.UpdateProfile(ctx, u, UserPatch{Password: ptr("green123")})
	require.NoError(t, err)
	_, err = e.users.VerifyCredentials(ctx, "ann@example.com", "green123")
	assert.NoError(t, err)
}

func TestDeleteUser_CascadesOnlyOwnTasks(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann := e.register(t, "ann@example.com")
	bob := e.register(t, "bob@example.com")

	for _, d := range []string{"one", "two"} {
		_, err := e.tasks.Create(ctx, ann, CreateTaskInput{Description: d})
		require.NoError(t, err)
	}
	_, err := e.tasks.Create(ctx, bob, CreateTaskInput{Description: "bob's"})
	require.NoError(t, err)

	require.NoError(t, e.users.DeleteUser(ctx, ann))

	_, err = e.users.GetByID(ctx, ann.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	left, err := e.store.Tasks().List(ctx, ann.ID, entity.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, left)

	bobs, err := e.tasks.List(ctx, bob, entity.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, bobs, 1)
	assert.Equal(t, []string{"ann@example.com"}, e.notifier.farewell)
}

func TestGetByID_NotFound(t *testing.T) {
	e := newEnv(t)
	_, err := e.users.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetAvatar(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "ann@example.com")

	_, err := e.users.GetAvatar(ctx, u)
	assert.ErrorIs(t, err, ErrAvatarNotFound)

	require.NoError(t, e.users.SetAvatar(ctx, u, jpegBytes(t, 640, 480)))
	data, err := e.users.GetAvatar(ctx, u)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), AvatarSize)
	assert.LessOrEqual(t, img.Bounds().Dy(), AvatarSize)

	require.NoError(t, e.users.ClearAvatar(ctx, u))
	require.NoError(t, e.users.ClearAvatar(ctx, u), "clearing twice is fine")
	_, err = e.users.GetAvatar(ctx, u)
	assert.ErrorIs(t, err, ErrAvatarNotFound)
}

func TestSetAvatar_Rejects(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "ann@example.com")

	err := e.users.SetAvatar(ctx, u, make([]byte, 11_000_000))
	assert.ErrorIs(t, err, ErrValidation)

	err = e.users.SetAvatar(ctx, u, []byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrValidation)

	err = e.users.SetAvatar(ctx, u, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

// hugePNGHeader declares a 20000x20000 grayscale PNG in under 50 bytes.
func hugePNGHeader() []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], 20000)
	binary.BigEndian.PutUint32(ihdr[4:], 20000)
	ihdr[8] = 8
	chunk := append([]byte("IHDR"), ihdr...)

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestSetAvatar_RejectsHugeDimensions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "ann@example.com")

	err := e.users.SetAvatar(ctx, u, hugePNGHeader())
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "avatar", verr.Field)
	assert.Contains(t, verr.Reason, "pixels")

	_, err = e.users.GetAvatar(ctx, u)
	assert.ErrorIs(t, err, ErrAvatarNotFound)
}
