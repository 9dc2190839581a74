package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karanshah229/taskapp/internal/domain/entity"
	repo "github.com/karanshah229/taskapp/internal/domain/repository"
)

func newUser(t *testing.T, s *Store, email string) *entity.User {
	t.Helper()
	u := &entity.User{Name: "Ann", Email: email, Password: "hash"}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := newUser(t, s, "a@example.com")
	b := newUser(t, s, "b@example.com")

	err := s.Users().Create(ctx, &entity.User{Name: "x", Email: "a@example.com"})
	assert.ErrorIs(t, err, repo.ErrDuplicateEmail)

	b.Email = a.Email
	assert.ErrorIs(t, s.Users().Update(ctx, b), repo.ErrDuplicateEmail)
}

func TestUserRepository_Tokens(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	users := s.Users()
	u := newUser(t, s, "a@example.com")

	require.NoError(t, users.AddToken(ctx, u.ID, "t1"))
	require.NoError(t, users.AddToken(ctx, u.ID, "t2"))

	_, err := users.GetByIDAndToken(ctx, u.ID, "t1")
	require.NoError(t, err)

	require.NoError(t, users.RemoveToken(ctx, u.ID, "t1"))
	_, err = users.GetByIDAndToken(ctx, u.ID, "t1")
	assert.ErrorIs(t, err, repo.ErrNotFound)
	got, err := users.GetByIDAndToken(ctx, u.ID, "t2")
	require.NoError(t, err)
	assert.Equal(t, []string{"t2"}, got.Tokens)

	require.NoError(t, users.ClearTokens(ctx, u.ID))
	_, err = users.GetByIDAndToken(ctx, u.ID, "t2")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	assert.ErrorIs(t, users.AddToken(ctx, "missing", "t"), repo.ErrNotFound)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u := newUser(t, s, "a@example.com")
	require.NoError(t, s.Users().AddToken(ctx, u.ID, "t1"))

	got, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.Tokens[0] = "changed"
	got.Name = "changed"

	again, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", again.Name)
	assert.Equal(t, []string{"t1"}, again.Tokens)
}

func TestTaskRepository_OwnerScoping(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	tasks := s.Tasks()
	a := newUser(t, s, "a@example.com")
	b := newUser(t, s, "b@example.com")

	task := &entity.Task{Description: "mine", OwnerID: a.ID}
	require.NoError(t, tasks.Create(ctx, task))

	_, err := tasks.GetByID(ctx, b.ID, task.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	foreign := *task
	foreign.OwnerID = b.ID
	assert.ErrorIs(t, tasks.Update(ctx, &foreign), repo.ErrNotFound)

	_, err = tasks.Delete(ctx, b.ID, task.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	got, err := tasks.GetByID(ctx, a.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Description)
}

func TestTaskRepository_List(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	tasks := s.Tasks()
	u := newUser(t, s, "a@example.com")

	for _, d := range []struct {
		desc string
		done bool
	}{{"b walk dog", true}, {"a buy milk", false}, {"c call mom", true}} {
		require.NoError(t, tasks.Create(ctx, &entity.Task{Description: d.desc, Status: d.done, OwnerID: u.ID}))
	}

	descs := func(ts []entity.Task) []string {
		out := make([]string, len(ts))
		for i, t := range ts {
			out[i] = t.Description
		}
		return out
	}

	all, err := tasks.List(ctx, u.ID, entity.ListOptions{SortField: entity.SortCreatedAt})
	require.NoError(t, err)
	assert.Equal(t, []string{"b walk dog", "a buy milk", "c call mom"}, descs(all))

	desc, err := tasks.List(ctx, u.ID, entity.ListOptions{SortField: entity.SortCreatedAt, SortDesc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"c call mom", "a buy milk", "b walk dog"}, descs(desc))

	byDesc, err := tasks.List(ctx, u.ID, entity.ListOptions{SortField: entity.SortDescription})
	require.NoError(t, err)
	assert.Equal(t, []string{"a buy milk", "b walk dog", "c call mom"}, descs(byDesc))

	done := true
	completed, err := tasks.List(ctx, u.ID, entity.ListOptions{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, []string{"b walk dog", "c call mom"}, descs(completed))

	page, err := tasks.List(ctx, u.ID, entity.ListOptions{Limit: 1, Skip: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"a buy milk"}, descs(page))

	past, err := tasks.List(ctx, u.ID, entity.ListOptions{Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, past)

	found, err := tasks.List(ctx, u.ID, entity.ListOptions{Query: "MILK"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a buy milk"}, descs(found))
}

func TestWithinTx_RollsBack(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u := newUser(t, s, "a@example.com")
	require.NoError(t, s.Tasks().Create(ctx, &entity.Task{Description: "x", OwnerID: u.ID}))

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(ctx context.Context, r repo.Repos) error {
		n, err := r.Tasks.DeleteByOwner(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		return boom
	})
	require.ErrorIs(t, err, boom)

	left, err := s.Tasks().List(ctx, u.ID, entity.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestAvatarStore(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	avatars := s.Avatars()
	u := newUser(t, s, "a@example.com")

	_, err := avatars.GetAvatar(ctx, u.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	require.NoError(t, avatars.PutAvatar(ctx, u.ID, []byte{1, 2, 3}))
	got, err := avatars.GetAvatar(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	require.NoError(t, avatars.DeleteAvatar(ctx, u.ID))
	_, err = avatars.GetAvatar(ctx, u.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	assert.ErrorIs(t, avatars.PutAvatar(ctx, "missing", []byte{1}), repo.ErrNotFound)
}
