package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/karanshah229/taskapp/internal/domain/entity"
	repo "github.com/karanshah229/taskapp/internal/domain/repository"
)

type taskRow struct {
	task entity.Task
	seq  int64
}

// Store keeps users, tasks and avatars in process memory behind one mutex.
// Repositories handed out by a Store share its data.
type Store struct {
	mu      sync.Mutex
	users   map[string]entity.User
	tasks   map[string]taskRow
	avatars map[string][]byte
	seq     int64
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]entity.User),
		tasks:   make(map[string]taskRow),
		avatars: make(map[string][]byte),
	}
}

func (s *Store) Users() repo.UserRepository     { return &UserRepository{s: s} }
func (s *Store) Tasks() repo.TaskRepository     { return &TaskRepository{s: s} }
func (s *Store) Avatars() repo.AvatarStore      { return &AvatarStore{s: s} }
func (s *Store) TxManager() repo.TxManager      { return s }
func (s *Store) lock(held bool) (unlock func()) { return lockUnless(&s.mu, held) }

func lockUnless(mu *sync.Mutex, held bool) func() {
	if held {
		return func() {}
	}
	mu.Lock()
	return mu.Unlock
}

// WithinTx holds the store lock for the whole of fn and restores the previous
// state when fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, r repo.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := maps.Clone(s.users)
	tasks := maps.Clone(s.tasks)
	avatars := maps.Clone(s.avatars)

	err := fn(ctx, repo.Repos{
		Users: &UserRepository{s: s, held: true},
		Tasks: &TaskRepository{s: s, held: true},
	})
	if err != nil {
		s.users, s.tasks, s.avatars = users, tasks, avatars
	}
	return err
}
