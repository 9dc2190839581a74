package repository

import (
	"context"

	"github.com/karanshah229/taskapp/internal/domain/entity"
)

// TaskRepository scopes every lookup by owner; a task owned by someone else is ErrNotFound.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Task, error)
	List(ctx context.Context, ownerID string, opts entity.ListOptions) ([]entity.Task, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, ownerID, id string) (*entity.Task, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}

// Repos is the set of repositories bound to one unit of work.
type Repos struct {
	Users UserRepository
	Tasks TaskRepository
}

// TxManager runs fn with repositories that share one transaction.
// fn returning an error rolls everything back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
