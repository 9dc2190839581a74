package application

import (
	"context"

	"github.com/karanshah229/taskapp/internal/domain/entity"
)

// Notifier sends lifecycle emails. Implementations must not block on delivery.
type Notifier interface {
	Welcome(ctx context.Context, u *entity.User) error
	Farewell(ctx context.Context, u *entity.User) error
}

// TaskIndexer mirrors tasks into a search index.
type TaskIndexer interface {
	Index(ctx context.Context, t *entity.Task) error
	Remove(ctx context.Context, id string) error
	RemoveOwner(ctx context.Context, ownerID string) error
	// Search returns ids of the owner's tasks matching q, best match first.
	Search(ctx context.Context, ownerID, q string, size int) ([]string, error)
}
