package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/karanshah229/taskapp/internal/domain/entity"
	repo "github.com/karanshah229/taskapp/internal/domain/repository"
)

type TaskRepository struct {
	s    *Store
	held bool
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	defer r.s.lock(r.held)()
	if _, ok := r.s.users[t.OwnerID]; !ok {
		return repo.ErrNotFound
	}
	now := time.Now().UTC()
	t.ID = uuid.NewString()
	t.CreatedAt, t.UpdatedAt = now, now
	r.s.seq++
	r.s.tasks[t.ID] = taskRow{task: *t, seq: r.s.seq}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, ownerID, id string) (*entity.Task, error) {
	defer r.s.lock(r.held)()
	row, ok := r.s.tasks[id]
	if !ok || row.task.OwnerID != ownerID {
		return nil, repo.ErrNotFound
	}
	t := row.task
	return &t, nil
}

func (r *TaskRepository) List(ctx context.Context, ownerID string, opts entity.ListOptions) ([]entity.Task, error) {
	defer r.s.lock(r.held)()
	q := strings.ToLower(opts.Query)
	rows := make([]taskRow, 0)
	for _, row := range r.s.tasks {
		t := row.task
		if t.OwnerID != ownerID {
			continue
		}
		if opts.Status != nil && t.Status != *opts.Status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Description), q) {
			continue
		}
		rows = append(rows, row)
	}

	slices.SortFunc(rows, func(a, b taskRow) int {
		c := compareTasks(a.task, b.task, opts.SortField)
		if c == 0 {
			c = cmp.Compare(a.seq, b.seq)
		}
		if opts.SortDesc {
			return -c
		}
		return c
	})

	if opts.Skip >= len(rows) {
		return []entity.Task{}, nil
	}
	rows = rows[opts.Skip:]
	if opts.Limit > 0 && opts.Limit < len(rows) {
		rows = rows[:opts.Limit]
	}
	out := make([]entity.Task, len(rows))
	for i, row := range rows {
		out[i] = row.task
	}
	return out, nil
}

func compareTasks(a, b entity.Task, field string) int {
	switch field {
	case entity.SortUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case entity.SortDescription:
		return strings.Compare(a.Description, b.Description)
	case entity.SortStatus:
		return cmp.Compare(boolRank(a.Status), boolRank(b.Status))
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	defer r.s.lock(r.held)()
	row, ok := r.s.tasks[t.ID]
	if !ok || row.task.OwnerID != t.OwnerID {
		return repo.ErrNotFound
	}
	row.task.Description = t.Description
	row.task.Status = t.Status
	row.task.UpdatedAt = time.Now().UTC()
	t.UpdatedAt = row.task.UpdatedAt
	r.s.tasks[t.ID] = row
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, id string) (*entity.Task, error) {
	defer r.s.lock(r.held)()
	row, ok := r.s.tasks[id]
	if !ok || row.task.OwnerID != ownerID {
		return nil, repo.ErrNotFound
	}
	delete(r.s.tasks, id)
	t := row.task
	return &t, nil
}

func (r *TaskRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	defer r.s.lock(r.held)()
	var n int64
	for id, row := range r.s.tasks {
		if row.task.OwnerID == ownerID {
			delete(r.s.tasks, id)
			n++
		}
	}
	return n, nil
}
