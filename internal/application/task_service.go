package application

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/karanshah229/taskapp/internal/domain/entity"
	repo "github.com/karanshah229/taskapp/internal/domain/repository"
	"github.com/karanshah229/taskapp/pkg/helpers"
)

const (
	DefaultSearchSize = 10
	MaxSearchSize     = 50
)

type TaskService struct {
	Tasks  repo.TaskRepository
	Index  TaskIndexer
	Logger logrus.FieldLogger
}

func NewTaskService(tasks repo.TaskRepository, index TaskIndexer, logger logrus.FieldLogger) *TaskService {
	return &TaskService{Tasks: tasks, Index: index, Logger: logger}
}

type CreateTaskInput struct {
	Description string
	Status      bool
}

// TaskPatch carries the task fields that may change; nil means unchanged.
type TaskPatch struct {
	Description *string
	Status      *bool
}

type taskRules struct {
	Description string `json:"description" validate:"required"`
}

// ParseListOptions turns raw query values into list options.
// status is true only for the literal "true"; sortBy is "field" or "field:desc".
// limit and skip that are not non-negative integers are ignored.
func ParseListOptions(status, sortBy, limit, skip string) (entity.ListOptions, error) {
	var opts entity.ListOptions
	if status != "" {
		b := status == "true"
		opts.Status = &b
	}
	if sortBy != "" {
		field, dir, _ := strings.Cut(sortBy, ":")
		if !entity.TaskSortFields[field] {
			return opts, &ValidationError{Field: "sortBy", Reason: "must be one of: " + strings.Join(sortFieldNames(), ", ")}
		}
		opts.SortField = field
		opts.SortDesc = strings.EqualFold(dir, "desc")
	}
	opts.Limit = nonNegative(limit)
	opts.Skip = nonNegative(skip)
	return opts, nil
}

func nonNegative(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func sortFieldNames() []string {
	names := make([]string, 0, len(entity.TaskSortFields))
	for k := range entity.TaskSortFields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (s *TaskService) Create(ctx context.Context, owner *entity.User, in CreateTaskInput) (*entity.Task, error) {
	t := &entity.Task{
		Description: strings.TrimSpace(in.Description),
		Status:      in.Status,
		OwnerID:     owner.ID,
	}
	if err := check(taskRules{Description: t.Description}); err != nil {
		return nil, err
	}
	if err := s.Tasks.Create(ctx, t); err != nil {
		helpers.LogError(s.Logger, "create task failed", err, logrus.Fields{"user_id": owner.ID})
		return nil, err
	}
	s.index(ctx, t)
	return t, nil
}

func (s *TaskService) List(ctx context.Context, owner *entity.User, opts entity.ListOptions) ([]entity.Task, error) {
	if opts.SortField == "" {
		opts.SortField = entity.SortCreatedAt
		opts.SortDesc = false
	} else if !entity.TaskSortFields[opts.SortField] {
		return nil, &ValidationError{Field: "sortBy", Reason: "must be one of: " + strings.Join(sortFieldNames(), ", ")}
	}
	if opts.Limit < 0 {
		opts.Limit = 0
	}
	if opts.Skip < 0 {
		opts.Skip = 0
	}
	tasks, err := s.Tasks.List(ctx, owner.ID, opts)
	if err != nil {
		helpers.LogError(s.Logger, "list tasks failed", err, logrus.Fields{"user_id": owner.ID})
		return nil, err
	}
	return tasks, nil
}

// Search matches q against the owner's task descriptions. The search index is
// used when configured; otherwise the repository does a substring match.
func (s *TaskService) Search(ctx context.Context, owner *entity.User, q string, size int) ([]entity.Task, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, &ValidationError{Field: "q", Reason: "is required"}
	}
	if size <= 0 {
		size = DefaultSearchSize
	}
	if size > MaxSearchSize {
		size = MaxSearchSize
	}

	if s.Index == nil {
		return s.List(ctx, owner, entity.ListOptions{Query: q, Limit: size})
	}

	ids, err := s.Index.Search(ctx, owner.ID, q, size)
	if err != nil {
		helpers.LogError(s.Logger, "search tasks failed", err, logrus.Fields{"user_id": owner.ID})
		return nil, err
	}
	out := make([]entity.Task, 0, len(ids))
	for _, id := range ids {
		t, err := s.Tasks.GetByID(ctx, owner.ID, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				// stale index entry
				continue
			}
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *TaskService) GetByID(ctx context.Context, owner *entity.User, id string) (*entity.Task, error) {
	t, err := s.Tasks.GetByID(ctx, owner.ID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, owner *entity.User, id string, p TaskPatch) (*entity.Task, error) {
	t, err := s.GetByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if err := check(taskRules{Description: t.Description}); err != nil {
		return nil, err
	}
	if err := s.Tasks.Update(ctx, t); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		helpers.LogError(s.Logger, "update task failed", err, logrus.Fields{"user_id": owner.ID, "task_id": id})
		return nil, err
	}
	s.index(ctx, t)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, owner *entity.User, id string) (*entity.Task, error) {
	t, err := s.Tasks.Delete(ctx, owner.ID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		helpers.LogError(s.Logger, "delete task failed", err, logrus.Fields{"user_id": owner.ID, "task_id": id})
		return nil, err
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, t.ID); err != nil {
			helpers.LogError(s.Logger, "remove task from index failed", err, logrus.Fields{"task_id": t.ID})
		}
	}
	return t, nil
}

func (s *TaskService) index(ctx context.Context, t *entity.Task) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, t); err != nil {
		helpers.LogError(s.Logger, "index task failed", err, logrus.Fields{"task_id": t.ID})
	}
}
