package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/karanshah229/taskapp/internal/domain/entity"
	repo "github.com/karanshah229/taskapp/internal/domain/repository"
)

type TaskRepository struct {
	db DBTX
}

func NewTaskRepository(db DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, description, status, owner_id, created_at, updated_at`

// sortColumns maps public sort fields to columns. Only these reach ORDER BY.
var sortColumns = map[string]string{
	entity.SortCreatedAt:   "created_at",
	entity.SortUpdatedAt:   "updated_at",
	entity.SortDescription: "description",
	entity.SortStatus:      "status",
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	t := &entity.Task{}
	if err := row.Scan(&t.ID, &t.Description, &t.Status, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO tasks (description, status, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, t.Description, t.Status, t.OwnerID)
	return mapError(row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt))
}

func (r *TaskRepository) GetByID(ctx context.Context, ownerID, id string) (*entity.Task, error) {
	return scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID))
}

func (r *TaskRepository) List(ctx context.Context, ownerID string, opts entity.ListOptions) ([]entity.Task, error) {
	sql, args := listQuery(ownerID, opts)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err)
	}
	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Task, error) {
		t, err := scanTask(row)
		if err != nil {
			return entity.Task{}, err
		}
		return *t, nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return tasks, nil
}

func listQuery(ownerID string, opts entity.ListOptions) (string, []any) {
	var sb strings.Builder
	args := []any{ownerID}
	sb.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1`)

	if opts.Status != nil {
		args = append(args, *opts.Status)
		fmt.Fprintf(&sb, ` AND status = $%d`, len(args))
	}
	if opts.Query != "" {
		args = append(args, "%"+escapeLike(opts.Query)+"%")
		fmt.Fprintf(&sb, ` AND description ILIKE $%d`, len(args))
	}

	col, ok := sortColumns[opts.SortField]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if opts.SortDesc {
		dir = "DESC"
	}
	fmt.Fprintf(&sb, ` ORDER BY %s %s, id %s`, col, dir, dir)

	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}
	if opts.Skip > 0 {
		args = append(args, opts.Skip)
		fmt.Fprintf(&sb, ` OFFSET $%d`, len(args))
	}
	return sb.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	row := r.db.QueryRow(ctx, `
		UPDATE tasks
		SET description = $1, status = $2, updated_at = now()
		WHERE id = $3 AND owner_id = $4
		RETURNING updated_at
	`, t.Description, t.Status, t.ID, t.OwnerID)
	return mapError(row.Scan(&t.UpdatedAt))
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, id string) (*entity.Task, error) {
	return scanTask(r.db.QueryRow(ctx, `
		DELETE FROM tasks
		WHERE id = $1 AND owner_id = $2
		RETURNING `+taskColumns, id, ownerID))
}

func (r *TaskRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, mapError(err)
	}
	return tag.RowsAffected(), nil
}

var _ repo.TaskRepository = (*TaskRepository)(nil)
