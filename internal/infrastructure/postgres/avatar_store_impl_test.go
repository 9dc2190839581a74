package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execRecorder captures Exec statements; reads are not used by these tests.
type execRecorder struct {
	sql []string
}

func (r *execRecorder) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.sql = append(r.sql, sql)
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (r *execRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("unexpected Query")
}

func (r *execRecorder) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("unexpected QueryRow")
}

func TestAvatarStore_WritesTouchUpdatedAt(t *testing.T) {
	db := &execRecorder{}
	s := NewAvatarStore(db)
	ctx := context.Background()

	require.NoError(t, s.PutAvatar(ctx, "u1", []byte{1}))
	require.NoError(t, s.DeleteAvatar(ctx, "u1"))

	require.Len(t, db.sql, 2)
	for _, sql := range db.sql {
		assert.Contains(t, sql, "updated_at = now()")
	}
}
