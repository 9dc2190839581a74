package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	repo "github.com/karanshah229/taskapp/internal/domain/repository"
)

const (
	uniqueViolationCode   = "23505"
	invalidTextRepresCode = "22P02"
	usersEmailConstraint  = "users_email_key"
)

// driverError marks an error that already went through mapError.
type driverError struct{ err error }

func (e *driverError) Error() string { return "postgres: " + e.err.Error() }
func (e *driverError) Unwrap() error { return e.err }

// mapError translates driver errors into repository sentinels.
// A malformed uuid is reported as not found: no row can have that id.
// Mapping an already mapped error returns it unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var de *driverError
	if errors.As(err, &de) || errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrDuplicateEmail) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			if pgErr.ConstraintName == usersEmailConstraint {
				return repo.ErrDuplicateEmail
			}
		case invalidTextRepresCode:
			return repo.ErrNotFound
		}
	}
	return &driverError{err: err}
}
