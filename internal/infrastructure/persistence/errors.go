package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/storefront/platform/internal/domain/shared"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// classify maps a driver error to a domain error kind. resource names the
// entity in not-found and conflict messages.
func classify(err error, resource string) error {
	if err == nil {
		return nil
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(resource)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict(resource+" already exists", err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return conflict(resource+" references or is referenced by another record", err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return conflict(resource+" already exists", err)
		case pgForeignKeyViolation:
			return conflict(resource+" references or is referenced by another record", err)
		}
	}
	return shared.NewUpstreamError("database operation failed", err)
}

func conflict(msg string, cause error) error {
	e := shared.NewConflictError("CONFLICT", msg)
	e.Cause = cause
	return e
}
