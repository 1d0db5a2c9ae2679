package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// versioned is satisfied by every aggregate embedding shared.BaseAggregateRoot
type versioned interface {
	GetID() uuid.UUID
	GetVersion() int
	IncrementVersion()
}

// saveVersioned inserts agg when its row does not exist yet. Otherwise it
// updates every column under an id and version match and bumps the version,
// so a writer holding a stale copy gets a conflict instead of overwriting a
// newer row. Associations are never written here.
func saveVersioned(ctx context.Context, db *gorm.DB, agg versioned, resource string, omit ...string) error {
	db = db.WithContext(ctx)

	var existing int64
	if err := db.Model(agg).Where("id = ?", agg.GetID()).Count(&existing).Error; err != nil {
		return classify(err, resource)
	}
	if existing == 0 {
		return classify(db.Omit(omit...).Create(agg).Error, resource)
	}

	expected := agg.GetVersion()
	agg.IncrementVersion()
	res := db.Model(agg).
		Where("id = ? AND version = ?", agg.GetID(), expected).
		Select("*").
		Omit(append(omit, clause.Associations)...).
		Updates(agg)
	if res.Error != nil {
		return classify(res.Error, resource)
	}
	if res.RowsAffected == 0 {
		return staleWrite(resource)
	}
	return nil
}

func staleWrite(resource string) error {
	return shared.NewConflictError(shared.ErrStaleWrite.Code, resource+" was modified by another request, reload and retry")
}
