package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/content"
	"gorm.io/gorm"
)

// GormContentRepository implements content.Repository using GORM
type GormContentRepository struct {
	db *gorm.DB
}

// NewGormContentRepository creates a new GormContentRepository
func NewGormContentRepository(db *gorm.DB) *GormContentRepository {
	return &GormContentRepository{db: db}
}

// FindByID finds a content item with its assets
func (r *GormContentRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Item, error) {
	var item content.Item
	if err := r.db.WithContext(ctx).Preload("Assets").First(&item, "id = ?", id).Error; err != nil {
		return nil, classify(err, "Content")
	}
	return &item, nil
}

// FindBySlug finds a content item with its assets
func (r *GormContentRepository) FindBySlug(ctx context.Context, slug string) (*content.Item, error) {
	var item content.Item
	if err := r.db.WithContext(ctx).Preload("Assets").Where("slug = ?", slug).First(&item).Error; err != nil {
		return nil, classify(err, "Content")
	}
	return &item, nil
}

// FindAll lists content newest first. Tags are matched against the stored
// JSON text, which works on both supported drivers.
func (r *GormContentRepository) FindAll(ctx context.Context, f content.Filter) ([]content.Item, error) {
	q := r.db.WithContext(ctx).Model(&content.Item{})
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if tag := strings.ToLower(strings.TrimSpace(f.Tag)); tag != "" {
		q = q.Where("CAST(tags AS TEXT) LIKE ?", `%"`+tag+`"%`)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := likePattern(s)
		q = q.Where("LOWER(title) LIKE ? OR LOWER(body) LIKE ?", p, p)
	}
	var items []content.Item
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, classify(err, "Content")
	}
	return items, nil
}

// ExistsBySlug checks if a slug is taken
func (r *GormContentRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&content.Item{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, classify(err, "Content")
	}
	return count > 0, nil
}

// Save creates or updates the item row without touching its assets
func (r *GormContentRepository) Save(ctx context.Context, item *content.Item) error {
	return saveVersioned(ctx, r.db, item, "Content", "Assets")
}

// SaveAsset inserts an asset record
func (r *GormContentRepository) SaveAsset(ctx context.Context, asset *content.Asset) error {
	return classify(r.db.WithContext(ctx).Create(asset).Error, "Content asset")
}

// Delete removes an item and its asset records
func (r *GormContentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", id).Delete(&content.Asset{}).Error; err != nil {
			return classify(err, "Content")
		}
		res := tx.Delete(&content.Item{}, "id = ?", id)
		if res.Error != nil {
			return classify(res.Error, "Content")
		}
		if res.RowsAffected == 0 {
			return classify(gorm.ErrRecordNotFound, "Content")
		}
		return nil
	})
}
