package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/i18n"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLanguageRepository implements i18n.LanguageRepository using GORM
type GormLanguageRepository struct {
	db *gorm.DB
}

// NewGormLanguageRepository creates a new GormLanguageRepository
func NewGormLanguageRepository(db *gorm.DB) *GormLanguageRepository {
	return &GormLanguageRepository{db: db}
}

// FindByCode finds a language by its canonical code
func (r *GormLanguageRepository) FindByCode(ctx context.Context, code string) (*i18n.Language, error) {
	var l i18n.Language
	if err := r.db.WithContext(ctx).First(&l, "code = ?", code).Error; err != nil {
		return nil, classify(err, "Language")
	}
	return &l, nil
}

// FindAll lists languages, default first
func (r *GormLanguageRepository) FindAll(ctx context.Context, activeOnly bool) ([]i18n.Language, error) {
	q := r.db.WithContext(ctx).Model(&i18n.Language{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var languages []i18n.Language
	if err := q.Order("is_default DESC, code ASC").Find(&languages).Error; err != nil {
		return nil, classify(err, "Language")
	}
	return languages, nil
}

// FindDefault returns the default language
func (r *GormLanguageRepository) FindDefault(ctx context.Context) (*i18n.Language, error) {
	var l i18n.Language
	if err := r.db.WithContext(ctx).Where("is_default = ?", true).First(&l).Error; err != nil {
		return nil, classify(err, "Default language")
	}
	return &l, nil
}

// Save creates or updates a language
func (r *GormLanguageRepository) Save(ctx context.Context, l *i18n.Language) error {
	return classify(r.db.WithContext(ctx).Save(l).Error, "Language")
}

// Delete removes a language and its translations
func (r *GormLanguageRepository) Delete(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("language_code = ?", code).Delete(&i18n.Translation{}).Error; err != nil {
			return classify(err, "Language")
		}
		res := tx.Delete(&i18n.Language{}, "code = ?", code)
		if res.Error != nil {
			return classify(res.Error, "Language")
		}
		if res.RowsAffected == 0 {
			return classify(gorm.ErrRecordNotFound, "Language")
		}
		return nil
	})
}

// ClearDefault unsets the default flag on every language
func (r *GormLanguageRepository) ClearDefault(ctx context.Context) error {
	err := r.db.WithContext(ctx).Model(&i18n.Language{}).
		Where("is_default = ?", true).
		Updates(map[string]any{"is_default": false, "updated_at": time.Now()}).Error
	return classify(err, "Language")
}

// GormTranslationRepository implements i18n.TranslationRepository using GORM
type GormTranslationRepository struct {
	db *gorm.DB
}

// NewGormTranslationRepository creates a new GormTranslationRepository
func NewGormTranslationRepository(db *gorm.DB) *GormTranslationRepository {
	return &GormTranslationRepository{db: db}
}

// FindByID finds a translation by its ID
func (r *GormTranslationRepository) FindByID(ctx context.Context, id uuid.UUID) (*i18n.Translation, error) {
	var t i18n.Translation
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, classify(err, "Translation")
	}
	return &t, nil
}

// FindByKey finds the translation of a key in one language
func (r *GormTranslationRepository) FindByKey(ctx context.Context, key, languageCode string) (*i18n.Translation, error) {
	var t i18n.Translation
	if err := r.db.WithContext(ctx).Where("key = ? AND language_code = ?", key, languageCode).First(&t).Error; err != nil {
		return nil, classify(err, "Translation")
	}
	return &t, nil
}

// FindAll lists translations ordered by namespace and key
func (r *GormTranslationRepository) FindAll(ctx context.Context, f i18n.TranslationFilter) ([]i18n.Translation, error) {
	q := r.db.WithContext(ctx).Model(&i18n.Translation{})
	if f.LanguageCode != "" {
		q = q.Where("language_code = ?", f.LanguageCode)
	}
	if f.Namespace != "" {
		q = q.Where("namespace = ?", f.Namespace)
	}
	if f.Key != "" {
		q = q.Where("key = ?", f.Key)
	}
	var translations []i18n.Translation
	if err := q.Order("namespace ASC, key ASC").Find(&translations).Error; err != nil {
		return nil, classify(err, "Translation")
	}
	return translations, nil
}

// Save creates or updates a translation
func (r *GormTranslationRepository) Save(ctx context.Context, t *i18n.Translation) error {
	return classify(r.db.WithContext(ctx).Save(t).Error, "Translation")
}

// Upsert inserts the translation or replaces the value of the existing
// (key, language) row.
func (r *GormTranslationRepository) Upsert(ctx context.Context, t *i18n.Translation) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}, {Name: "language_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "namespace", "updated_at"}),
	}).Create(t).Error
	return classify(err, "Translation")
}

// Delete removes a translation
func (r *GormTranslationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&i18n.Translation{}, "id = ?", id)
	if res.Error != nil {
		return classify(res.Error, "Translation")
	}
	if res.RowsAffected == 0 {
		return classify(gorm.ErrRecordNotFound, "Translation")
	}
	return nil
}

// CountByLanguage counts translations of a language
func (r *GormTranslationRepository) CountByLanguage(ctx context.Context, code string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&i18n.Translation{}).Where("language_code = ?", code).Count(&count).Error; err != nil {
		return 0, classify(err, "Translation")
	}
	return count, nil
}
