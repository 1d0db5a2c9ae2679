package i18n

import (
	"context"

	"github.com/google/uuid"
)

// LanguageRepository defines the interface for language persistence
type LanguageRepository interface {
	FindByCode(ctx context.Context, code string) (*Language, error)
	FindAll(ctx context.Context, activeOnly bool) ([]Language, error)
	FindDefault(ctx context.Context) (*Language, error)
	Save(ctx context.Context, l *Language) error
	Delete(ctx context.Context, code string) error
	// ClearDefault unsets the default flag on every language
	ClearDefault(ctx context.Context) error
}

// TranslationFilter narrows translation listings
type TranslationFilter struct {
	LanguageCode string
	Namespace    string
	Key          string
}

// TranslationRepository defines the interface for translation persistence
type TranslationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Translation, error)
	FindByKey(ctx context.Context, key, languageCode string) (*Translation, error)
	FindAll(ctx context.Context, filter TranslationFilter) ([]Translation, error)
	Save(ctx context.Context, t *Translation) error
	// Upsert inserts or replaces the value for the (key, language) pair
	Upsert(ctx context.Context, t *Translation) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByLanguage(ctx context.Context, code string) (int64, error)
}
