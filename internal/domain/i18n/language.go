package i18n

import (
	"strings"
	"time"

	"github.com/storefront/platform/internal/domain/shared"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is a locale the storefront can be rendered in
type Language struct {
	Code       string    `gorm:"type:varchar(35);primaryKey"`
	Name       string    `gorm:"type:varchar(100);not null"`
	NativeName string    `gorm:"type:varchar(100);not null"`
	IsDefault  bool      `gorm:"not null;default:false"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Language) TableName() string {
	return "languages"
}

// CanonicalCode parses a BCP-47 tag and returns its canonical form
func CanonicalCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", shared.NewValidationError("INVALID_LANGUAGE_CODE", "Language code cannot be empty")
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", shared.NewValidationError("INVALID_LANGUAGE_CODE", "Language code "+code+" is not a valid BCP-47 tag")
	}
	return tag.String(), nil
}

// NewLanguage creates an active language. Missing names are filled from
// the CLDR display tables.
func NewLanguage(code, name, nativeName string) (*Language, error) {
	canonical, err := CanonicalCode(code)
	if err != nil {
		return nil, err
	}
	tag := language.MustParse(canonical)
	if strings.TrimSpace(name) == "" {
		name = display.English.Tags().Name(tag)
	}
	if strings.TrimSpace(nativeName) == "" {
		nativeName = display.Self.Name(tag)
	}
	if name == "" {
		name = canonical
	}
	if nativeName == "" {
		nativeName = name
	}
	now := time.Now()
	return &Language{
		Code:       canonical,
		Name:       name,
		NativeName: nativeName,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Update overwrites the editable fields
func (l *Language) Update(name, nativeName string, active bool) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("INVALID_NAME", "Language name cannot be empty")
	}
	if l.IsDefault && !active {
		return shared.NewValidationError("DEFAULT_LANGUAGE_INACTIVE", "The default language cannot be deactivated")
	}
	l.Name = name
	if nativeName != "" {
		l.NativeName = nativeName
	}
	l.IsActive = active
	l.UpdatedAt = time.Now()
	return nil
}

// Translation is one localized string
type Translation struct {
	shared.BaseEntity
	Key          string `gorm:"type:varchar(255);not null;uniqueIndex:idx_translation_key_language,priority:1"`
	LanguageCode string `gorm:"type:varchar(35);not null;uniqueIndex:idx_translation_key_language,priority:2;index"`
	Value        string `gorm:"type:text;not null"`
	Namespace    string `gorm:"type:varchar(100);not null;default:'common'"`
}

// TableName returns the table name for GORM
func (Translation) TableName() string {
	return "translations"
}

// NewTranslation creates a translation for a canonical language code
func NewTranslation(key, languageCode, value, namespace string) (*Translation, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, shared.NewValidationError("INVALID_KEY", "Translation key cannot be empty")
	}
	if namespace == "" {
		namespace = "common"
	}
	return &Translation{
		BaseEntity:   shared.NewBaseEntity(),
		Key:          key,
		LanguageCode: languageCode,
		Value:        value,
		Namespace:    namespace,
	}, nil
}

// SetValue replaces the translated text
func (t *Translation) SetValue(value string) {
	t.Value = value
	t.UpdatedAt = time.Now()
}

// MergeWithFallback resolves a key map for a language, filling any key
// that is missing from primary with the value from fallback.
func MergeWithFallback(primary, fallback []Translation) map[string]string {
	out := make(map[string]string, len(primary)+len(fallback))
	for _, t := range fallback {
		out[t.Key] = t.Value
	}
	for _, t := range primary {
		out[t.Key] = t.Value
	}
	return out
}
