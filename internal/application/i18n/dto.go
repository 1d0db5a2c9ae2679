package i18n

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/i18n"
)

// CreateLanguageRequest registers a locale
type CreateLanguageRequest struct {
	Code       string `json:"code" binding:"required,max=35"`
	Name       string `json:"name" binding:"max=100"`
	NativeName string `json:"nativeName" binding:"max=100"`
	IsDefault  bool   `json:"isDefault"`
}

// UpdateLanguageRequest edits a locale
type UpdateLanguageRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	NativeName string `json:"nativeName" binding:"max=100"`
	IsActive   *bool  `json:"isActive"`
}

// LanguageResponse represents a language in API responses
type LanguageResponse struct {
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	NativeName string    `json:"nativeName"`
	IsDefault  bool      `json:"isDefault"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToLanguageResponse converts a domain language
func ToLanguageResponse(l *i18n.Language) LanguageResponse {
	return LanguageResponse{
		Code:       l.Code,
		Name:       l.Name,
		NativeName: l.NativeName,
		IsDefault:  l.IsDefault,
		IsActive:   l.IsActive,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

// CreateTranslationRequest adds one localized string
type CreateTranslationRequest struct {
	Key          string `json:"key" binding:"required,max=255"`
	LanguageCode string `json:"languageCode" binding:"required,max=35"`
	Value        string `json:"value" binding:"required"`
	Namespace    string `json:"namespace" binding:"max=100"`
}

// UpdateTranslationRequest replaces the text of a translation
type UpdateTranslationRequest struct {
	Value string `json:"value" binding:"required"`
}

// BulkTranslationRequest upserts many strings at once
type BulkTranslationRequest struct {
	Translations []CreateTranslationRequest `json:"translations" binding:"required,min=1,dive"`
}

// TranslationResponse represents a translation in API responses
type TranslationResponse struct {
	ID           uuid.UUID `json:"id"`
	Key          string    `json:"key"`
	LanguageCode string    `json:"languageCode"`
	Value        string    `json:"value"`
	Namespace    string    `json:"namespace"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToTranslationResponse converts a domain translation
func ToTranslationResponse(t *i18n.Translation) TranslationResponse {
	return TranslationResponse{
		ID:           t.ID,
		Key:          t.Key,
		LanguageCode: t.LanguageCode,
		Value:        t.Value,
		Namespace:    t.Namespace,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
