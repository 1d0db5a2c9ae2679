package i18n

import (
	"context"

	"github.com/storefront/platform/internal/domain/i18n"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// LanguageService manages the storefront locales. Exactly one language is
// the default once any exist.
type LanguageService struct {
	langRepo i18n.LanguageRepository
	txScope  TransactionScope
	logger   *zap.Logger
}

// NewLanguageService creates a new LanguageService
func NewLanguageService(langRepo i18n.LanguageRepository, txScope TransactionScope, logger *zap.Logger) *LanguageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LanguageService{langRepo: langRepo, txScope: txScope, logger: logger}
}

// Create registers a language. The first language, or one created with
// isDefault, becomes the default.
func (s *LanguageService) Create(ctx context.Context, req CreateLanguageRequest) (*LanguageResponse, error) {
	lang, err := i18n.NewLanguage(req.Code, req.Name, req.NativeName)
	if err != nil {
		return nil, err
	}
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.Languages().FindByCode(ctx, lang.Code); err == nil {
			return shared.NewConflictError("DUPLICATE_LANGUAGE", "Language "+lang.Code+" already exists")
		} else if !shared.IsKind(err, shared.KindNotFound) {
			return err
		}
		makeDefault := req.IsDefault
		if !makeDefault {
			if _, err := repos.Languages().FindDefault(ctx); shared.IsKind(err, shared.KindNotFound) {
				makeDefault = true
			} else if err != nil {
				return err
			}
		}
		if makeDefault {
			if err := repos.Languages().ClearDefault(ctx); err != nil {
				return err
			}
			lang.IsDefault = true
		}
		return repos.Languages().Save(ctx, lang)
	})
	if err != nil {
		return nil, err
	}
	resp := ToLanguageResponse(lang)
	return &resp, nil
}

// GetByCode returns a language by any spelling of its BCP-47 tag
func (s *LanguageService) GetByCode(ctx context.Context, code string) (*LanguageResponse, error) {
	canonical, err := i18n.CanonicalCode(code)
	if err != nil {
		return nil, err
	}
	lang, err := s.langRepo.FindByCode(ctx, canonical)
	if err != nil {
		return nil, err
	}
	resp := ToLanguageResponse(lang)
	return &resp, nil
}

// List returns languages, optionally only the active ones
func (s *LanguageService) List(ctx context.Context, activeOnly bool) ([]LanguageResponse, error) {
	langs, err := s.langRepo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]LanguageResponse, 0, len(langs))
	for i := range langs {
		out = append(out, ToLanguageResponse(&langs[i]))
	}
	return out, nil
}

// Update edits a language
func (s *LanguageService) Update(ctx context.Context, code string, req UpdateLanguageRequest) (*LanguageResponse, error) {
	canonical, err := i18n.CanonicalCode(code)
	if err != nil {
		return nil, err
	}
	lang, err := s.langRepo.FindByCode(ctx, canonical)
	if err != nil {
		return nil, err
	}
	active := lang.IsActive
	if req.IsActive != nil {
		active = *req.IsActive
	}
	if err := lang.Update(req.Name, req.NativeName, active); err != nil {
		return nil, err
	}
	if err := s.langRepo.Save(ctx, lang); err != nil {
		return nil, err
	}
	resp := ToLanguageResponse(lang)
	return &resp, nil
}

// SetDefault makes code the single default language
func (s *LanguageService) SetDefault(ctx context.Context, code string) (*LanguageResponse, error) {
	canonical, err := i18n.CanonicalCode(code)
	if err != nil {
		return nil, err
	}
	var lang *i18n.Language
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		lang, err = repos.Languages().FindByCode(ctx, canonical)
		if err != nil {
			return err
		}
		if !lang.IsActive {
			return shared.NewValidationError("LANGUAGE_INACTIVE", "An inactive language cannot be the default")
		}
		if err := repos.Languages().ClearDefault(ctx); err != nil {
			return err
		}
		lang.IsDefault = true
		return repos.Languages().Save(ctx, lang)
	})
	if err != nil {
		return nil, err
	}
	logger.With(ctx, s.logger).Info("Default language changed", zap.String("code", lang.Code))
	resp := ToLanguageResponse(lang)
	return &resp, nil
}

// Delete removes a language and its translations. The default language
// cannot be deleted.
func (s *LanguageService) Delete(ctx context.Context, code string) error {
	canonical, err := i18n.CanonicalCode(code)
	if err != nil {
		return err
	}
	lang, err := s.langRepo.FindByCode(ctx, canonical)
	if err != nil {
		return err
	}
	if lang.IsDefault {
		return shared.NewConflictError("DEFAULT_LANGUAGE", "The default language cannot be deleted")
	}
	return s.langRepo.Delete(ctx, canonical)
}
