package i18n

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/i18n"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// TranslationService manages localized strings
type TranslationService struct {
	langRepo  i18n.LanguageRepository
	transRepo i18n.TranslationRepository
	txScope   TransactionScope
	logger    *zap.Logger
}

// NewTranslationService creates a new TranslationService
func NewTranslationService(
	langRepo i18n.LanguageRepository,
	transRepo i18n.TranslationRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *TranslationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranslationService{langRepo: langRepo, transRepo: transRepo, txScope: txScope, logger: logger}
}

// Create adds a translation. The language must exist and the (key,
// language) pair must be new.
func (s *TranslationService) Create(ctx context.Context, req CreateTranslationRequest) (*TranslationResponse, error) {
	code, err := s.knownLanguage(ctx, s.langRepo, req.LanguageCode)
	if err != nil {
		return nil, err
	}
	t, err := i18n.NewTranslation(req.Key, code, req.Value, req.Namespace)
	if err != nil {
		return nil, err
	}
	if _, err := s.transRepo.FindByKey(ctx, t.Key, code); err == nil {
		return nil, shared.NewConflictError("DUPLICATE_TRANSLATION", "Translation "+t.Key+" already exists for "+code)
	} else if !shared.IsKind(err, shared.KindNotFound) {
		return nil, err
	}
	if err := s.transRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	resp := ToTranslationResponse(t)
	return &resp, nil
}

// GetByID returns a translation
func (s *TranslationService) GetByID(ctx context.Context, id uuid.UUID) (*TranslationResponse, error) {
	t, err := s.transRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTranslationResponse(t)
	return &resp, nil
}

// List returns translations matching the filter
func (s *TranslationService) List(ctx context.Context, filter i18n.TranslationFilter) ([]TranslationResponse, error) {
	if filter.LanguageCode != "" {
		code, err := i18n.CanonicalCode(filter.LanguageCode)
		if err != nil {
			return nil, err
		}
		filter.LanguageCode = code
	}
	items, err := s.transRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]TranslationResponse, 0, len(items))
	for i := range items {
		out = append(out, ToTranslationResponse(&items[i]))
	}
	return out, nil
}

// Update replaces a translation's text
func (s *TranslationService) Update(ctx context.Context, id uuid.UUID, req UpdateTranslationRequest) (*TranslationResponse, error) {
	t, err := s.transRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.SetValue(req.Value)
	if err := s.transRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	resp := ToTranslationResponse(t)
	return &resp, nil
}

// Delete removes a translation
func (s *TranslationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.transRepo.Delete(ctx, id)
}

// Dictionary returns the key to value map for a language. Keys missing in
// that language are filled from the default language.
func (s *TranslationService) Dictionary(ctx context.Context, code string) (map[string]string, error) {
	canonical, err := s.knownLanguage(ctx, s.langRepo, code)
	if err != nil {
		return nil, err
	}
	primary, err := s.transRepo.FindAll(ctx, i18n.TranslationFilter{LanguageCode: canonical})
	if err != nil {
		return nil, err
	}

	var fallback []i18n.Translation
	def, err := s.langRepo.FindDefault(ctx)
	switch {
	case err == nil && def.Code != canonical:
		fallback, err = s.transRepo.FindAll(ctx, i18n.TranslationFilter{LanguageCode: def.Code})
		if err != nil {
			return nil, err
		}
	case err != nil && !shared.IsKind(err, shared.KindNotFound):
		return nil, err
	}
	return i18n.MergeWithFallback(primary, fallback), nil
}

// BulkUpsert writes many translations in one transaction and returns how
// many rows were written. Any invalid row rolls the whole batch back.
func (s *TranslationService) BulkUpsert(ctx context.Context, req BulkTranslationRequest) (int, error) {
	written := 0
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		known := make(map[string]string)
		for _, item := range req.Translations {
			code, ok := known[item.LanguageCode]
			if !ok {
				var err error
				code, err = s.knownLanguage(ctx, repos.Languages(), item.LanguageCode)
				if err != nil {
					return err
				}
				known[item.LanguageCode] = code
			}
			t, err := i18n.NewTranslation(item.Key, code, item.Value, item.Namespace)
			if err != nil {
				return err
			}
			if err := repos.Translations().Upsert(ctx, t); err != nil {
				return err
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	logger.With(ctx, s.logger).Info("Translations upserted", zap.Int("count", written))
	return written, nil
}

// knownLanguage canonicalises code and reports an unknown language as a
// validation failure rather than not found.
func (s *TranslationService) knownLanguage(ctx context.Context, repo i18n.LanguageRepository, code string) (string, error) {
	canonical, err := i18n.CanonicalCode(code)
	if err != nil {
		return "", err
	}
	if _, err := repo.FindByCode(ctx, canonical); err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			return "", shared.NewValidationError("UNKNOWN_LANGUAGE", "Language "+canonical+" is not configured")
		}
		return "", err
	}
	return canonical, nil
}
