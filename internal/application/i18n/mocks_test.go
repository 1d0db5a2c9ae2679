package i18n

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/i18n"
	"github.com/stretchr/testify/mock"
)

// MockLanguageRepository is a mock implementation of LanguageRepository
type MockLanguageRepository struct {
	mock.Mock
}

func (m *MockLanguageRepository) FindByCode(ctx context.Context, code string) (*i18n.Language, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*i18n.Language), args.Error(1)
}

func (m *MockLanguageRepository) FindAll(ctx context.Context, activeOnly bool) ([]i18n.Language, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]i18n.Language), args.Error(1)
}

func (m *MockLanguageRepository) FindDefault(ctx context.Context) (*i18n.Language, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*i18n.Language), args.Error(1)
}

func (m *MockLanguageRepository) Save(ctx context.Context, l *i18n.Language) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLanguageRepository) Delete(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockLanguageRepository) ClearDefault(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockTranslationRepository is a mock implementation of TranslationRepository
type MockTranslationRepository struct {
	mock.Mock
}

func (m *MockTranslationRepository) FindByID(ctx context.Context, id uuid.UUID) (*i18n.Translation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*i18n.Translation), args.Error(1)
}

func (m *MockTranslationRepository) FindByKey(ctx context.Context, key, languageCode string) (*i18n.Translation, error) {
	args := m.Called(ctx, key, languageCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*i18n.Translation), args.Error(1)
}

func (m *MockTranslationRepository) FindAll(ctx context.Context, filter i18n.TranslationFilter) ([]i18n.Translation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]i18n.Translation), args.Error(1)
}

func (m *MockTranslationRepository) Save(ctx context.Context, t *i18n.Translation) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTranslationRepository) Upsert(ctx context.Context, t *i18n.Translation) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTranslationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTranslationRepository) CountByLanguage(ctx context.Context, code string) (int64, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(int64), args.Error(1)
}

// stubScope runs the unit of work directly against the mocks
type stubScope struct {
	langs *MockLanguageRepository
	trans *MockTranslationRepository
}

func (s *stubScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *stubScope) Languages() i18n.LanguageRepository { return s.langs }
func (s *stubScope) Translations() i18n.TranslationRepository { return s.trans }
