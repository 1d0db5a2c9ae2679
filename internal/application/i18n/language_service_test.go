package i18n

import (
	"context"
	"testing"

	"github.com/storefront/platform/internal/domain/i18n"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLanguageFixture() (*LanguageService, *MockLanguageRepository) {
	langs := new(MockLanguageRepository)
	return NewLanguageService(langs, &stubScope{langs: langs, trans: new(MockTranslationRepository)}, nil), langs
}

func TestLanguageService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("first language becomes default", func(t *testing.T) {
		svc, langs := newLanguageFixture()
		langs.On("FindByCode", ctx, "hi").Return(nil, shared.NewNotFoundError("Language"))
		langs.On("FindDefault", ctx).Return(nil, shared.NewNotFoundError("Default language"))
		langs.On("ClearDefault", ctx).Return(nil)
		langs.On("Save", ctx, mock.AnythingOfType("*i18n.Language")).Return(nil)

		resp, err := svc.Create(ctx, CreateLanguageRequest{Code: "HI"})
		require.NoError(t, err)
		assert.Equal(t, "hi", resp.Code)
		assert.Equal(t, "Hindi", resp.Name)
		assert.True(t, resp.IsDefault)
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		svc, langs := newLanguageFixture()
		existing, _ := i18n.NewLanguage("en", "", "")
		langs.On("FindByCode", ctx, "en").Return(existing, nil)

		_, err := svc.Create(ctx, CreateLanguageRequest{Code: "en"})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindConflict))
		langs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid tag", func(t *testing.T) {
		svc, _ := newLanguageFixture()
		_, err := svc.Create(ctx, CreateLanguageRequest{Code: "not a tag"})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindValidation))
	})
}

func TestLanguageService_SetDefault(t *testing.T) {
	ctx := context.Background()
	svc, langs := newLanguageFixture()
	fr, _ := i18n.NewLanguage("fr", "", "")
	langs.On("FindByCode", ctx, "fr").Return(fr, nil)
	langs.On("ClearDefault", ctx).Return(nil).Once()
	langs.On("Save", ctx, fr).Return(nil)

	resp, err := svc.SetDefault(ctx, "fr")
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	langs.AssertExpectations(t)
}

func TestLanguageService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, langs := newLanguageFixture()
	en, _ := i18n.NewLanguage("en", "", "")
	en.IsDefault = true
	langs.On("FindByCode", ctx, "en").Return(en, nil)

	err := svc.Delete(ctx, "en")
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindConflict))
	langs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
