package content

import (
	"context"
	"regexp"
	"testing"

	"github.com/storefront/platform/internal/domain/content"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestContentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("suffixes slug on collision", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewContentService(repo, nil, nil, nil)
		repo.On("ExistsBySlug", ctx, "summer-sale").Return(true, nil)
		repo.On("ExistsBySlug", ctx, "summer-sale-2").Return(true, nil)
		repo.On("ExistsBySlug", ctx, "summer-sale-3").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*content.Item")).Return(nil)

		resp, err := svc.Create(ctx, CreateContentRequest{Title: "Summer Sale!", Type: "banner", Tags: []string{"Sale", "sale", " promo "}})
		require.NoError(t, err)
		assert.Equal(t, "summer-sale-3", resp.Slug)
		assert.Equal(t, "draft", resp.Status)
		assert.Equal(t, []string{"sale", "promo"}, resp.Tags)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewContentService(repo, nil, nil, nil)
		_, err := svc.Create(ctx, CreateContentRequest{Title: "  "})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindValidation))
	})
}

func TestContentService_Publish(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewContentService(repo, nil, nil, nil)
	item, err := content.NewItem("About us", "We sell things.", content.TypePage, nil, nil)
	require.NoError(t, err)
	repo.On("FindByID", ctx, item.ID).Return(item, nil)
	repo.On("Save", ctx, item).Return(nil)

	resp, err := svc.Publish(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "published", resp.Status)
	assert.NotNil(t, resp.PublishedAt)

	_, err = svc.Publish(ctx, item.ID)
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindInvalidState))
}

func TestContentService_UploadAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("stores file and returns presigned url", func(t *testing.T) {
		repo, store := new(MockRepository), new(MockObjectStore)
		svc := NewContentService(repo, store, nil, nil)
		item, _ := content.NewItem("Lookbook", "", content.TypePost, nil, nil)
		repo.On("FindByID", ctx, item.ID).Return(item, nil)
		keyPattern := regexp.MustCompile(`^content/` + item.ID.String() + `/[0-9a-f]{8}-hero-image\.png$`)
		store.On("Upload", ctx, mock.MatchedBy(keyPattern.MatchString), []byte("png"), "image/png").Return(nil)
		repo.On("SaveAsset", ctx, mock.AnythingOfType("*content.Asset")).Return(nil)
		store.On("PresignedURL", ctx, mock.Anything).Return("https://cdn.example.com/signed", nil)

		resp, err := svc.UploadAsset(ctx, item.ID, UploadAssetRequest{FileName: "Hero Image.PNG", ContentType: "image/png", Data: []byte("png")})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/signed", resp.URL)
		assert.Equal(t, int64(3), resp.Size)
	})

	t.Run("storage disabled", func(t *testing.T) {
		svc := NewContentService(new(MockRepository), nil, nil, nil)
		item, _ := content.NewItem("Lookbook", "", content.TypePost, nil, nil)
		_, err := svc.UploadAsset(ctx, item.ID, UploadAssetRequest{FileName: "a.png", Data: []byte("x")})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindUpstream))
	})
}

func TestContentService_ExportPDF(t *testing.T) {
	ctx := context.Background()

	t.Run("renders escaped html", func(t *testing.T) {
		repo := new(MockRepository)
		renderer := &fakeRenderer{}
		svc := NewContentService(repo, nil, renderer, nil)
		item, _ := content.NewItem("Returns <policy>", "First paragraph.\n\nSecond paragraph.", content.TypePage, nil, []string{"help"})
		repo.On("FindByID", ctx, item.ID).Return(item, nil)

		pdf, name, err := svc.ExportPDF(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4"), pdf)
		assert.Equal(t, "returns-policy.pdf", name)
		assert.Contains(t, renderer.html, "Returns &lt;policy&gt;")
		assert.Contains(t, renderer.html, "<p>Second paragraph.</p>")
	})

	t.Run("renderer disabled", func(t *testing.T) {
		svc := NewContentService(new(MockRepository), nil, nil, nil)
		item, _ := content.NewItem("x", "", content.TypePage, nil, nil)
		_, _, err := svc.ExportPDF(ctx, item.ID)
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindUpstream))
	})
}
