package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	appcontent "github.com/storefront/platform/internal/application/content"
	"github.com/storefront/platform/internal/domain/content"
	"github.com/storefront/platform/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *memoryObjectStore) Upload(_ context.Context, key string, body []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = body
	return nil
}

func (s *memoryObjectStore) PresignedURL(_ context.Context, key string) (string, error) {
	return "https://assets.test/" + key, nil
}

func (s *memoryObjectStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

type fixedRenderer struct{ html string }

func (r *fixedRenderer) RenderPDF(_ context.Context, html string) ([]byte, error) {
	r.html = html
	return []byte("%PDF-1.7 test"), nil
}

func newContentRouter(t *testing.T, store content.ObjectStore, renderer content.Renderer) *gin.Engine {
	t.Helper()
	db := newTestDatabase(t)
	svc := appcontent.NewContentService(persistence.NewGormContentRepository(db.DB), store, renderer, nil)
	h := NewContentHandler(svc)

	r := newTestEngine("content")
	r.POST("/content", h.Create)
	r.GET("/content", h.List)
	r.GET("/content/slug/:slug", h.GetBySlug)
	r.POST("/content/:id/publish", h.Publish)
	r.POST("/content/:id/archive", h.Archive)
	r.POST("/content/:id/assets", h.UploadAsset)
	r.GET("/content/:id/pdf", h.ExportPDF)
	return r
}

func createContent(t *testing.T, r *gin.Engine, title string) appcontent.ContentResponse {
	t.Helper()
	w, env := perform(t, r, http.MethodPost, "/content", map[string]any{
		"title": title, "body": "# Deals\n\nEverything is **half** price.", "type": "post", "tags": []string{"sale"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[appcontent.ContentResponse](t, env)
}

func uploadRequest(t *testing.T, path, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestContentHandler_PublishAndSlugs(t *testing.T) {
	r := newContentRouter(t, nil, nil)

	first := createContent(t, r, "Summer Sale")
	second := createContent(t, r, "Summer Sale")
	assert.Equal(t, "summer-sale", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug, "slugs stay unique")
	assert.Equal(t, "draft", first.Status)

	w, env := perform(t, r, http.MethodPost, "/content/"+first.ID.String()+"/publish", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	published := decodeData[appcontent.ContentResponse](t, env)
	assert.Equal(t, "published", published.Status)
	assert.NotNil(t, published.PublishedAt)

	w, env = perform(t, r, http.MethodGet, "/content/slug/summer-sale", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first.ID, decodeData[appcontent.ContentResponse](t, env).ID)

	w, env = perform(t, r, http.MethodGet, "/content?status=published", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), *env.Count)

	w, _ = perform(t, r, http.MethodGet, "/content/slug/winter-sale", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContentHandler_CollaboratorsDisabled(t *testing.T) {
	r := newContentRouter(t, nil, nil)
	item := createContent(t, r, "Returns policy")

	w, env := perform(t, r, http.MethodGet, "/content/"+item.ID.String()+"/pdf", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "SERVICE_UNAVAILABLE", env.Error.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/content/"+item.ID.String()+"/assets", "banner.png", []byte("png-bytes")))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestContentHandler_AssetsAndPDF(t *testing.T) {
	store := &memoryObjectStore{objects: map[string][]byte{}}
	renderer := &fixedRenderer{}
	r := newContentRouter(t, store, renderer)
	item := createContent(t, r, "Gift guide")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/content/"+item.ID.String()+"/assets", "cover.txt", []byte("hello")))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, store.objects, 1)
	assert.Contains(t, w.Body.String(), "https://assets.test/")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/content/"+item.ID.String()+"/assets", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code, "file field is required")

	w, _ = perform(t, r, http.MethodGet, "/content/"+item.ID.String()+"/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "gift-guide.pdf")
	assert.Contains(t, renderer.html, "Gift guide")
}
