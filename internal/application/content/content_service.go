package content

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/storefront/platform/internal/domain/content"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const maxSlugAttempts = 50

// ContentService manages storefront pages, posts, banners and FAQs
type ContentService struct {
	repo     content.Repository
	store    content.ObjectStore
	renderer content.Renderer
	logger   *zap.Logger
}

// NewContentService creates a new ContentService. store and renderer may be
// nil, in which case uploads and PDF export report an upstream error.
func NewContentService(repo content.Repository, store content.ObjectStore, renderer content.Renderer, logger *zap.Logger) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{repo: repo, store: store, renderer: renderer, logger: logger}
}

// Create adds a draft. A numeric suffix is appended to the slug until it is unique.
func (s *ContentService) Create(ctx context.Context, req CreateContentRequest) (*ContentResponse, error) {
	item, err := content.NewItem(req.Title, req.Body, content.Type(req.Type), req.AuthorID, req.Tags)
	if err != nil {
		return nil, err
	}
	if item.Slug, err = s.uniqueSlug(ctx, item); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, item); err != nil {
		logger.With(ctx, s.logger).Error("Failed to create content", zap.String("slug", item.Slug), zap.Error(err))
		return nil, err
	}
	resp := ToContentResponse(item)
	return &resp, nil
}

func (s *ContentService) uniqueSlug(ctx context.Context, item *content.Item) (string, error) {
	for n := 1; n <= maxSlugAttempts; n++ {
		candidate := item.WithSlugSuffix(n)
		taken, err := s.repo.ExistsBySlug(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", shared.NewConflictError("DUPLICATE_SLUG", "Could not derive a unique slug for "+item.Title)
}

// GetByID returns a content item with its assets
func (s *ContentService) GetByID(ctx context.Context, id uuid.UUID) (*ContentResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToContentResponse(item)
	return &resp, nil
}

// GetBySlug returns a content item by its slug
func (s *ContentService) GetBySlug(ctx context.Context, value string) (*ContentResponse, error) {
	item, err := s.repo.FindBySlug(ctx, slug.Make(value))
	if err != nil {
		return nil, err
	}
	resp := ToContentResponse(item)
	return &resp, nil
}

// List returns content items matching the filter
func (s *ContentService) List(ctx context.Context, filter content.Filter) ([]ContentResponse, error) {
	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]ContentResponse, 0, len(items))
	for i := range items {
		out = append(out, ToContentResponse(&items[i]))
	}
	return out, nil
}

// Update replaces title, body, type and tags
func (s *ContentService) Update(ctx context.Context, id uuid.UUID, req UpdateContentRequest) (*ContentResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.Update(req.Title, req.Body, content.Type(req.Type), req.Tags); err != nil {
		return nil, err
	}
	return s.save(ctx, item)
}

// Publish makes an item visible
func (s *ContentService) Publish(ctx context.Context, id uuid.UUID) (*ContentResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.Publish(); err != nil {
		return nil, err
	}
	return s.save(ctx, item)
}

// Archive hides an item
func (s *ContentService) Archive(ctx context.Context, id uuid.UUID) (*ContentResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.Archive(); err != nil {
		return nil, err
	}
	return s.save(ctx, item)
}

// Delete removes an item, its asset rows and the stored files
func (s *ContentService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.store == nil {
		return nil
	}
	for _, a := range item.Assets {
		if err := s.store.Delete(ctx, a.Key); err != nil {
			logger.With(ctx, s.logger).Warn("Failed to delete stored asset", zap.String("key", a.Key), zap.Error(err))
		}
	}
	return nil
}

// UploadAsset stores a file for the item and returns its presigned URL
func (s *ContentService) UploadAsset(ctx context.Context, id uuid.UUID, req UploadAssetRequest) (*AssetResponse, error) {
	if s.store == nil {
		return nil, shared.NewUnavailableError("asset storage is not configured")
	}
	if len(req.Data) == 0 {
		return nil, shared.NewValidationError("EMPTY_FILE", "Uploaded file is empty")
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := assetKey(item, req.FileName)
	if err := s.store.Upload(ctx, key, req.Data, req.ContentType); err != nil {
		logger.With(ctx, s.logger).Error("Asset upload failed", zap.String("key", key), zap.Error(err))
		return nil, shared.NewUpstreamError("asset upload failed", err)
	}
	asset := item.Attach(key, req.FileName, req.ContentType, int64(len(req.Data)))
	if err := s.repo.SaveAsset(ctx, &asset); err != nil {
		return nil, err
	}
	url, err := s.store.PresignedURL(ctx, key)
	if err != nil {
		logger.With(ctx, s.logger).Warn("Failed to presign asset URL", zap.String("key", key), zap.Error(err))
	}
	resp := toAssetResponse(&asset, url)
	return &resp, nil
}

// ExportPDF renders an item as a PDF document
func (s *ContentService) ExportPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	if s.renderer == nil {
		return nil, "", shared.NewUnavailableError("PDF rendering is disabled")
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	html, err := renderDocument(item)
	if err != nil {
		return nil, "", fmt.Errorf("render content document: %w", err)
	}
	pdf, err := s.renderer.RenderPDF(ctx, html)
	if err != nil {
		return nil, "", shared.NewUpstreamError("PDF rendering failed", err)
	}
	return pdf, item.Slug + ".pdf", nil
}

func (s *ContentService) save(ctx context.Context, item *content.Item) (*ContentResponse, error) {
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToContentResponse(item)
	return &resp, nil
}

func assetKey(item *content.Item, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	base := slug.Make(strings.TrimSuffix(path.Base(fileName), path.Ext(fileName)))
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("content/%s/%s-%s%s", item.ID, uuid.NewString()[:8], base, ext)
}
