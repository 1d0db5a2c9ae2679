package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/content"
)

// CreateContentRequest creates a draft content item
type CreateContentRequest struct {
	Title    string     `json:"title" binding:"required,max=255"`
	Body     string     `json:"body"`
	Type     string     `json:"type" binding:"omitempty,oneof=page post banner faq"`
	AuthorID *uuid.UUID `json:"authorId"`
	Tags     []string   `json:"tags"`
}

// UpdateContentRequest replaces the editable fields of a content item
type UpdateContentRequest struct {
	Title string   `json:"title" binding:"required,max=255"`
	Body  string   `json:"body"`
	Type  string   `json:"type" binding:"omitempty,oneof=page post banner faq"`
	Tags  []string `json:"tags"`
}

// UploadAssetRequest is a file received for a content item
type UploadAssetRequest struct {
	FileName    string
	ContentType string
	Data        []byte
}

// AssetResponse represents an uploaded asset
type AssetResponse struct {
	ID          uuid.UUID `json:"id"`
	Key         string    `json:"key"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ContentResponse represents a content item in API responses
type ContentResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Body        string          `json:"body"`
	Excerpt     string          `json:"excerpt"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	AuthorID    *uuid.UUID      `json:"authorId"`
	Tags        []string        `json:"tags"`
	PublishedAt *time.Time      `json:"publishedAt"`
	Assets      []AssetResponse `json:"assets,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToContentResponse converts a domain content item
func ToContentResponse(c *content.Item) ContentResponse {
	resp := ContentResponse{
		ID:          c.ID,
		Title:       c.Title,
		Slug:        c.Slug,
		Body:        c.Body,
		Excerpt:     c.Excerpt,
		Type:        string(c.Type),
		Status:      string(c.Status),
		AuthorID:    c.AuthorID,
		Tags:        c.Tags,
		PublishedAt: c.PublishedAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	for i := range c.Assets {
		resp.Assets = append(resp.Assets, toAssetResponse(&c.Assets[i], ""))
	}
	return resp
}

func toAssetResponse(a *content.Asset, url string) AssetResponse {
	return AssetResponse{
		ID:          a.ID,
		Key:         a.Key,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		Size:        a.Size,
		URL:         url,
		CreatedAt:   a.CreatedAt,
	}
}
