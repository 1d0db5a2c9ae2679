package content

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows content listings
type Filter struct {
	Type   *Type
	Status *Status
	Tag    string
	Search string
}

// Repository defines the interface for content persistence
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindBySlug(ctx context.Context, slug string) (*Item, error)
	FindAll(ctx context.Context, filter Filter) ([]Item, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, item *Item) error
	SaveAsset(ctx context.Context, asset *Asset) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ObjectStore keeps uploaded content assets
type ObjectStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
	PresignedURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Renderer turns HTML into a PDF document
type Renderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}
