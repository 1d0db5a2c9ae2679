package content

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/storefront/platform/internal/domain/shared"
)

// Type classifies a content item
type Type string

const (
	TypePage   Type = "page"
	TypePost   Type = "post"
	TypeBanner Type = "banner"
	TypeFAQ    Type = "faq"
)

// IsValid checks if the content type is known
func (t Type) IsValid() bool {
	switch t {
	case TypePage, TypePost, TypeBanner, TypeFAQ:
		return true
	}
	return false
}

// Status is the publication state of a content item
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

const maxExcerpt = 200

// Item is a piece of storefront content
type Item struct {
	shared.BaseAggregateRoot
	Title       string     `gorm:"type:varchar(255);not null"`
	Slug        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	Body        string     `gorm:"type:text"`
	Excerpt     string     `gorm:"type:varchar(500)"`
	Type        Type       `gorm:"type:varchar(20);not null;default:'page';index"`
	Status      Status     `gorm:"type:varchar(20);not null;default:'draft';index"`
	AuthorID    *uuid.UUID `gorm:"type:uuid"`
	Tags        []string   `gorm:"type:jsonb;serializer:json"`
	PublishedAt *time.Time
	Assets      []Asset `gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "content_items"
}

// Asset is a file attached to a content item and kept in object storage
type Asset struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContentID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Key         string    `gorm:"type:varchar(512);not null"`
	FileName    string    `gorm:"type:varchar(255);not null"`
	ContentType string    `gorm:"type:varchar(100)"`
	Size        int64
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (Asset) TableName() string {
	return "content_assets"
}

// NewItem creates a draft content item
func NewItem(title, body string, typ Type, authorID *uuid.UUID, tags []string) (*Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewValidationError("INVALID_TITLE", "Title is required")
	}
	if typ == "" {
		typ = TypePage
	}
	if !typ.IsValid() {
		return nil, shared.NewValidationError("INVALID_TYPE", "Unknown content type")
	}
	s := slug.Make(title)
	if s == "" {
		return nil, shared.NewValidationError("INVALID_TITLE", "Title must contain letters or digits")
	}
	item := &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Slug:              s,
		Body:              body,
		Excerpt:           excerpt(body),
		Type:              typ,
		Status:            StatusDraft,
		AuthorID:          authorID,
		Tags:              normalizeTags(tags),
	}
	return item, nil
}

// Update replaces the editable fields. The slug is kept.
func (c *Item) Update(title, body string, typ Type, tags []string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewValidationError("INVALID_TITLE", "Title is required")
	}
	if typ != "" {
		if !typ.IsValid() {
			return shared.NewValidationError("INVALID_TYPE", "Unknown content type")
		}
		c.Type = typ
	}
	c.Title = title
	c.Body = body
	c.Excerpt = excerpt(body)
	if tags != nil {
		c.Tags = normalizeTags(tags)
	}
	c.UpdatedAt = time.Now()
	return nil
}

// WithSlugSuffix returns the item's base slug with a numeric suffix
func (c *Item) WithSlugSuffix(n int) string {
	base := slug.Make(c.Title)
	if n <= 1 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

// Publish makes the item visible. Archived items must be restored to draft first.
func (c *Item) Publish() error {
	switch c.Status {
	case StatusPublished:
		return shared.NewInvalidStateError("Content is already published")
	case StatusArchived:
		return shared.NewInvalidStateError("Archived content cannot be published")
	}
	now := time.Now()
	c.Status = StatusPublished
	c.PublishedAt = &now
	c.UpdatedAt = now
	return nil
}

// Archive hides the item
func (c *Item) Archive() error {
	if c.Status == StatusArchived {
		return shared.NewInvalidStateError("Content is already archived")
	}
	c.Status = StatusArchived
	c.UpdatedAt = time.Now()
	return nil
}

// Attach records an uploaded asset
func (c *Item) Attach(key, fileName, contentType string, size int64) Asset {
	a := Asset{
		ID:          uuid.New(),
		ContentID:   c.ID,
		Key:         key,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		CreatedAt:   time.Now(),
	}
	c.Assets = append(c.Assets, a)
	return a
}

func excerpt(body string) string {
	text := strings.Join(strings.Fields(body), " ")
	r := []rune(text)
	if len(r) <= maxExcerpt {
		return text
	}
	return strings.TrimSpace(string(r[:maxExcerpt])) + "..."
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
