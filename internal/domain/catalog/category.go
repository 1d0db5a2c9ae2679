package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/storefront/platform/internal/domain/shared"
)

// Category represents a product category in the catalog.
// Categories form a forest through the nullable ParentID pointer and the
// name is unique among siblings.
type Category struct {
	shared.BaseAggregateRoot
	Name        string     `gorm:"type:varchar(100);not null"`
	Slug        string     `gorm:"type:varchar(120);not null;index"`
	Description string     `gorm:"type:text"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	SortOrder   int        `gorm:"not null;default:0"`
	IsActive    bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category. A nil parentID makes it a root.
func NewCategory(name, description string, parentID *uuid.UUID) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug.Make(name),
		Description:       description,
		ParentID:          parentID,
		IsActive:          true,
	}

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// Update overwrites the category's editable fields
func (c *Category) Update(name, description string, sortOrder int) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.Slug = slug.Make(name)
	c.Description = description
	c.SortOrder = sortOrder
	c.UpdatedAt = time.Now()

	c.AddDomainEvent(NewCategoryUpdatedEvent(c))

	return nil
}

// MoveTo re-parents the category. Cycle checks need the whole ancestry and
// live in the application service.
func (c *Category) MoveTo(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == c.ID {
		return shared.NewValidationError("INVALID_PARENT", "Category cannot be its own parent")
	}
	c.ParentID = parentID
	c.UpdatedAt = time.Now()
	return nil
}

// SetActive toggles visibility of the category
func (c *Category) SetActive(active bool) {
	c.IsActive = active
	c.UpdatedAt = time.Now()
}

// MarkDeleted records the removal. The row itself is deleted by the repository.
func (c *Category) MarkDeleted() {
	c.AddDomainEvent(NewCategoryDeletedEvent(c))
}

// IsRoot returns true if this is a root category
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// SameParent reports whether the category sits under parentID
func (c *Category) SameParent(parentID *uuid.UUID) bool {
	if c.ParentID == nil || parentID == nil {
		return c.ParentID == nil && parentID == nil
	}
	return *c.ParentID == *parentID
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewValidationError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
