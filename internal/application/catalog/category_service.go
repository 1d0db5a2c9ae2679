package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/catalog"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	events       shared.EventPublisher
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService. events may be nil.
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		events:       events,
		logger:       logger,
	}
}

// Create creates a new category under an optional parent
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	if req.ParentID != nil {
		if err := s.ensureParent(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	category, err := catalog.NewCategory(req.Name, req.Description, req.ParentID)
	if err != nil {
		return nil, err
	}
	category.SortOrder = req.SortOrder

	if err := s.ensureUniqueName(ctx, category.Name, req.ParentID, nil); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.events, s.logger, category)

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// GetByID returns a category
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List returns every category as a flat list
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, ToCategoryResponse(&categories[i]))
	}
	return out, nil
}

// Tree returns the category forest. Categories whose parent no longer
// exists are left out and logged.
func (s *CategoryService) Tree(ctx context.Context) ([]CategoryTreeNode, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	forest := catalog.BuildCategoryTree(categories)
	if len(forest.Orphans) > 0 {
		ids := make([]string, 0, len(forest.Orphans))
		for _, id := range forest.Orphans {
			ids = append(ids, id.String())
		}
		logger.With(ctx, s.logger).Warn("Orphan categories dropped from tree", zap.Strings("category_ids", ids))
	}
	return toTreeNodes(forest.Roots), nil
}

// Products lists the active products of a category
func (s *CategoryService) Products(ctx context.Context, id uuid.UUID) ([]ProductResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Update changes a category. Renames and moves are re-checked for sibling
// uniqueness and moves may not create a cycle.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	parentID := category.ParentID
	if req.MoveParent || req.ParentID != nil {
		parentID = req.ParentID
		if err := s.checkMove(ctx, category, parentID); err != nil {
			return nil, err
		}
		if err := category.MoveTo(parentID); err != nil {
			return nil, err
		}
	}

	name, description, sortOrder := category.Name, category.Description, category.SortOrder
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}
	if err := category.Update(name, description, sortOrder); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		category.SetActive(*req.IsActive)
	}

	if err := s.ensureUniqueName(ctx, category.Name, parentID, &category.ID); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.events, s.logger, category)

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete hard deletes a category that has no children and no products
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	hasChildren, err := s.categoryRepo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return shared.NewConflictError("HAS_CHILDREN", "Cannot delete category with child categories")
	}
	hasProducts, err := s.categoryRepo.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if hasProducts {
		return shared.NewConflictError("HAS_PRODUCTS", "Cannot delete category with associated products")
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	category.MarkDeleted()
	publishEvents(ctx, s.events, s.logger, category)
	return nil
}

func (s *CategoryService) ensureParent(ctx context.Context, parentID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, parentID); err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			return shared.NewValidationError("INVALID_PARENT", "Parent category not found")
		}
		return err
	}
	return nil
}

func (s *CategoryService) ensureUniqueName(ctx context.Context, name string, parentID, excludeID *uuid.UUID) error {
	exists, err := s.categoryRepo.ExistsByNameUnderParent(ctx, name, parentID, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflictError("DUPLICATE_NAME", "A category with this name already exists at this level")
	}
	return nil
}

func (s *CategoryService) checkMove(ctx context.Context, category *catalog.Category, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	if *parentID == category.ID {
		return shared.NewValidationError("INVALID_PARENT", "Category cannot be its own parent")
	}
	all, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	lookup := make(map[uuid.UUID]*catalog.Category, len(all))
	for i := range all {
		lookup[all[i].ID] = &all[i]
	}
	if _, ok := lookup[*parentID]; !ok {
		return shared.NewValidationError("INVALID_PARENT", "Parent category not found")
	}
	if catalog.IsDescendant(lookup, category.ID, *parentID) {
		return shared.NewValidationError("CIRCULAR_REFERENCE", "Cannot move a category under one of its descendants")
	}
	return nil
}
