package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var c catalog.Category
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, classify(err, "Category")
	}
	return &c, nil
}

// FindAll returns every category ordered by sort order then name
func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, classify(err, "Category")
	}
	return categories, nil
}

// ExistsByNameUnderParent checks case-insensitive sibling name uniqueness
func (r *GormCategoryRepository) ExistsByNameUnderParent(ctx context.Context, name string, parentID, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&catalog.Category{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, classify(err, "Category")
	}
	return count > 0, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	return saveVersioned(ctx, r.db, c, "Category")
}

// Delete hard deletes a category
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&catalog.Category{}, "id = ?", id)
	if res.Error != nil {
		return classify(res.Error, "Category")
	}
	if res.RowsAffected == 0 {
		return classify(gorm.ErrRecordNotFound, "Category")
	}
	return nil
}

// HasChildren checks if any category has this one as parent
func (r *GormCategoryRepository) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Category{}).Where("parent_id = ?", id).Count(&count).Error; err != nil {
		return false, classify(err, "Category")
	}
	return count > 0, nil
}

// HasProducts checks if any product, active or not, references the category
func (r *GormCategoryRepository) HasProducts(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return false, classify(err, "Category")
	}
	return count > 0, nil
}

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID, including soft-deleted ones
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var p catalog.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, classify(err, "Product")
	}
	return &p, nil
}

// FindBySKU finds a product by SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var p catalog.Product
	if err := r.db.WithContext(ctx).Where("sku = ?", strings.ToUpper(strings.TrimSpace(sku))).First(&p).Error; err != nil {
		return nil, classify(err, "Product")
	}
	return &p, nil
}

// FindAll lists products matching the filter and returns the unpaged total
func (r *GormProductRepository) FindAll(ctx context.Context, f catalog.ProductFilter) ([]catalog.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&catalog.Product{})
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := likePattern(s)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(description) LIKE ?", p, p, p)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, classify(err, "Product")
	}
	var products []catalog.Product
	if err := paginate(q, f.ListOptions, ProductSortFields).Find(&products).Error; err != nil {
		return nil, 0, classify(err, "Product")
	}
	return products, total, nil
}

// FindByCategory lists active products in a category
func (r *GormProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, classify(err, "Product")
	}
	return products, nil
}

// FindLowStock lists active products at or under the threshold
func (r *GormProductRepository) FindLowStock(ctx context.Context, threshold int) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND stock_quantity <= ?", true, threshold).
		Order("stock_quantity ASC").
		Find(&products).Error; err != nil {
		return nil, classify(err, "Product")
	}
	return products, nil
}

// ExistsBySKU checks SKU uniqueness across all products
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string, excludeID *uuid.UUID) (bool, error) {
	return r.exists(ctx, "sku = ?", strings.ToUpper(strings.TrimSpace(sku)), excludeID)
}

// ExistsByBarcode checks barcode uniqueness across all products
func (r *GormProductRepository) ExistsByBarcode(ctx context.Context, barcode string, excludeID *uuid.UUID) (bool, error) {
	return r.exists(ctx, "barcode = ?", strings.TrimSpace(barcode), excludeID)
}

func (r *GormProductRepository) exists(ctx context.Context, cond string, value any, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&catalog.Product{}).Where(cond, value)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, classify(err, "Product")
	}
	return count > 0, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	return saveVersioned(ctx, r.db, p, "Product")
}
