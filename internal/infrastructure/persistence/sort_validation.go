package persistence

import (
	"strings"

	"github.com/storefront/platform/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC, defaulting to DESC.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when it is whitelisted, else defaultField.
func ValidateSortField(sortField string, allowed map[string]bool, defaultField string) string {
	f := strings.TrimSpace(sortField)
	if allowed[f] {
		return f
	}
	return defaultField
}

// ProductSortFields are the product columns a listing may order by
var ProductSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"sku":            true,
	"price":          true,
	"stock_quantity": true,
}

// paginate applies ordering, limit and offset
func paginate(q *gorm.DB, f shared.ListOptions, allowed map[string]bool) *gorm.DB {
	order := ValidateSortField(f.OrderBy, allowed, "created_at") + " " + ValidateSortOrder(f.OrderDir)
	q = q.Order(order)
	if f.PageSize > 0 {
		q = q.Limit(f.PageSize).Offset(f.Offset())
	}
	return q
}

// likePattern escapes LIKE wildcards in user input
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(strings.TrimSpace(s))) + "%"
}
