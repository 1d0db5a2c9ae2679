package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/storefront/platform/internal/application/catalog"
	"github.com/storefront/platform/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db := newTestDatabase(t)
	products := persistence.NewGormProductRepository(db.DB)
	categories := persistence.NewGormCategoryRepository(db.DB)
	ph := NewProductHandler(appcatalog.NewProductService(products, categories, nil, nil))
	ch := NewCategoryHandler(appcatalog.NewCategoryService(categories, products, nil, nil))

	r := newTestEngine("catalog")
	r.POST("/products", ph.Create)
	r.GET("/products", ph.List)
	r.GET("/products/low-stock", ph.LowStock)
	r.GET("/products/sku/:sku", ph.GetBySKU)
	r.GET("/products/:id", ph.Get)
	r.PATCH("/products/:id/stock", ph.AdjustStock)
	r.DELETE("/products/:id", ph.Delete)
	r.POST("/categories", ch.Create)
	r.GET("/categories/tree", ch.Tree)
	r.PUT("/categories/:id", ch.Update)
	r.DELETE("/categories/:id", ch.Delete)
	return r
}

func createCategory(t *testing.T, r *gin.Engine, body map[string]any) (int, appcatalog.CategoryResponse) {
	t.Helper()
	w, env := perform(t, r, http.MethodPost, "/categories", body)
	if w.Code != http.StatusCreated {
		return w.Code, appcatalog.CategoryResponse{}
	}
	return w.Code, decodeData[appcatalog.CategoryResponse](t, env)
}

func TestCategoryHandler_NameUniquePerParent(t *testing.T) {
	r := newCatalogRouter(t)

	code, apparel := createCategory(t, r, map[string]any{"name": "Apparel"})
	require.Equal(t, http.StatusCreated, code)
	code, footwear := createCategory(t, r, map[string]any{"name": "Footwear"})
	require.Equal(t, http.StatusCreated, code)

	code, _ = createCategory(t, r, map[string]any{"name": "Kids", "parentId": apparel.ID})
	assert.Equal(t, http.StatusCreated, code)
	code, _ = createCategory(t, r, map[string]any{"name": "Kids", "parentId": apparel.ID})
	assert.Equal(t, http.StatusConflict, code, "same name under the same parent")
	code, _ = createCategory(t, r, map[string]any{"name": "Kids", "parentId": footwear.ID})
	assert.Equal(t, http.StatusCreated, code, "same name under another parent")
	code, _ = createCategory(t, r, map[string]any{"name": "Apparel"})
	assert.Equal(t, http.StatusConflict, code, "root level names collide too")
}

func TestCategoryHandler_Delete(t *testing.T) {
	r := newCatalogRouter(t)

	_, parent := createCategory(t, r, map[string]any{"name": "Home"})
	_, child := createCategory(t, r, map[string]any{"name": "Kitchen", "parentId": parent.ID})

	w, env := perform(t, r, http.MethodDelete, "/categories/"+parent.ID.String(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "catalog", env.Service)

	w, _ = perform(t, r, http.MethodPost, "/products", map[string]any{
		"sku": "MUG-1", "name": "Mug", "price": "9.99", "categoryId": child.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, _ = perform(t, r, http.MethodDelete, "/categories/"+child.ID.String(), nil)
	assert.Equal(t, http.StatusConflict, w.Code, "products still reference it")

	_, empty := createCategory(t, r, map[string]any{"name": "Garden"})
	w, _ = perform(t, r, http.MethodDelete, "/categories/"+empty.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCategoryHandler_UpdateRejectsCycle(t *testing.T) {
	r := newCatalogRouter(t)

	_, root := createCategory(t, r, map[string]any{"name": "Root"})
	_, leaf := createCategory(t, r, map[string]any{"name": "Leaf", "parentId": root.ID})

	w, _ := perform(t, r, http.MethodPut, "/categories/"+root.ID.String(), map[string]any{
		"parentId": leaf.ID, "moveParent": true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := perform(t, r, http.MethodGet, "/categories/tree", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tree := decodeData[[]appcatalog.CategoryTreeNode](t, env)
	require.Len(t, tree, 1)
	assert.Equal(t, root.ID, tree[0].ID)
}

func TestProductHandler_Lifecycle(t *testing.T) {
	r := newCatalogRouter(t)

	w, env := perform(t, r, http.MethodPost, "/products", map[string]any{
		"sku": "TEE-1", "name": "T-shirt", "price": "499", "stockQuantity": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	product := decodeData[appcatalog.ProductResponse](t, env)

	w, _ = perform(t, r, http.MethodPost, "/products", map[string]any{"sku": "TEE-1", "name": "Other", "price": "1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = perform(t, r, http.MethodPatch, "/products/"+product.ID.String()+"/stock", map[string]any{"delta": -6})
	assert.Equal(t, http.StatusBadRequest, w.Code, "stock never goes negative")
	w, env = perform(t, r, http.MethodPatch, "/products/"+product.ID.String()+"/stock", map[string]any{"delta": -2})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decodeData[appcatalog.ProductResponse](t, env).StockQuantity)

	w, env = perform(t, r, http.MethodGet, "/products/low-stock", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), *env.Count)

	w, _ = perform(t, r, http.MethodDelete, "/products/"+product.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = perform(t, r, http.MethodGet, "/products/"+product.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code, "soft deleted products stay readable")
	assert.False(t, decodeData[appcatalog.ProductResponse](t, env).IsActive)

	w, _ = perform(t, r, http.MethodGet, "/products/sku/TEE-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = perform(t, r, http.MethodGet, "/products/sku/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_ListFiltersAndPaging(t *testing.T) {
	r := newCatalogRouter(t)

	for i, price := range []string{"100", "250", "900"} {
		w, _ := perform(t, r, http.MethodPost, "/products", map[string]any{
			"sku": "SKU-" + price, "name": "Item " + price, "price": price, "stockQuantity": i,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w, env := perform(t, r, http.MethodGet, "/products?minPrice=200&maxPrice=1000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), *env.Count)

	w, env = perform(t, r, http.MethodGet, "/products?page=2&pageSize=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), *env.Count, "count is the total match count")
	assert.Len(t, decodeData[[]appcatalog.ProductResponse](t, env), 1)

	w, _ = perform(t, r, http.MethodGet, "/products?minPrice=cheap", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = perform(t, r, http.MethodGet, "/products?active=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
