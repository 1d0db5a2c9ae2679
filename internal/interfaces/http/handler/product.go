package handler

import (
	"github.com/gin-gonic/gin"
	appcatalog "github.com/storefront/platform/internal/application/catalog"
	"github.com/storefront/platform/internal/interfaces/http/dto"
)

// DefaultLowStockThreshold applies when the threshold query is omitted
const DefaultLowStockThreshold = 10

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *appcatalog.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.CreateProductRequest true "Product"
// @Success      201 {object} dto.Response{data=appcatalog.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// List godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        categoryId query string false "Category ID"
// @Param        active     query bool   false "Active flag"
// @Param        search     query string false "Name, SKU or barcode fragment"
// @Param        minPrice   query number false "Minimum price"
// @Param        maxPrice   query number false "Maximum price"
// @Param        page       query int    false "Page" default(1)
// @Param        pageSize   query int    false "Page size" default(20)
// @Param        orderBy    query string false "Sort column"
// @Param        orderDir   query string false "asc or desc"
// @Success      200 {object} dto.Response{data=[]appcatalog.ProductResponse}
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var paging dto.ListRequest
	if err := c.ShouldBindQuery(&paging); err != nil {
		h.BindError(c, err)
		return
	}
	paging.Normalize()

	q := appcatalog.ProductListQuery{
		Search:   c.Query("search"),
		Page:     paging.Page,
		PageSize: paging.PageSize,
		OrderBy:  c.Query("orderBy"),
		OrderDir: c.Query("orderDir"),
	}
	var err error
	if q.CategoryID, err = queryUUID(c, "categoryId"); err != nil {
		h.HandleError(c, err)
		return
	}
	if q.Active, err = queryBool(c, "active"); err != nil {
		h.HandleError(c, err)
		return
	}
	if q.MinPrice, err = queryDecimal(c, "minPrice"); err != nil {
		h.HandleError(c, err)
		return
	}
	if q.MaxPrice, err = queryDecimal(c, "maxPrice"); err != nil {
		h.HandleError(c, err)
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, products, total)
}

// Get godoc
// @Summary      Get a product
// @Description  Soft-deleted products are still returned
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=appcatalog.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// GetBySKU godoc
// @Summary      Get a product by SKU
// @Tags         products
// @Produce      json
// @Param        sku path string true "SKU"
// @Success      200 {object} dto.Response{data=appcatalog.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/sku/{sku} [get]
func (h *ProductHandler) GetBySKU(c *gin.Context) {
	product, err := h.productService.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Update godoc
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id      path string                          true "Product ID"
// @Param        request body appcatalog.UpdateProductRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=appcatalog.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req appcatalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// AdjustStock godoc
// @Summary      Adjust stock by a signed delta
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id      path string                        true "Product ID"
// @Param        request body appcatalog.AdjustStockRequest true "Delta"
// @Success      200 {object} dto.Response{data=appcatalog.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/stock [patch]
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req appcatalog.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	product, err := h.productService.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// LowStock godoc
// @Summary      Active products at or below a stock threshold
// @Tags         products
// @Produce      json
// @Param        threshold query int false "Threshold" default(10)
// @Success      200 {object} dto.Response{data=[]appcatalog.ProductResponse}
// @Security     BearerAuth
// @Router       /products/low-stock [get]
func (h *ProductHandler) LowStock(c *gin.Context) {
	threshold, err := queryInt(c, "threshold", DefaultLowStockThreshold)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	products, err := h.productService.LowStock(c.Request.Context(), threshold)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, products, len(products))
}

// Delete godoc
// @Summary      Deactivate a product
// @Description  Soft delete: the product stays readable with isActive=false
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=appcatalog.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	product, err := h.productService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Product deactivated", product)
}
