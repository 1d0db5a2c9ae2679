package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	appcontent "github.com/storefront/platform/internal/application/content"
	"github.com/storefront/platform/internal/domain/content"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/interfaces/http/dto"
)

// MaxAssetSize bounds a single uploaded content asset
const MaxAssetSize = 10 << 20

// ContentHandler serves CMS content, assets and PDF exports
type ContentHandler struct {
	BaseHandler
	contentService *appcontent.ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *appcontent.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// Create godoc
// @Summary      Create a draft content item
// @Description  The slug is derived from the title and suffixed on collision
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        request body appcontent.CreateContentRequest true "Content"
// @Success      201 {object} dto.Response{data=appcontent.ContentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /content [post]
func (h *ContentHandler) Create(c *gin.Context) {
	var req appcontent.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	item, err := h.contentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// List godoc
// @Summary      List content
// @Tags         content
// @Produce      json
// @Param        type   query string false "page, post, banner or faq"
// @Param        status query string false "draft, published or archived"
// @Param        tag    query string false "Tag"
// @Param        search query string false "Title fragment"
// @Success      200 {object} dto.Response{data=[]appcontent.ContentResponse}
// @Security     BearerAuth
// @Router       /content [get]
func (h *ContentHandler) List(c *gin.Context) {
	filter := content.Filter{Tag: c.Query("tag"), Search: c.Query("search")}
	if raw := c.Query("type"); raw != "" {
		t := content.Type(raw)
		if !t.IsValid() {
			h.HandleError(c, shared.NewValidationError("INVALID_TYPE", "Unknown content type: "+raw))
			return
		}
		filter.Type = &t
	}
	if raw := c.Query("status"); raw != "" {
		s := content.Status(raw)
		if !s.IsValid() {
			h.HandleError(c, shared.NewValidationError("INVALID_STATUS", "Unknown content status: "+raw))
			return
		}
		filter.Status = &s
	}
	items, err := h.contentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, items, len(items))
}

// Get godoc
// @Summary      Get a content item
// @Tags         content
// @Produce      json
// @Param        id path string true "Content ID"
// @Success      200 {object} dto.Response{data=appcontent.ContentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /content/{id} [get]
func (h *ContentHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	item, err := h.contentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// GetBySlug godoc
// @Summary      Get a content item by slug
// @Tags         content
// @Produce      json
// @Param        slug path string true "Slug"
// @Success      200 {object} dto.Response{data=appcontent.ContentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /content/slug/{slug} [get]
func (h *ContentHandler) GetBySlug(c *gin.Context) {
	item, err := h.contentService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update godoc
// @Summary      Update a content item
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        id      path string                          true "Content ID"
// @Param        request body appcontent.UpdateContentRequest true "Content"
// @Success      200 {object} dto.Response{data=appcontent.ContentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /content/{id} [put]
func (h *ContentHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req appcontent.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	item, err := h.contentService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Publish godoc
// @Summary      Publish a content item
// @Tags         content
// @Produce      json
// @Param        id path string true "Content ID"
// @Success      200 {object} dto.Response{data=appcontent.ContentResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /content/{id}/publish [post]
func (h *ContentHandler) Publish(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	item, err := h.contentService.Publish(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Archive godoc
// @Summary      Archive a content item
// @Tags         content
// @Produce      json
// @Param        id path string true "Content ID"
// @Success      200 {object} dto.Response{data=appcontent.ContentResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /content/{id}/archive [post]
func (h *ContentHandler) Archive(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	item, err := h.contentService.Archive(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @Summary      Delete a content item and its assets
// @Tags         content
// @Produce      json
// @Param        id path string true "Content ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /content/{id} [delete]
func (h *ContentHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.contentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, "Content deleted")
}

// UploadAsset godoc
// @Summary      Upload an asset for a content item
// @Tags         content
// @Accept       multipart/form-data
// @Produce      json
// @Param        id   path     string true "Content ID"
// @Param        file formData file   true "Asset"
// @Success      201 {object} dto.Response{data=appcontent.AssetResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /content/{id}/assets [post]
func (h *ContentHandler) UploadAsset(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Multipart field \"file\" is required")
		return
	}
	if header.Size > MaxAssetSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Asset exceeds the upload limit")
		return
	}
	f, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Unreadable upload")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxAssetSize))
	if err != nil {
		h.BadRequest(c, "Unreadable upload")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || strings.HasPrefix(contentType, "application/octet-stream") {
		contentType = http.DetectContentType(data)
	}
	asset, err := h.contentService.UploadAsset(c.Request.Context(), id, appcontent.UploadAssetRequest{
		FileName:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, asset)
}

// ExportPDF godoc
// @Summary      Download a content item as PDF
// @Tags         content
// @Produce      application/pdf
// @Param        id path string true "Content ID"
// @Success      200 {file} binary
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /content/{id}/pdf [get]
func (h *ContentHandler) ExportPDF(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := h.contentService.ExportPDF(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
