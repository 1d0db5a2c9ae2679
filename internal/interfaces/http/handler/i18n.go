package handler

import (
	"github.com/gin-gonic/gin"
	appi18n "github.com/storefront/platform/internal/application/i18n"
	"github.com/storefront/platform/internal/domain/i18n"
)

// I18nHandler serves languages and translations
type I18nHandler struct {
	BaseHandler
	languages    *appi18n.LanguageService
	translations *appi18n.TranslationService
}

// NewI18nHandler creates a new i18n handler
func NewI18nHandler(languages *appi18n.LanguageService, translations *appi18n.TranslationService) *I18nHandler {
	return &I18nHandler{languages: languages, translations: translations}
}

// CreateLanguage godoc
// @Summary      Register a language
// @Description  The code is canonicalised as a BCP 47 tag
// @Tags         languages
// @Accept       json
// @Produce      json
// @Param        request body appi18n.CreateLanguageRequest true "Language"
// @Success      201 {object} dto.Response{data=appi18n.LanguageResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /languages [post]
func (h *I18nHandler) CreateLanguage(c *gin.Context) {
	var req appi18n.CreateLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	lang, err := h.languages.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, lang)
}

// ListLanguages godoc
// @Summary      List languages
// @Tags         languages
// @Produce      json
// @Param        active query bool false "Only active languages"
// @Success      200 {object} dto.Response{data=[]appi18n.LanguageResponse}
// @Security     BearerAuth
// @Router       /languages [get]
func (h *I18nHandler) ListLanguages(c *gin.Context) {
	active, err := queryBool(c, "active")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	langs, err := h.languages.List(c.Request.Context(), active != nil && *active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, langs, len(langs))
}

// GetLanguage godoc
// @Summary      Get a language
// @Tags         languages
// @Produce      json
// @Param        code path string true "Language code"
// @Success      200 {object} dto.Response{data=appi18n.LanguageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /languages/{code} [get]
func (h *I18nHandler) GetLanguage(c *gin.Context) {
	lang, err := h.languages.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lang)
}

// UpdateLanguage godoc
// @Summary      Update a language
// @Tags         languages
// @Accept       json
// @Produce      json
// @Param        code    path string                        true "Language code"
// @Param        request body appi18n.UpdateLanguageRequest true "Language"
// @Success      200 {object} dto.Response{data=appi18n.LanguageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /languages/{code} [put]
func (h *I18nHandler) UpdateLanguage(c *gin.Context) {
	var req appi18n.UpdateLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	lang, err := h.languages.Update(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lang)
}

// SetDefaultLanguage godoc
// @Summary      Make a language the default
// @Tags         languages
// @Produce      json
// @Param        code path string true "Language code"
// @Success      200 {object} dto.Response{data=appi18n.LanguageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /languages/{code}/default [patch]
func (h *I18nHandler) SetDefaultLanguage(c *gin.Context) {
	lang, err := h.languages.SetDefault(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lang)
}

// DeleteLanguage godoc
// @Summary      Delete a language
// @Tags         languages
// @Produce      json
// @Param        code path string true "Language code"
// @Success      200 {object} dto.Response
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /languages/{code} [delete]
func (h *I18nHandler) DeleteLanguage(c *gin.Context) {
	if err := h.languages.Delete(c.Request.Context(), c.Param("code")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, "Language deleted")
}

// CreateTranslation godoc
// @Summary      Add a translation
// @Tags         translations
// @Accept       json
// @Produce      json
// @Param        request body appi18n.CreateTranslationRequest true "Translation"
// @Success      201 {object} dto.Response{data=appi18n.TranslationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /translations [post]
func (h *I18nHandler) CreateTranslation(c *gin.Context) {
	var req appi18n.CreateTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	t, err := h.translations.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, t)
}

// ListTranslations godoc
// @Summary      List translations
// @Tags         translations
// @Produce      json
// @Param        languageCode query string false "Language code"
// @Param        namespace    query string false "Namespace"
// @Param        key          query string false "Key"
// @Success      200 {object} dto.Response{data=[]appi18n.TranslationResponse}
// @Security     BearerAuth
// @Router       /translations [get]
func (h *I18nHandler) ListTranslations(c *gin.Context) {
	items, err := h.translations.List(c.Request.Context(), i18n.TranslationFilter{
		LanguageCode: c.Query("languageCode"),
		Namespace:    c.Query("namespace"),
		Key:          c.Query("key"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, items, len(items))
}

// GetTranslation godoc
// @Summary      Get a translation
// @Tags         translations
// @Produce      json
// @Param        id path string true "Translation ID"
// @Success      200 {object} dto.Response{data=appi18n.TranslationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /translations/{id} [get]
func (h *I18nHandler) GetTranslation(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	t, err := h.translations.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// UpdateTranslation godoc
// @Summary      Replace a translation's text
// @Tags         translations
// @Accept       json
// @Produce      json
// @Param        id      path string                           true "Translation ID"
// @Param        request body appi18n.UpdateTranslationRequest true "Text"
// @Success      200 {object} dto.Response{data=appi18n.TranslationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /translations/{id} [put]
func (h *I18nHandler) UpdateTranslation(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req appi18n.UpdateTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	t, err := h.translations.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// DeleteTranslation godoc
// @Summary      Delete a translation
// @Tags         translations
// @Produce      json
// @Param        id path string true "Translation ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /translations/{id} [delete]
func (h *I18nHandler) DeleteTranslation(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.translations.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, "Translation deleted")
}

// Dictionary godoc
// @Summary      Key to text map for a language
// @Description  Keys missing in the language fall back to the default language
// @Tags         translations
// @Produce      json
// @Param        code path string true "Language code"
// @Success      200 {object} dto.Response{data=map[string]string}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /translations/language/{code} [get]
func (h *I18nHandler) Dictionary(c *gin.Context) {
	dict, err := h.translations.Dictionary(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dict)
}

// BulkUpsert godoc
// @Summary      Upsert many translations in one transaction
// @Tags         translations
// @Accept       json
// @Produce      json
// @Param        request body appi18n.BulkTranslationRequest true "Translations"
// @Success      200 {object} dto.Response{data=map[string]int}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /translations/bulk [post]
func (h *I18nHandler) BulkUpsert(c *gin.Context) {
	var req appi18n.BulkTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	n, err := h.translations.BulkUpsert(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"upserted": n})
}
