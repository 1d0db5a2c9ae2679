// Package handler holds the gin handlers of every storefront service.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"github.com/storefront/platform/internal/interfaces/http/dto"
	"github.com/storefront/platform/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMessage sends a 200 response carrying a message
func (h *BaseHandler) SuccessWithMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.NewMessageResponse(message, data))
}

// Collection sends a collection together with its total count
func (h *BaseHandler) Collection(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, dto.NewListResponse(data, int64(count)))
}

// Page sends one page of a collection together with the total match count
func (h *BaseHandler) Page(c *gin.Context, data any, total int64) {
	c.JSON(http.StatusOK, dto.NewListResponse(data, total))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Deleted confirms a removal
func (h *BaseHandler) Deleted(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.NewMessageResponse(message, nil))
}

// Error sends an error envelope with an explicit status
func (h *BaseHandler) Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponse(code, message, c.GetString(middleware.ServiceKey), c.GetString(middleware.RequestIDKey)))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// BindError reports a request that failed to bind, listing field errors when
// the validator produced them
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	details := middleware.ValidationDetails(err)
	if len(details) == 0 {
		h.BadRequest(c, "Invalid request body")
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeValidation, "Request validation failed",
		c.GetString(middleware.ServiceKey), c.GetString(middleware.RequestIDKey), details...))
}

// HandleError maps err to its status by kind. Domain errors keep their code
// and message; anything unclassified is hidden behind a generic message.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	status := dto.StatusForError(err)
	log := logger.GetGinLogger(c)

	var de *shared.DomainError
	if errors.As(err, &de) {
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", zap.String("kind", string(de.Kind)), zap.Error(err))
		}
		h.Error(c, status, de.Code, de.Message)
		return
	}

	log.Error("Unclassified error", zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// ParseID reads a uuid path parameter, answering 400 when it is malformed
func (h *BaseHandler) ParseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		h.BadRequest(c, "Invalid "+param+" format")
		return uuid.Nil, false
	}
	return id, true
}
