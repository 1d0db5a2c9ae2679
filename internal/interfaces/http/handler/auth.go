package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/platform/internal/application/identity"
	"github.com/storefront/platform/internal/interfaces/http/middleware"
)

// AuthHandler serves sign-up, sign-in and token rotation
type AuthHandler struct {
	BaseHandler
	auth *identity.AuthService
}

func NewAuthHandler(auth *identity.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// exchange binds a credential request and answers with the issued token pair
func exchange[R any](h *AuthHandler, c *gin.Context, status int, issue func(context.Context, R) (*identity.TokenResponse, error)) {
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	tokens, err := issue(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if status == http.StatusCreated {
		h.Created(c, tokens)
		return
	}
	h.Success(c, tokens)
}

// Register godoc
// @Summary      Create a customer account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RegisterRequest true "Credentials"
// @Success      201 {object} dto.Response{data=identity.TokenResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	exchange(h, c, http.StatusCreated, h.auth.Register)
}

// Login godoc
// @Summary      Sign in
// @Description  Exchanges email and password for a token pair. Repeated failures lock the account.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LoginRequest true "Login credentials"
// @Success      200 {object} dto.Response{data=identity.TokenResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	exchange(h, c, http.StatusOK, h.auth.Login)
}

// Refresh godoc
// @Summary      Rotate tokens
// @Description  Exchanges a refresh token for a new pair. The old refresh token is revoked.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RefreshRequest true "Refresh token"
// @Success      200 {object} dto.Response{data=identity.TokenResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	exchange(h, c, http.StatusOK, h.auth.Refresh)
}

// Logout godoc
// @Summary      Sign out
// @Description  Revokes the presented access token until it expires
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.GetJWTClaims(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Logged out", nil)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=identity.UserResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	id, err := uuid.Parse(middleware.GetJWTUserID(c))
	if err != nil {
		h.Error(c, http.StatusUnauthorized, "TOKEN_INVALID", "Token does not identify a user")
		return
	}
	me, err := h.auth.Me(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, me)
}
