package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FinFellows/Server/internal/auth"
	"github.com/FinFellows/Server/internal/logger"
	"github.com/FinFellows/Server/internal/middleware"
	"github.com/FinFellows/Server/internal/user"
)

type Handler struct {
	service *auth.Service
	authmw  *middleware.AuthMiddleware
}

func NewHandler(service *auth.Service, authmw *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, authmw: authmw}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	g := r.Group("/auth")
	g.GET("/sign-in", h.signIn)
	g.GET("/admin/sign-in", h.adminSignIn)
	g.POST("/refresh", h.refresh)

	g.GET("", h.authmw.RequireAuth(), h.whoAmI)
	g.POST("/sign-out", h.authmw.RequireAuth(), h.signOut)
	g.DELETE("", h.authmw.RequireAuth(), h.deleteAccount)
}

type refreshTokenReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *Handler) signIn(c *gin.Context) {
	h.login(c, user.RoleUser)
}

func (h *Handler) adminSignIn(c *gin.Context) {
	h.login(c, user.RoleAdmin)
}

func (h *Handler) login(c *gin.Context, roleForNewAccounts user.Role) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}

	res, err := h.service.Login(c.Request.Context(), code, roleForNewAccounts)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) refresh(c *gin.Context) {
	var req refreshTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) signOut(c *gin.Context) {
	var req refreshTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	msg, err := h.service.SignOut(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, msg)
}

func (h *Handler) deleteAccount(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	msg, err := h.service.DeleteAccount(c.Request.Context(), principal)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, msg)
}

func (h *Handler) whoAmI(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	u, err := h.service.WhoAmI(c.Request.Context(), principal)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

// writeError maps the auth error taxonomy to HTTP statuses. Token
// values never appear in responses or logs.
func writeError(c *gin.Context, err error) {
	var providerErr *auth.ExternalProviderError
	var assertErr *auth.AssertionError

	switch {
	case errors.As(err, &providerErr):
		logger.Error("oauth provider call failed", map[string]any{
			"op":    providerErr.Op,
			"error": providerErr.Err.Error(),
		})
		c.JSON(http.StatusBadGateway, gin.H{"error": "authentication failed"})
	case errors.Is(err, auth.ErrInvalidAuthentication),
		errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
	case errors.As(err, &assertErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": assertErr.Msg})
	default:
		logger.Error("auth operation failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
