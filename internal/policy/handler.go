package policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/FinFellows/Server/internal/middleware"
	"github.com/FinFellows/Server/internal/pagination"
)

type Handler struct {
	service *Service
	authmw  *middleware.AuthMiddleware
}

func NewHandler(service *Service, authmw *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, authmw: authmw}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	g := r.Group("/policy-infos")
	g.GET("", h.authmw.OptionalAuth(), h.list)
	g.GET("/:id", h.authmw.OptionalAuth(), h.detail)
	g.PATCH("/:id", h.authmw.RequireAdmin(), h.update)
	g.DELETE("/:id", h.authmw.RequireAdmin(), h.delete)
}

func callerID(c *gin.Context) *uuid.UUID {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return nil
	}
	id := p.ID
	return &id
}

func (h *Handler) list(c *gin.Context) {
	page, err := h.service.Find(c.Request.Context(), c.Query("search"), pagination.FromQuery(c), callerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	row, err := h.service.Detail(c.Request.Context(), id, callerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *Handler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req UpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Policy updated."})
}

func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Policy deleted."})
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidPolicy) {
		c.JSON(http.StatusNotFound, gin.H{"error": "policy info not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
