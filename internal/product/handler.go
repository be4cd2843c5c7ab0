package product

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

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
	g := r.Group("/financial-products", h.authmw.OptionalAuth())
	g.GET("/deposits", h.listDeposits)
	g.GET("/deposits/:id", h.depositDetail)
	g.GET("/savings", h.listSavings)
	g.GET("/savings/:id", h.savingDetail)
	g.GET("/cma", h.listCMA)
	g.GET("/cma/:id", h.cmaDetail)
	g.GET("/banks", h.banks)
}

// callerID returns the signed-in user's id, or nil for anonymous calls.
func callerID(c *gin.Context) *uuid.UUID {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return nil
	}
	id := p.ID
	return &id
}

func searchCondition(c *gin.Context) SearchCondition {
	cond := SearchCondition{Keyword: c.Query("search")}
	if banks := c.Query("banks"); banks != "" {
		cond.Banks = strings.Split(banks, ",")
	}
	if deny := c.Query("join-deny"); deny != "" {
		if v, err := strconv.Atoi(deny); err == nil {
			cond.JoinDeny = &v
		}
	}
	return cond
}

func (h *Handler) listDeposits(c *gin.Context) {
	page, err := h.service.FindDeposits(c.Request.Context(), searchCondition(c), pagination.FromQuery(c), callerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) listSavings(c *gin.Context) {
	page, err := h.service.FindSavings(c.Request.Context(), searchCondition(c), pagination.FromQuery(c), callerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) depositDetail(c *gin.Context) {
	h.detail(c, TypeDeposit)
}

func (h *Handler) savingDetail(c *gin.Context) {
	h.detail(c, TypeSaving)
}

func (h *Handler) detail(c *gin.Context, t Type) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	res, err := h.service.Detail(c.Request.Context(), id, t, callerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) listCMA(c *gin.Context) {
	page, err := h.service.FindCMA(c.Request.Context(), searchCondition(c), pagination.FromQuery(c), callerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) cmaDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	cma, err := h.service.CmaDetail(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cma)
}

func (h *Handler) banks(c *gin.Context) {
	banks, err := h.service.Banks(c.Request.Context(), c.Query("bank-group-no"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, banks)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidProduct):
		c.JSON(http.StatusNotFound, gin.H{"error": "financial product not found"})
	case errors.Is(err, ErrProductMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "product type mismatch"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
