package bookmark

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FinFellows/Server/internal/middleware"
	"github.com/FinFellows/Server/internal/post"
)

type Handler struct {
	service *Service
	authmw  *middleware.AuthMiddleware
}

func NewHandler(service *Service, authmw *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, authmw: authmw}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	g := r.Group("/bookmarks", h.authmw.RequireAuth())
	g.POST("/financial-products/:id", h.addProduct)
	g.DELETE("/financial-products/:id", h.removeProduct)
	g.POST("/cma/:id", h.addCMA)
	g.DELETE("/cma/:id", h.removeCMA)
	g.POST("/policy-info/:id", h.addPolicy)
	g.DELETE("/policy-info/:id", h.removePolicy)
	g.POST("/posts/:id", h.addPost)
	g.DELETE("/posts/:id", h.removePost)
	g.DELETE("/all", h.authmw.RequireAdmin(), h.removeAll)

	u := r.Group("/users", h.authmw.RequireAuth())
	u.GET("/financial-products", h.listProducts)
	u.GET("/policy-infos", h.listPolicies)
	u.GET("/posts", h.listPosts)
}

type action func(c *gin.Context, id int64) (Message, error)

// handle parses the id, checks the principal, and runs the action.
func (h *Handler) handle(c *gin.Context, fn action) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	msg, err := fn(c, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *Handler) addProduct(c *gin.Context) {
	h.handle(c, func(c *gin.Context, id int64) (Message, error) {
		p, _ := middleware.PrincipalFromContext(c)
		return h.service.AddProduct(c.Request.Context(), p.ID, id)
	})
}

func (h *Handler) removeProduct(c *gin.Context) {
	h.handle(c, func(c *gin.Context, id int64) (Message, error) {
		p, _ := middleware.PrincipalFromContext(c)
		return h.service.RemoveProduct(c.Request.Context(), p.ID, id)
	})
}

func (h *Handler) addCMA(c *gin.Context) {
	h.handle(c, func(c *gin.Context, id int64) (Message, error) {
		p, _ := middleware.PrincipalFromContext(c)
		return h.service.AddCMA(c.Request.Context(), p.ID, id)
	})
}

func (h *Handler) removeCMA(c *gin.Context) {
	h.handle(c, func(c *gin.Context, id int64) (Message, error) {
		p, _ := middleware.PrincipalFromContext(c)
		return h.service.RemoveCMA(c.Request.Context(), p.ID, id)
	})
}

func (h *Handler) addPolicy(c *gin.Context) {
	h.handle(c, func(c *gin.Context, id int64) (Message, error) {
		p, _ := middleware.PrincipalFromContext(c)
		return h.service.AddPolicy(c.Request.Context(), p.ID, id)
	})
}

func (h *Handler) removePolicy(c *gin.Context) {
	h.handle(c, func(c *gin.Context, id int64) (Message, error) {
		p, _ := middleware.PrincipalFromContext(c)
		return h.service.RemovePolicy(c.Request.Context(), p.ID, id)
	})
}

func contentType(c *gin.Context) (post.ContentType, bool) {
	t := post.ContentType(c.Query("contentType"))
	return t, t.Valid()
}

func (h *Handler) addPost(c *gin.Context) {
	t, ok := contentType(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contentType"})
		return
	}
	h.handle(c, func(c *gin.Context, id int64) (Message, error) {
		p, _ := middleware.PrincipalFromContext(c)
		return h.service.AddPost(c.Request.Context(), p.ID, id, t)
	})
}

func (h *Handler) removePost(c *gin.Context) {
	t, ok := contentType(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contentType"})
		return
	}
	h.handle(c, func(c *gin.Context, id int64) (Message, error) {
		p, _ := middleware.PrincipalFromContext(c)
		return h.service.RemovePost(c.Request.Context(), p.ID, id, t)
	})
}

func (h *Handler) removeAll(c *gin.Context) {
	msg, err := h.service.RemoveAllProductBookmarks(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *Handler) listProducts(c *gin.Context) {
	p, _ := middleware.PrincipalFromContext(c)
	out, err := h.service.ProductBookmarks(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) listPolicies(c *gin.Context) {
	p, _ := middleware.PrincipalFromContext(c)
	out, err := h.service.PolicyBookmarks(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) listPosts(c *gin.Context) {
	p, _ := middleware.PrincipalFromContext(c)
	out, err := h.service.PostBookmarks(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTargetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "bookmark target not found"})
	case errors.Is(err, ErrBookmarkNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "bookmark not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
