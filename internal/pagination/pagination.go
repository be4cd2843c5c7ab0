package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultSize = 10
	maxSize     = 100
)

// Request is a zero-based page request parsed from query parameters.
type Request struct {
	Page int
	Size int
}

func FromQuery(c *gin.Context) Request {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultSize)))
	if err != nil || size <= 0 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	return Request{Page: page, Size: size}
}

func (r Request) Limit() int {
	return r.Size
}

func (r Request) Offset() int {
	return r.Page * r.Size
}

// Page is one page of results plus totals.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

func NewPage[T any](content []T, req Request, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := int(total) / req.Size
	if int(total)%req.Size != 0 {
		pages++
	}
	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
