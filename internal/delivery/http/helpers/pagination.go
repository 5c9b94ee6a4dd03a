package helpers

import (
	"net/http"
	"strconv"

	"guestportal/internal/domain"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// PaginationMeta describes the page window of a list response.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPaginationMeta computes pagination metadata for a list response.
func NewPaginationMeta(params domain.PaginationParams, total int) PaginationMeta {
	totalPages := 0
	if params.PageSize > 0 {
		totalPages = (total + params.PageSize - 1) / params.PageSize
	}
	return PaginationMeta{
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ParsePagination reads page and pageSize query parameters. The second return
// value is false when neither parameter is present, meaning the caller should
// return the full, unpaged list.
func ParsePagination(r *http.Request) (domain.PaginationParams, bool) {
	q := r.URL.Query()
	pageStr := q.Get("page")
	sizeStr := q.Get("pageSize")
	if pageStr == "" && sizeStr == "" {
		return domain.PaginationParams{}, false
	}

	params := domain.PaginationParams{Page: defaultPage, PageSize: defaultPageSize}
	if pageStr != "" {
		if v, err := strconv.Atoi(pageStr); err == nil && v > 0 {
			params.Page = v
		}
	}
	if sizeStr != "" {
		if v, err := strconv.Atoi(sizeStr); err == nil && v > 0 {
			params.PageSize = min(v, maxPageSize)
		}
	}
	return params, true
}
