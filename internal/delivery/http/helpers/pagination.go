package helpers

import (
	"net/http"
	"strconv"
	"strings"

	"eventory/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page and page_size from the query string. Missing values take
// the defaults and page_size above MaxPageSize is clamped. A value that is not a positive
// integer writes a 400 and returns false, like QueryUUID.
func ParsePagination(w http.ResponseWriter, r *http.Request) (domain.PaginationParams, bool) {
	params := domain.PaginationParams{Page: DefaultPage, PageSize: DefaultPageSize}
	q := r.URL.Query()
	for _, f := range []struct {
		name string
		dst  *int
	}{{"page", &params.Page}, {"page_size", &params.PageSize}} {
		s := strings.TrimSpace(q.Get(f.name))
		if s == "" {
			continue
		}
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, f.name+" must be a positive integer")
			return domain.PaginationParams{}, false
		}
		*f.dst = v
	}
	params.PageSize = min(params.PageSize, MaxPageSize)
	return params, true
}

// PaginationMeta is the pagination block of list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPaginationMeta describes the page params selected out of total rows.
// A page past the end reports no next page and an empty item list.
func NewPaginationMeta(params domain.PaginationParams, total int) PaginationMeta {
	meta := PaginationMeta{Page: params.Page, PageSize: params.PageSize, Total: total}
	if params.PageSize > 0 {
		meta.TotalPages = (total + params.PageSize - 1) / params.PageSize
	}
	meta.HasNext = params.Page < meta.TotalPages
	meta.HasPrevious = params.Page > 1 && meta.TotalPages > 0
	return meta
}
