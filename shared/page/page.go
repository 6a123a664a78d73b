// Package page implements offset pagination shared by every listing
// endpoint, so that total_pages/last semantics are identical across them.
package page

import "errors"

var ErrInvalidPageRequest = errors.New("invalid page request")

// Request is a zero-based page index plus a positive page size.
type Request struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// NewRequest validates the raw page parameters.
func NewRequest(pageNo, size int) (Request, error) {
	if size <= 0 || pageNo < 0 {
		return Request{}, ErrInvalidPageRequest
	}
	return Request{Page: pageNo, Size: size}, nil
}

// Validate reports ErrInvalidPageRequest for a request that was built
// directly instead of through NewRequest.
func (r Request) Validate() error {
	if r.Size <= 0 || r.Page < 0 {
		return ErrInvalidPageRequest
	}
	return nil
}

// Offset is the number of rows to skip for this page.
func (r Request) Offset() int {
	return r.Page * r.Size
}

// Limit is the maximum number of rows on this page.
func (r Request) Limit() int {
	return r.Size
}

// Response is one page of results together with collection totals.
type Response[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	Last          bool  `json:"last"`
}

// Format builds the response envelope for one page. totalElements is the
// size of the whole (filtered) collection, not of content. Pure function,
// no side effects.
func Format[T any](req Request, totalElements int64, content []T) Response[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if totalElements > 0 {
		totalPages = int((totalElements + int64(req.Size) - 1) / int64(req.Size))
	}

	return Response[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		Last:          totalElements == 0 || req.Page >= totalPages-1,
	}
}

// Map converts the content of a page without touching its totals.
func Map[T, U any](p Response[T], fn func(T) U) Response[U] {
	content := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		content = append(content, fn(item))
	}
	return Response[U]{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Last:          p.Last,
	}
}
