package repository

import (
	"inkwell/internal/models"

	"gorm.io/gorm"
)

const (
	// DefaultPageLimit is used when a caller does not specify a limit.
	DefaultPageLimit = 20
	// MaxPageLimit bounds the page size; larger requests are clamped.
	MaxPageLimit = 100
)

// Pagination holds a requested listing window.
type Pagination struct {
	Limit  int
	Offset int
}

// Normalize clamps the window to valid bounds. Clamping (rather than
// rejecting) is deterministic: the same request always yields the same
// window.
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Page is one window of a filtered listing. Total is computed over the
// same predicate as Items, so it always equals the number of rows the
// listing could eventually return.
type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// Paginate applies a bounds-checked window to the given query. Ordering is
// by creation time then id, so repeated calls with the same window return
// the same slice absent concurrent writes.
func Paginate[T any](q *gorm.DB, p Pagination) (*Page[T], error) {
	p = p.Normalize()

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	items := make([]T, 0, p.Limit)
	err := q.Session(&gorm.Session{}).
		Order("created_at, id").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&items).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &Page[T]{
		Items:  items,
		Total:  total,
		Limit:  p.Limit,
		Offset: p.Offset,
	}, nil
}
