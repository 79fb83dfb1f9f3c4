package types

import "strings"

const (
	// DefaultPageSize applies when a caller omits or zeroes the page size.
	DefaultPageSize = 10
	// MaxPageSize caps the rows returned by a single page.
	MaxPageSize = 200
)

// SortSpec names a column alias and its direction.
type SortSpec struct {
	Field string
	Desc  bool
}

// PageSpec describes one page of a result set.
type PageSpec struct {
	Index int
	Size  int
	Sort  *SortSpec
}

// Normalize clamps the index and size into valid ranges.
func (p PageSpec) Normalize(def, max int) PageSpec {
	if def <= 0 {
		def = DefaultPageSize
	}
	if max <= 0 {
		max = MaxPageSize
	}
	if p.Index < 0 {
		p.Index = 0
	}
	if p.Size <= 0 {
		p.Size = def
	}
	if p.Size > max {
		p.Size = max
	}
	return p
}

// Offset returns the row offset for the page.
func (p PageSpec) Offset() int {
	return p.Index * p.Size
}

// ParseSort reads "field" or "field,asc|desc". An empty value returns nil.
func ParseSort(raw string) *SortSpec {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	field, dir, _ := strings.Cut(raw, ",")
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	return &SortSpec{
		Field: field,
		Desc:  strings.EqualFold(strings.TrimSpace(dir), "desc"),
	}
}

// Page carries a slice of items together with totals for the whole result set.
type Page[T any] struct {
	Items        []T `json:"content"`
	TotalRecords int `json:"totalRecords"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
	Size         int `json:"size"`
}

// NewPage builds a page and derives the page count from total and spec.Size.
func NewPage[T any](items []T, total int, spec PageSpec) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if spec.Size > 0 {
		pages = (total + spec.Size - 1) / spec.Size
	}
	return Page[T]{
		Items:        items,
		TotalRecords: total,
		TotalPages:   pages,
		CurrentPage:  spec.Index,
		Size:         spec.Size,
	}
}

// MapPage converts the items of a page while preserving its totals.
func MapPage[T, R any](page Page[T], fn func(T) R) Page[R] {
	out := make([]R, 0, len(page.Items))
	for _, item := range page.Items {
		out = append(out, fn(item))
	}
	return Page[R]{
		Items:        out,
		TotalRecords: page.TotalRecords,
		TotalPages:   page.TotalPages,
		CurrentPage:  page.CurrentPage,
		Size:         page.Size,
	}
}
