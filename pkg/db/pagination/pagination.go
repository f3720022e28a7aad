package pagination

import "gorm.io/gorm"

const (
	DefaultPageSize = 10
	MaxPageSize     = 250
)

// Pagination carries page-number style listing arguments.
type Pagination struct {
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
}

// PageInfo describes the slice of results a listing returned.
type PageInfo struct {
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
}

// Normalize clamps page arguments into their valid ranges.
func (p Pagination) Normalize() Pagination {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Apply returns the statement with the page's OFFSET/LIMIT added.
func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	norm := p.Normalize()
	return stmt.Offset((norm.PageNumber - 1) * norm.PageSize).Limit(norm.PageSize)
}

// BuildPageInfo computes the page descriptor from a total row count.
func BuildPageInfo(p Pagination, total int64) *PageInfo {
	norm := p.Normalize()
	pages := int((total + int64(norm.PageSize) - 1) / int64(norm.PageSize))
	return &PageInfo{
		PageNumber: norm.PageNumber,
		PageSize:   norm.PageSize,
		TotalCount: total,
		TotalPages: pages,
		HasNext:    norm.PageNumber < pages,
	}
}
