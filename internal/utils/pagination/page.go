package pagination

import "encoding/json"

const (
	// HeaderName carries the page metadata of paged listings.
	HeaderName = "X-Pagination"

	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 50
	// MaxPageNumber keeps (pageNumber-1)*pageSize well inside a SQL BIGINT offset.
	// dto.ListRecordsParams spells it out in its lte tag.
	MaxPageNumber = 1_000_000
)

// Metadata describes one page of a listing.
type Metadata struct {
	CurrentPage int   `json:"CurrentPage"`
	TotalPages  int   `json:"TotalPages"`
	PageSize    int   `json:"PageSize"`
	TotalCount  int64 `json:"TotalCount"`
	HasPrevious bool  `json:"HasPrevious"`
	HasNext     bool  `json:"HasNext"`
}

// NormalizePage applies the defaults and clamps the page number to MaxPageNumber
// and the page size to MaxPageSize.
func NormalizePage(pageNumber, pageSize int) (int, int) {
	if pageNumber < 1 {
		pageNumber = DefaultPageNumber
	}
	if pageNumber > MaxPageNumber {
		pageNumber = MaxPageNumber
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return pageNumber, pageSize
}

// NewMetadata computes the page metadata for totalCount items.
func NewMetadata(totalCount int64, pageNumber, pageSize int) Metadata {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}
	return Metadata{
		CurrentPage: pageNumber,
		TotalPages:  totalPages,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		HasPrevious: pageNumber > 1,
		HasNext:     pageNumber < totalPages,
	}
}

// Header renders the metadata as the X-Pagination header value.
func (m Metadata) Header() string {
	b, _ := json.Marshal(m) // a struct of scalars always marshals
	return string(b)
}
