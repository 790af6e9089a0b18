package schema

// PaginatedResponse represents a unified paginated API response
type PaginatedResponse[T any] struct {
	Data       []T    `json:"data"`
	Total      uint64 `json:"total"`
	Page       uint64 `json:"page"`
	PageSize   uint64 `json:"pageSize"`
	TotalPages uint64 `json:"totalPages"`
}

// PageWindow computes the half-open row range [(page-1)*pageSize, page*pageSize)
// as an offset + limit pair. Both page and pageSize have to be >= 1.
func PageWindow(page, pageSize uint64) (offset, limit uint64) {
	return (page - 1) * pageSize, pageSize
}

// TotalPages computes the total amount of pages needed to hold total records.
// A total of 0 yields 0 pages.
func TotalPages(total, pageSize uint64) uint64 {
	return (total + pageSize - 1) / pageSize
}

// BuildPaginatedResponse builds a unified paginated API response
func BuildPaginatedResponse[T any](page, pageSize, total uint64, data []T) *PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	return &PaginatedResponse[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}
}
