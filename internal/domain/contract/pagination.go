package contract

// Pagination is a 1-based page request.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Skip returns the number of records preceding the page.
func (p Pagination) Skip() int64 {
	if p.Page < 1 {
		return 0
	}
	return int64((p.Page - 1) * p.PageSize)
}

// Limit returns the page size as the driver expects it.
func (p Pagination) Limit() int64 {
	return int64(p.PageSize)
}
