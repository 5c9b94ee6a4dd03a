package domain

// PaginationParams is the page/size pair parsed from a list request.
type PaginationParams struct {
	Page     int
	PageSize int
}
