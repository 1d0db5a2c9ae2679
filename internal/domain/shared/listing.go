package shared

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListOptions is the paging and ordering part of a listing query. Column
// names in OrderBy are checked against an allow list by the repository.
type ListOptions struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
}

// NewListOptions clamps page to at least 1 and page size into
// [1, MaxPageSize], falling back to DefaultPageSize
func NewListOptions(page, pageSize int) ListOptions {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return ListOptions{
		Page:     max(page, 1),
		PageSize: min(pageSize, MaxPageSize),
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

func (o ListOptions) Offset() int {
	if o.Page < 1 {
		return 0
	}
	return (o.Page - 1) * o.PageSize
}
