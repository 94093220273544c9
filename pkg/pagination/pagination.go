package pagination

// Page-number pagination applied after grouping and filtering; the dashboard
// pages over derived vendor-order groups, not raw rows, so cursors are not an
// option here.

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many groups any page can request.
	MaxLimit = 100
)

// Params holds page pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Meta describes the page returned alongside the results.
type Meta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Normalize clamps the params to page >= 1 and limit in [1, MaxLimit].
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the number of groups to skip for the normalized params.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// PageCount returns ceil(total/limit) for a normalized limit.
func PageCount(total, limit int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// MetaFor builds the response metadata for a post-filter total.
func MetaFor(params Params, total int) Meta {
	n := params.Normalize()
	return Meta{
		Page:  n.Page,
		Limit: n.Limit,
		Total: total,
		Pages: PageCount(total, n.Limit),
	}
}

// Slice applies the normalized window to a slice length and returns the
// [low, high) bounds. A page past the end yields an empty window, not an
// error.
func Slice(params Params, length int) (int, int) {
	n := params.Normalize()
	low := n.Offset()
	if low > length {
		return length, length
	}
	high := low + n.Limit
	if high > length {
		high = length
	}
	return low, high
}
