package pagination

// Params represents limit/offset input parameters, matching the query
// parameters of the listing endpoints.
type Params struct {
	Limit  int `form:"limit" json:"limit"`
	Offset int `form:"offset" json:"offset"`
}

// Default returns default pagination values
func Default() *Params {
	return &Params{
		Limit:  20,
		Offset: 0,
	}
}

// Validate ensures pagination parameters are within valid ranges
func (p *Params) Validate() {
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ListResult represents a paginated listing with the total match count
type ListResult[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}

// NewListResult creates a new list result
func NewListResult[T any](items []T, count int64) *ListResult[T] {
	if items == nil {
		items = []T{}
	}
	return &ListResult[T]{
		Count:   count,
		Results: items,
	}
}
