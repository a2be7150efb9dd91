package dto

// PageParams carries validated offset/limit query parameters.
type PageParams struct {
	Limit  int
	Offset int
}

// PaginatedResponse is the envelope every list endpoint returns.
type PaginatedResponse[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}

// NewPaginatedResponse builds the list envelope. Results is never null in
// JSON, an empty page serializes as [].
func NewPaginatedResponse[T any](results []T, count int64) *PaginatedResponse[T] {
	if results == nil {
		results = []T{}
	}
	return &PaginatedResponse[T]{
		Count:   count,
		Results: results,
	}
}
