package paginator

import "fmt"

const (
	// DefaultLimit is the number of items returned when no limit is provided.
	DefaultLimit = 100
	// MaxLimit is the maximum number of items per request to prevent excessive queries.
	MaxLimit = 1000
)

// OffsetQuery contains skip/limit pagination parameters for a request.
type OffsetQuery struct {
	Skip  int `json:"skip" form:"skip"`   // Number of items to skip
	Limit int `json:"limit" form:"limit"` // Number of items to return
}

// Validate rejects out-of-range parameters. A zero limit means "use the default".
func (q OffsetQuery) Validate() error {
	if q.Skip < 0 {
		return fmt.Errorf("%w: skip must be non-negative", ErrInvalidQuery)
	}
	if q.Limit < 0 || q.Limit > MaxLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidQuery, MaxLimit)
	}
	return nil
}

// Adjust normalizes the pagination parameters to valid values.
func (q *OffsetQuery) Adjust() {
	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	} else if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

// Paginator contains pagination metadata for a query result.
type Paginator struct {
	Total int64 `json:"total"` // Total number of matching items
	Count int   `json:"count"` // Number of items in this page
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

// HasNext checks if more items follow this page.
func (p Paginator) HasNext() bool {
	return int64(p.Skip+p.Count) < p.Total
}

// ToResponse converts the paginator to a response format with additional calculated fields.
func (p Paginator) ToResponse() PaginatorResponse {
	return PaginatorResponse{
		Total:   p.Total,
		Count:   p.Count,
		Skip:    p.Skip,
		Limit:   p.Limit,
		HasNext: p.HasNext(),
	}
}

// PaginatorResponse is the response format for pagination metadata.
type PaginatorResponse struct {
	Total   int64 `json:"total"`
	Count   int   `json:"count"`
	Skip    int   `json:"skip"`
	Limit   int   `json:"limit"`
	HasNext bool  `json:"has_next"`
}
