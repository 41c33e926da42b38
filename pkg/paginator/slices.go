package paginator

// PaginateSlice applies skip/limit to an already ordered slice.
func PaginateSlice[T any](slice []T, query OffsetQuery) ([]T, Paginator) {
	query.Adjust()

	total := len(slice)
	if query.Skip >= total {
		return []T{}, Paginator{Total: int64(total), Skip: query.Skip, Limit: query.Limit}
	}

	end := query.Skip + query.Limit
	if end > total {
		end = total
	}
	page := slice[query.Skip:end]

	return page, Paginator{
		Total: int64(total),
		Count: len(page),
		Skip:  query.Skip,
		Limit: query.Limit,
	}
}
