// internal/app/store/storeutil/storeutil.go
package storeutil

import "go.mongodb.org/mongo-driver/mongo/options"

// DefaultPageSize is used when a caller passes a non-positive limit.
const DefaultPageSize = 20

// Paginate builds find options for a 1-based page over a listing.
// Out-of-range inputs fall back to the first page at the default size.
func Paginate(limit, page int64) *options.FindOptions {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	return options.Find().SetLimit(limit).SetSkip((page - 1) * limit)
}

// TotalPages reports how many pages a listing of total rows spans at
// the given limit. An empty listing still has one page.
func TotalPages(total, limit int64) int64 {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return pages
}
