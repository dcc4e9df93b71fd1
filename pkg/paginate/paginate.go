// Package paginate normalizes list pagination parameters.
package paginate

import (
	"net/http"
	"strconv"
)

// DefaultLimit is used when the requested limit is absent or not allowed.
const DefaultLimit = 10

var allowedLimits = map[int]bool{5: true, 10: true, 20: true}

// Params is a normalized page request.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps page to >= 1 and limit to the allow-list {5, 10, 20},
// falling back to DefaultLimit for anything else.
func Normalize(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if !allowedLimits[limit] {
		limit = DefaultLimit
	}
	return Params{Page: page, Limit: limit}
}

// FromRequest reads page/limit query parameters and normalizes them.
// Unparseable values fall back to the defaults.
func FromRequest(r *http.Request) Params {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return Normalize(page, limit)
}

// Skip is the number of documents to skip for this page.
func (p Params) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// Pages computes ceil(total/limit); zero totals yield zero pages.
func (p Params) Pages(total int64) int {
	if total <= 0 {
		return 0
	}
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return int(pages)
}
