// Package pagination normalizes page/limit/sort query input and computes
// the pagination window returned with every list response.
package pagination

import (
	"math"
	"strings"

	"boxfactory/internal/core/apperror"
)

// DefaultSort lists newest records first.
const DefaultSort = "-createdAt"

// Policy bounds the page size.
type Policy struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultPolicy is 10 per page, at most 100.
func DefaultPolicy() Policy {
	return Policy{DefaultLimit: 10, MaxLimit: 100}
}

// Params is the normalized request.
type Params struct {
	Page  int
	Limit int
	// Sort is the API field name, "-" prefix for descending
	Sort string
}

// Offset returns the number of records to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Parse normalizes raw query values. It never fails: a non-numeric, absent
// or zero value falls back to the default before clamping.
func Parse(page, limit, sort string, policy Policy) Params {
	if policy.DefaultLimit <= 0 {
		policy.DefaultLimit = DefaultPolicy().DefaultLimit
	}
	if policy.MaxLimit <= 0 {
		policy.MaxLimit = DefaultPolicy().MaxLimit
	}

	l := atoiOr(limit, policy.DefaultLimit)
	if l < 1 {
		l = 1
	}
	if l > policy.MaxLimit {
		l = policy.MaxLimit
	}

	p := clampPage(atoiOr(page, 1), l)

	sort = strings.TrimSpace(sort)
	if sort == "" {
		sort = DefaultSort
	}

	return Params{Page: p, Limit: l, Sort: sort}
}

// atoiOr reads the leading integer of raw ("5abc" is 5, "2.5" is 2).
// Input without leading digits, or reading as zero, yields def.
// Values past the int range saturate.
func atoiOr(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	neg := false
	if raw != "" && (raw[0] == '-' || raw[0] == '+') {
		neg = raw[0] == '-'
		raw = raw[1:]
	}

	n, digits := 0, 0
	for ; digits < len(raw) && raw[digits] >= '0' && raw[digits] <= '9'; digits++ {
		d := int(raw[digits] - '0')
		if n > (math.MaxInt-d)/10 {
			n = math.MaxInt
			continue
		}
		n = n*10 + d
	}
	if digits == 0 || n == 0 {
		return def
	}
	if neg {
		return -n
	}
	return n
}

// clampPage keeps page at least 1 and small enough that the offset
// (page-1)*limit fits in an int.
func clampPage(page, limit int) int {
	if page < 1 {
		return 1
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		return maxPage
	}
	return page
}

// Window is the computed pagination metadata.
type Window struct {
	CurrentPage int
	PageSize    int
	TotalPages  int
	Skip        int
	HasNext     bool
	HasPrev     bool
	Total       int64
}

// ComputeWindow derives page metadata from the request and the total match count.
func ComputeWindow(page, limit int, total int64) Window {
	if limit < 1 {
		limit = 1
	}
	page = clampPage(page, limit)
	pages := int(total / int64(limit))
	if total%int64(limit) > 0 {
		pages++
	}
	return Window{
		CurrentPage: page,
		PageSize:    limit,
		TotalPages:  pages,
		Skip:        (page - 1) * limit,
		HasNext:     page < pages,
		HasPrev:     page > 1,
		Total:       total,
	}
}

// SortColumn maps an API sort field ("-createdAt") to a storage column
// ("-created_at") using the entity's whitelist. Unknown fields are rejected.
func SortColumn(sort string, allowed map[string]string) (string, error) {
	desc := strings.HasPrefix(sort, "-")
	field := strings.TrimPrefix(sort, "-")

	column, ok := allowed[field]
	if !ok {
		return "", apperror.NewValidation("Invalid sort field: " + field).WithDetail("sort", sort)
	}
	if desc {
		return "-" + column, nil
	}
	return column, nil
}

// BaseSortFields are sortable on every entity.
func BaseSortFields() map[string]string {
	return map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
}

// SortFields merges extra API-to-column pairs into the base set.
func SortFields(extra map[string]string) map[string]string {
	out := BaseSortFields()
	for k, v := range extra {
		out[k] = v
	}
	return out
}
