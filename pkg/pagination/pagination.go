package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultLimit applies when the caller does not ask for a page size.
	DefaultLimit = 20
	// MaxLimit caps the page size a caller can request.
	MaxLimit = 100
)

// NormalizeLimit clamps a requested page size into [1, MaxLimit], substituting
// DefaultLimit for zero or negative values.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Params carries offset pagination values parsed from a request.
type Params struct {
	Limit  int
	Offset int
}

// FromQuery reads limit/offset query values, normalizing bad input instead of
// rejecting it.
func FromQuery(q url.Values) Params {
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	if offset < 0 {
		offset = 0
	}
	return Params{
		Limit:  NormalizeLimit(limit),
		Offset: offset,
	}
}
