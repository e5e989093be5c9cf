package resources

import (
	"net/url"
	"strconv"
)

// ListFilter holds the common list parameters. Zero values are left out of
// the query string.
type ListFilter struct {
	Page   int
	Search string
	Status string
	Branch int64
}

func (f ListFilter) values(statusParam string) url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" {
		q.Set(statusParam, f.Status)
	}
	if f.Branch > 0 {
		q.Set("branch", strconv.FormatInt(f.Branch, 10))
	}
	return q
}

// Params is the filter in the form used for cache keys.
func (f ListFilter) Params() map[string]string {
	out := make(map[string]string)
	for k, v := range f.values("status") {
		out[k] = v[0]
	}
	return out
}
