package query

import "net/url"

// Resource names a server-side collection whose results are cached.
type Resource string

const (
	ResourceMembers       Resource = "members"
	ResourceMemberStats   Resource = "member-stats"
	ResourceBranches      Resource = "branches"
	ResourceTrainers      Resource = "trainers"
	ResourceReservations  Resource = "reservations"
	ResourceSalaries      Resource = "salaries"
	ResourceNotifications Resource = "notifications"
	ResourceDashboard     Resource = "dashboard"
	ResourceProfile       Resource = "profile"
)

// Key identifies one cached result set. Params is the canonical (sorted,
// encoded) form of the query parameters, so equal filters give equal keys.
type Key struct {
	Resource Resource
	Params   string
}

func NewKey(r Resource, params map[string]string) Key {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return Key{Resource: r, Params: q.Encode()}
}

func (k Key) String() string {
	if k.Params == "" {
		return string(k.Resource)
	}
	return string(k.Resource) + "?" + k.Params
}
