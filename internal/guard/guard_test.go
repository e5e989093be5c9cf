package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clamood/console/internal/models"
	"clamood/console/internal/session"
)

var (
	anonymous = session.Session{}
	hq        = session.Session{Token: "t", User: &models.UserProfile{ID: 1, AdminType: models.AdminTypeHeadquarters}}
	branch    = session.Session{Token: "t", User: &models.UserProfile{
		ID:        2,
		AdminType: models.AdminTypeBranch,
		Branch:    &models.Branch{ID: 3, Name: "Gangnam"},
	}}
)

func TestCanEnter(t *testing.T) {
	cases := []struct {
		path string
		anon bool
		auth bool
	}{
		{"/login", true, true},
		{"/login/", true, true},
		{"/", false, true},
		{"/members", false, true},
		{"/members/12", false, true},
		{"/analytics", false, true},
		{"/settings", false, true},
		{"/unknown", false, false},
		{"/membership", false, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.anon, CanEnter(anonymous, tc.path), "anonymous %s", tc.path)
		assert.Equal(t, tc.auth, CanEnter(branch, tc.path), "authenticated %s", tc.path)
	}
}

func TestCanEnterNeedsTokenAndUser(t *testing.T) {
	tokenOnly := session.Session{Token: "t"}
	userOnly := session.Session{User: hq.User}

	assert.False(t, CanEnter(tokenOnly, "/members"))
	assert.False(t, CanEnter(userOnly, "/members"))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, Decision{Redirect: "/login"}, Resolve(anonymous, "/members"))
	assert.Equal(t, Decision{Allow: true}, Resolve(anonymous, "/login"))
	assert.Equal(t, Decision{Redirect: "/"}, Resolve(hq, "/login"))
	assert.Equal(t, Decision{Allow: true}, Resolve(hq, "/reservations"))
	assert.Equal(t, Decision{Redirect: "/"}, Resolve(hq, "/nowhere"))
	assert.Equal(t, Decision{Redirect: "/"}, Resolve(anonymous, "/nowhere"))

	assert.True(t, Resolve(anonymous, "/").Redirects())
	assert.False(t, Resolve(hq, "/").Redirects())
}

func TestAnalyticsIsReachableByBranchOperators(t *testing.T) {
	assert.True(t, CanEnter(branch, "/analytics"))

	for _, item := range Menu(branch) {
		assert.NotEqual(t, "/analytics", item.Path)
	}
}

func TestMenu(t *testing.T) {
	paths := func(items []MenuItem) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.Path)
		}
		return out
	}

	assert.Equal(t,
		[]string{"/", "/members", "/trainers", "/reservations", "/salaries", "/notifications", "/settings"},
		paths(Menu(branch)))
	assert.Equal(t,
		[]string{"/", "/members", "/trainers", "/reservations", "/salaries", "/analytics", "/notifications", "/settings"},
		paths(Menu(hq)))

	// Menu must not alias the base table.
	Menu(hq)[0].Label = "changed"
	assert.Equal(t, "Dashboard", Menu(branch)[0].Label)
}

func TestOperator(t *testing.T) {
	assert.Equal(t, "Headquarters admin", Operator(hq))
	assert.Equal(t, "Gangnam branch admin", Operator(branch))
	assert.Empty(t, Operator(anonymous))
}
