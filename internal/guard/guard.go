package guard

import (
	"path"
	"strings"

	"clamood/console/internal/session"
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Sections under which every sub-path is protected.
var sections = []string{
	"/members",
	"/trainers",
	"/reservations",
	"/salaries",
	"/notifications",
	"/settings",
	"/analytics",
}

type Decision struct {
	Allow    bool
	Redirect string
}

func allow() Decision              { return Decision{Allow: true} }
func redirect(to string) Decision  { return Decision{Redirect: to} }
func (d Decision) Redirects() bool { return !d.Allow && d.Redirect != "" }

func clean(p string) string {
	if p == "" {
		return HomePath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

func IsPublic(p string) bool {
	return clean(p) == LoginPath
}

func IsProtected(p string) bool {
	p = clean(p)
	if p == HomePath {
		return true
	}
	for _, s := range sections {
		if p == s || strings.HasPrefix(p, s+"/") {
			return true
		}
	}
	return false
}

func IsKnown(p string) bool {
	return IsPublic(p) || IsProtected(p)
}

// CanEnter reports whether the session may see p. The login page is always
// reachable; protected pages need an authenticated session.
func CanEnter(s session.Session, p string) bool {
	if IsPublic(p) {
		return true
	}
	return IsProtected(p) && s.IsAuthenticated()
}

// Resolve is the navigation decision for p: unknown paths go home, protected
// paths without a session go to login, and login with a session goes home.
func Resolve(s session.Session, p string) Decision {
	switch {
	case !IsKnown(p):
		return redirect(HomePath)
	case IsPublic(p):
		if s.IsAuthenticated() {
			return redirect(HomePath)
		}
		return allow()
	case !s.IsAuthenticated():
		return redirect(LoginPath)
	default:
		return allow()
	}
}
