package guard

import (
	"fmt"

	"clamood/console/internal/session"
)

type MenuItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

var baseMenu = []MenuItem{
	{Path: "/", Label: "Dashboard"},
	{Path: "/members", Label: "Members"},
	{Path: "/trainers", Label: "Trainers"},
	{Path: "/reservations", Label: "Reservations"},
	{Path: "/salaries", Label: "Salaries"},
	{Path: "/notifications", Label: "Notifications"},
	{Path: "/settings", Label: "Settings"},
}

var analyticsItem = MenuItem{Path: "/analytics", Label: "Analytics"}

const analyticsPosition = 5

// Menu lists the navigation entries for the session. Headquarters operators
// also see analytics. Hiding an entry does not restrict its page.
func Menu(s session.Session) []MenuItem {
	items := make([]MenuItem, 0, len(baseMenu)+1)
	items = append(items, baseMenu...)
	if !s.IsHeadquarters() {
		return items
	}
	items = append(items[:analyticsPosition+1], items[analyticsPosition:]...)
	items[analyticsPosition] = analyticsItem
	return items
}

// Operator is the caption shown next to the menu.
func Operator(s session.Session) string {
	switch {
	case s.User == nil:
		return ""
	case s.IsHeadquarters():
		return "Headquarters admin"
	case s.Branch() != nil:
		return fmt.Sprintf("%s branch admin", s.Branch().Name)
	default:
		return "Branch admin"
	}
}
