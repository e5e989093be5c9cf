package session

import "clamood/console/internal/models"

// Session is the current credential and profile. An empty Token means no token.
type Session struct {
	Token string
	User  *models.UserProfile
}

func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// Role is empty when nobody is logged in.
func (s Session) Role() models.AdminType {
	if s.User == nil {
		return ""
	}
	return s.User.AdminType
}

func (s Session) IsHeadquarters() bool {
	return s.Role() == models.AdminTypeHeadquarters
}

func (s Session) IsBranch() bool {
	return s.Role() == models.AdminTypeBranch
}

func (s Session) Branch() *models.Branch {
	if s.User == nil {
		return nil
	}
	return s.User.Branch
}
