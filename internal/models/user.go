package models

type AdminType string

const (
	AdminTypeHeadquarters AdminType = "headquarters"
	AdminTypeBranch       AdminType = "branch"
)

// UserProfile is the logged-in operator. It is replaced wholesale on the next login.
type UserProfile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	AdminType AdminType `json:"admin_type"`
	Branch    *Branch   `json:"branch,omitempty"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
}

type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token      string    `json:"token"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	AdminType  AdminType `json:"admin_type"`
	BranchID   *int64    `json:"branch_id"`
	BranchName string    `json:"branch_name"`
}

// Profile builds the session profile from a login response. The login endpoint
// only returns a branch id and name, so the branch is a partial copy and only
// present when the operator is bound to one.
func (r LoginResponse) Profile() UserProfile {
	profile := UserProfile{
		ID:        r.UserID,
		Username:  r.Username,
		Email:     r.Email,
		AdminType: r.AdminType,
		FirstName: r.Username,
	}
	if r.BranchID != nil {
		profile.Branch = &Branch{
			ID:       *r.BranchID,
			Name:     r.BranchName,
			IsActive: true,
		}
	}
	return profile
}

type PasswordChange struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
