package resources

import (
	"context"

	"clamood/console/internal/models"
)

type AuthAPI struct {
	r Requester
}

func NewAuthAPI(r Requester) *AuthAPI {
	return &AuthAPI{r: r}
}

func (a *AuthAPI) Login(ctx context.Context, form models.LoginForm) (models.LoginResponse, error) {
	var out models.LoginResponse
	err := call(ctx, a.r, OpAuthLogin, 0, form, &out)
	return out, err
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return call(ctx, a.r, OpAuthLogout, 0, nil, nil)
}

func (a *AuthAPI) Me(ctx context.Context) (models.UserProfile, error) {
	var out models.UserProfile
	err := call(ctx, a.r, OpAuthMe, 0, nil, &out)
	return out, err
}

func (a *AuthAPI) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	return call(ctx, a.r, OpAuthChangePassword, 0, change, nil)
}
