package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"clamood/console/internal/gateway"
	"clamood/console/internal/models"
	"clamood/console/internal/notice"
	"clamood/console/internal/query"
	"clamood/console/internal/resources"
	"clamood/console/internal/session"
)

const (
	MsgLoggedIn        = "Logged in."
	MsgLoginFailed     = "Login failed. Check your username and password."
	MsgPasswordChanged = "Password changed."
)

type AuthService struct {
	auth     *resources.AuthAPI
	sessions *session.Manager
	cache    *query.Cache
	notices  *notice.Center
	log      zerolog.Logger
}

func NewAuthService(
	auth *resources.AuthAPI,
	sessions *session.Manager,
	cache *query.Cache,
	notices *notice.Center,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		auth:     auth,
		sessions: sessions,
		cache:    cache,
		notices:  notices,
		log:      log,
	}
}

func ProfileKey() query.Key {
	return query.NewKey(query.ResourceProfile, nil)
}

// Login exchanges credentials for a token and stores the resulting session.
// Rejected credentials come back as a validation failure; every other failure
// has already been announced by the gateway.
func (s *AuthService) Login(ctx context.Context, form models.LoginForm) (session.Session, error) {
	resp, err := s.auth.Login(ctx, form)
	if err != nil {
		if gateway.IsValidation(err) {
			s.notices.Error(MsgLoginFailed)
		}
		return session.Session{}, err
	}

	profile := resp.Profile()
	if err := s.sessions.Set(ctx, resp.Token, profile); err != nil {
		return session.Session{}, fmt.Errorf("store session: %w", err)
	}

	s.notices.Success(MsgLoggedIn)
	s.log.Info().
		Int64("user_id", profile.ID).
		Str("admin_type", string(profile.AdminType)).
		Msg("operator logged in")
	return s.sessions.Get(), nil
}

// Logout tells the API to drop the token and clears the local session even
// when that call fails.
func (s *AuthService) Logout(ctx context.Context) error {
	if s.sessions.Token() != "" {
		if err := s.auth.Logout(ctx); err != nil {
			s.log.Warn().Err(err).Msg("api logout failed")
		}
	}
	return s.sessions.Clear(ctx)
}

func (s *AuthService) Profile(ctx context.Context) (models.UserProfile, error) {
	return query.Get(ctx, s.cache, ProfileKey(), s.auth.Me)
}

func (s *AuthService) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	_, err := query.Mutation(ctx, s.cache, resources.OpAuthChangePassword, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.auth.ChangePassword(ctx, change)
	})
	if err != nil {
		return err
	}
	s.notices.Success(MsgPasswordChanged)
	return nil
}

// Verify asks the API whether the stored token is still accepted. A rejected
// token is cleared by the gateway.
func (s *AuthService) Verify(ctx context.Context) error {
	if !s.sessions.IsAuthenticated() {
		return session.ErrNotAuthenticated
	}
	if _, err := s.auth.Me(ctx); err != nil {
		return fmt.Errorf("verify session: %w", err)
	}
	return nil
}
