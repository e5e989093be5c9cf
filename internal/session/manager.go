package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"clamood/console/internal/models"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyCredentials = errors.New("token and user are both required")
)

type Listener func(Session)

// Manager owns the operator session: restored from the store at start-up,
// replaced on login, cleared on logout or when the API rejects the token.
// Writes reach the store before they become visible in memory. Restore, Set,
// Clear and Revoke are serialised by writeMu; listeners run under it and must
// not mutate the session.
type Manager struct {
	writeMu   sync.Mutex
	mu        sync.RWMutex
	store     Store
	current   Session
	listeners []Listener
	log       zerolog.Logger
}

func NewManager(store Store, log zerolog.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// Restore loads the persisted session. A half-written session (one key without
// the other, or an unreadable profile) is discarded from the store.
func (m *Manager) Restore(ctx context.Context) (Session, error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	values, err := m.store.Load(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}

	token, hasToken := values[KeyAuthToken]
	raw, hasUser := values[KeyUserData]

	var restored Session
	if hasToken && hasUser && token != "" {
		var user models.UserProfile
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			m.log.Warn().Err(err).Msg("discarding unreadable persisted profile")
		} else {
			restored = Session{Token: token, User: &user}
		}
	}

	if !restored.IsAuthenticated() && (hasToken || hasUser) {
		if err := m.store.Remove(ctx, KeyAuthToken, KeyUserData); err != nil {
			return Session{}, fmt.Errorf("discard partial session: %w", err)
		}
	}

	m.mu.Lock()
	m.current = restored
	m.mu.Unlock()

	if restored.IsAuthenticated() {
		m.log.Info().Str("username", restored.User.Username).Msg("session restored")
	}
	return restored, nil
}

func (m *Manager) Get() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) Token() string {
	return m.Get().Token
}

func (m *Manager) IsAuthenticated() bool {
	return m.Get().IsAuthenticated()
}

// Set persists both keys and then swaps the in-memory session.
func (m *Manager) Set(ctx context.Context, token string, user models.UserProfile) error {
	if token == "" {
		return ErrEmptyCredentials
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	if err := m.store.Put(ctx, map[string]string{
		KeyAuthToken: token,
		KeyUserData:  string(data),
	}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	next := Session{Token: token, User: &user}
	m.mu.Lock()
	m.current = next
	m.mu.Unlock()

	m.notify(next)
	return nil
}

// Clear removes both keys. The in-memory session is dropped even when the
// store fails, so a rejected token is never sent again.
func (m *Manager) Clear(ctx context.Context) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return m.clearLocked(ctx)
}

func (m *Manager) clearLocked(ctx context.Context) error {
	err := m.store.Remove(ctx, KeyAuthToken, KeyUserData)

	m.mu.Lock()
	was := m.current
	m.current = Session{}
	m.mu.Unlock()

	if was.Token != "" || was.User != nil {
		m.notify(Session{})
	}
	if err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// OnChange registers a listener called after every login and clear.
func (m *Manager) OnChange(l Listener) {
	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	m.mu.Unlock()
}

func (m *Manager) notify(s Session) {
	m.mu.RLock()
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.RUnlock()
	for _, l := range listeners {
		l(s)
	}
}

// Revoke clears the session only if it still holds token, the credential a
// rejected request was sent with. It reports whether this call did the clearing,
// so concurrent rejections of the same token are handled once and a login that
// replaced the token survives.
func (m *Manager) Revoke(ctx context.Context, token string) (bool, error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	if m.Token() != token {
		return false, nil
	}
	return true, m.clearLocked(ctx)
}
