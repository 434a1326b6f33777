// Package session binds opaque tokens to account ids for the lifetime of the
// process. Tokens travel in an HMAC-signed cookie; nothing is persisted, so a
// restart logs everyone out.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the session cookie set on login.
const CookieName = "lifechip_session"

var (
	// ErrNoSession is returned when a token is unknown or expired.
	ErrNoSession = errors.New("no active session")
	// ErrBadCookie is returned when a cookie value fails signature checks.
	ErrBadCookie = errors.New("malformed session cookie")
)

type entry struct {
	accountID int
	expiresAt time.Time
}

// Manager is the session store: token -> account id with expiry. Expired
// entries are dropped lazily on Resolve and in bulk by the prune ticker.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]entry
	ttl      time.Duration
	secret   []byte

	pruneOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

// NewManager creates a manager signing cookies with secret. Sessions expire
// ttl after creation.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]entry),
		ttl:      ttl,
		secret:   []byte(secret),
		done:     make(chan struct{}),
	}
}

// TTL reports the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create establishes a session for accountID and returns the new token.
func (m *Manager) Create(accountID int) string {
	token := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = entry{
		accountID: accountID,
		expiresAt: time.Now().Add(m.ttl),
	}
	return token
}

// Resolve returns the account id bound to token, or ErrNoSession.
func (m *Manager) Resolve(token string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[token]
	if !ok {
		return 0, ErrNoSession
	}
	if time.Now().After(e.expiresAt) {
		delete(m.sessions, token)
		return 0, ErrNoSession
	}
	return e.accountID, nil
}

// Destroy removes the session for token. Destroying an unknown token is a
// no-op, which makes logout idempotent.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// StartPruning launches a background sweep of expired sessions every
// interval. It is safe to call at most once; Stop ends the sweep.
func (m *Manager) StartPruning(interval time.Duration) {
	m.pruneOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					m.prune()
				case <-m.done:
					return
				}
			}
		}()
	})
}

// Stop terminates the prune goroutine if one is running. Safe to call from
// multiple goroutines and more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)
	})
}

func (m *Manager) prune() {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, e := range m.sessions {
		if now.After(e.expiresAt) {
			delete(m.sessions, token)
		}
	}
}

// Encode produces the cookie value "token.signature".
func (m *Manager) Encode(token string) string {
	return token + "." + m.sign(token)
}

// Decode verifies a cookie value and returns the embedded token.
func (m *Manager) Decode(value string) (string, error) {
	token, sig, ok := strings.Cut(value, ".")
	if !ok || token == "" {
		return "", ErrBadCookie
	}
	if !hmac.Equal([]byte(sig), []byte(m.sign(token))) {
		return "", ErrBadCookie
	}
	return token, nil
}

func (m *Manager) sign(token string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
