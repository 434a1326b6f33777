package service

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/ashurbayy/lifechip/internal/models"
	"github.com/ashurbayy/lifechip/internal/session"
	"github.com/ashurbayy/lifechip/internal/store"
)

var (
	ErrEmailTaken    = errors.New("email already in use")
	ErrUsernameTaken = errors.New("username already in use")
	// ErrInvalidCredentials deliberately does not say whether the email or
	// the password was wrong.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

// AuthService owns registration, login and the session lifecycle.
type AuthService struct {
	store    store.Store
	sessions *session.Manager

	// mu serializes the email/username check-then-create so concurrent
	// registrations cannot both pass the uniqueness checks.
	mu sync.Mutex
}

func NewAuthService(st store.Store, sessions *session.Manager) *AuthService {
	return &AuthService{
		store:    st,
		sessions: sessions,
	}
}

// Register creates an account after checking that the email and username are
// free. The password is bcrypt-hashed before it reaches the store.
func (s *AuthService) Register(ctx context.Context, username, email, password string, fullName *string) (*models.Account, error) {
	// Hash outside the critical section; bcrypt is slow on purpose.
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetAccountByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if _, err := s.store.GetAccountByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	account := &models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		FullName:     fullName,
	}
	if err := s.store.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Login checks the credentials and establishes a session, returning the
// account and the new session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Account, string, error) {
	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token := s.sessions.Create(account.ID)
	return account, token, nil
}

// Logout destroys the session for token; unknown tokens are ignored.
func (s *AuthService) Logout(token string) {
	s.sessions.Destroy(token)
}

// CurrentAccount loads the account bound to an authenticated session.
func (s *AuthService) CurrentAccount(ctx context.Context, accountID int) (*models.Account, error) {
	account, err := s.store.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, session.ErrNoSession
		}
		return nil, err
	}
	return account, nil
}
