package services

import (
	"errors"
	"strings"

	"vitrina/internal/domain"
	"vitrina/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds = errors.New("invalid email or password")
	ErrNotOwner = errors.New("owner login required")
)

// AuthService logs the store owner in. Shoppers never authenticate; their
// browser session only carries a cart.
type AuthService struct {
	Users *repos.UserRepo
}

func NewAuthService(users *repos.UserRepo) *AuthService {
	return &AuthService{Users: users}
}

// Login binds sid to the owner account when the credentials match. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil || u.Role != domain.RoleOwner {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

// Owner returns the owner logged in on sid, or ErrNotOwner.
func (s *AuthService) Owner(sid string) (*domain.User, error) {
	if sid == "" {
		return nil, ErrNotOwner
	}
	u, err := s.Users.SessionUser(sid)
	if err != nil || u == nil || u.Role != domain.RoleOwner {
		return nil, ErrNotOwner
	}
	return u, nil
}
