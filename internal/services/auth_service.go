package services

import (
	"errors"

	"casaferro/internal/domain"
	"casaferro/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Users *repos.UserRepo
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
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

// ChangePassword verifies the current credential before rewriting the hash.
func (s *AuthService) ChangePassword(email, oldPassword, newPassword string) error {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(oldPassword)) != nil {
		return ErrBadCreds
	}
	h, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(u.ID, string(h))
}
