package auth

import (
	"context"
	"errors"

	"github.com/foundersof404/404founders/internal/admin"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both an unknown username and a
// wrong password. The two causes are deliberately not distinguished so
// responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	adminRepo admin.Repository
	tokens    *TokenManager
}

func NewService(adminRepo admin.Repository, tokens *TokenManager) *Service {
	return &Service{
		adminRepo: adminRepo,
		tokens:    tokens,
	}
}

// Login exchanges a username/password pair for a signed session token
// and the redacted administrator record. No session state is kept.
func (s *Service) Login(ctx context.Context, username, password string) (string, admin.Info, error) {
	adm, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, admin.ErrAdminNotFound) {
			return "", admin.Info{}, ErrInvalidCredentials
		}
		return "", admin.Info{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(adm.PasswordHash), []byte(password)); err != nil {
		return "", admin.Info{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(adm.ID, adm.Username)
	if err != nil {
		return "", admin.Info{}, err
	}

	return token, adm.Info(), nil
}
