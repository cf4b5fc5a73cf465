package service

import (
	"errors"

	"github.com/rs/zerolog"

	"valorant-accounts/internal/vault"
)

var ErrInvalidPassword = errors.New("invalid password")

// AuthService gates access behind the master password. The stored hash only
// guards the door; it does not key the accounts file encryption.
type AuthService struct {
	store  *vault.Store
	logger zerolog.Logger
}

func NewAuthService(store *vault.Store, logger zerolog.Logger) *AuthService {
	return &AuthService{store: store, logger: logger}
}

// Verify checks password against the stored master hash. When no hash
// exists yet the password becomes the master password; created reports
// which case happened.
func (s *AuthService) Verify(password string) (created bool, err error) {
	stored, err := s.store.LoadMasterKey()
	if err != nil {
		return false, err
	}

	hashed := vault.HashPassword(password)

	if stored == "" {
		if err := s.store.SaveMasterKey(hashed); err != nil {
			return false, err
		}
		s.logger.Info().Msg("master password created")
		return true, nil
	}

	if stored != hashed {
		return false, ErrInvalidPassword
	}
	return false, nil
}
