package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"valorant-accounts/internal/config"
	"valorant-accounts/internal/domain"
)

const (
	accountsFileName  = "accounts.json"
	masterKeyFileName = "valorant-master.key"
	themeFileName     = "valorant-theme.json"
)

// storedAccount is the on-disk shape. Older releases wrote the riot ID
// under accountName, so the field is renamed on every save and renamed back
// on every load.
type storedAccount struct {
	ID            string    `json:"id"`
	AccountName   string    `json:"accountName,omitempty"`
	RiotID        string    `json:"riotId,omitempty"`
	Hashtag       string    `json:"hashtag"`
	Username      string    `json:"username"`
	Password      string    `json:"password"`
	Region        string    `json:"region"`
	HasSkins      bool      `json:"hasSkins"`
	CurrentRank   string    `json:"currentRank"`
	LastRefreshed time.Time `json:"lastRefreshed"`
	Notes         string    `json:"notes,omitempty"`
}

// Store reads and writes the application's data files under one directory.
type Store struct {
	dataDir string
	logger  zerolog.Logger
}

func NewStore(cfg *config.Config, logger zerolog.Logger) *Store {
	return &Store{dataDir: cfg.DataDir, logger: logger}
}

// LoadAccounts decrypts the accounts file. A missing file is an empty list,
// not an error.
func (s *Store) LoadAccounts() ([]domain.Account, error) {
	path := filepath.Join(s.dataDir, accountsFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	plaintext, err := Decrypt(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt accounts file: %w", err)
	}

	var stored []storedAccount
	if err := json.Unmarshal([]byte(plaintext), &stored); err != nil {
		return nil, fmt.Errorf("failed to parse accounts file: %w", err)
	}

	accounts := make([]domain.Account, 0, len(stored))
	for _, sa := range stored {
		riotID := sa.AccountName
		if riotID == "" {
			riotID = sa.RiotID
		}
		accounts = append(accounts, domain.Account{
			ID:            sa.ID,
			RiotID:        riotID,
			Hashtag:       sa.Hashtag,
			Username:      sa.Username,
			Password:      sa.Password,
			Region:        domain.Region(sa.Region),
			HasSkins:      sa.HasSkins,
			CurrentRank:   sa.CurrentRank,
			LastRefreshed: sa.LastRefreshed,
			Notes:         sa.Notes,
		})
	}

	s.logger.Debug().Int("count", len(accounts)).Msg("accounts loaded")
	return accounts, nil
}

// SaveAccounts encrypts and writes the full account list.
func (s *Store) SaveAccounts(accounts []domain.Account) error {
	stored := make([]storedAccount, 0, len(accounts))
	for _, acc := range accounts {
		stored = append(stored, storedAccount{
			ID:            acc.ID,
			AccountName:   acc.RiotID,
			Hashtag:       acc.Hashtag,
			Username:      acc.Username,
			Password:      acc.Password,
			Region:        string(acc.Region),
			HasSkins:      acc.HasSkins,
			CurrentRank:   acc.CurrentRank,
			LastRefreshed: acc.LastRefreshed,
			Notes:         acc.Notes,
		})
	}

	plaintext, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}

	encrypted, err := Encrypt(string(plaintext))
	if err != nil {
		return fmt.Errorf("failed to encrypt accounts: %w", err)
	}

	path := filepath.Join(s.dataDir, accountsFileName)
	if err := os.WriteFile(path, []byte(encrypted), 0o600); err != nil {
		return fmt.Errorf("failed to write accounts file: %w", err)
	}

	s.logger.Debug().Int("count", len(accounts)).Msg("accounts saved")
	return nil
}

// LoadMasterKey returns the stored master-password hash, or "" when none
// has been created yet.
func (s *Store) LoadMasterKey() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, masterKeyFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read master key file: %w", err)
	}
	return string(data), nil
}

// SaveMasterKey stores the master-password hash.
func (s *Store) SaveMasterKey(hash string) error {
	path := filepath.Join(s.dataDir, masterKeyFileName)
	if err := os.WriteFile(path, []byte(hash), 0o600); err != nil {
		return fmt.Errorf("failed to write master key file: %w", err)
	}
	return nil
}

type themeFile struct {
	Theme string `json:"theme"`
}

// LoadTheme returns the stored theme preference, or "" when unset.
func (s *Store) LoadTheme() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, themeFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read theme file: %w", err)
	}
	var tf themeFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return "", fmt.Errorf("failed to parse theme file: %w", err)
	}
	return tf.Theme, nil
}

// SaveTheme stores the theme preference.
func (s *Store) SaveTheme(theme string) error {
	data, err := json.Marshal(themeFile{Theme: theme})
	if err != nil {
		return fmt.Errorf("failed to marshal theme: %w", err)
	}
	path := filepath.Join(s.dataDir, themeFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write theme file: %w", err)
	}
	return nil
}
