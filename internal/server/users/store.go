// Package users registers interactive accounts and checks their
// passwords. The username is the account's principal.
package users

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/argon2"

	"github.com/notechain/notechain/internal/logging"
	"github.com/notechain/notechain/internal/server/models"
)

var (
	ErrExists             = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const saltSize = 16

// hashPassword derives an argon2id digest; the same parameters are used
// for both registration and verification.
func hashPassword(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// Store keeps registered users in memory, mirrored to a JSON file when
// path is non-empty.
type Store struct {
	mu     sync.Mutex
	users  map[string]models.User
	path   string
	logger logging.Logger
}

func NewStore(path string, logger logging.Logger) *Store {
	s := &Store{
		users:  make(map[string]models.User),
		path:   path,
		logger: logger,
	}
	if path != "" {
		if err := s.restore(); err != nil {
			logger.Warn(context.Background(), "user snapshot not restored, starting empty",
				"path", path, "error", err)
		}
	}
	return s
}

// Register creates an account and returns its principal.
func (s *Store) Register(username string, password []byte) (string, error) {
	if username == "" || len(password) == 0 {
		return "", ErrInvalidCredentials
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return "", ErrExists
	}

	s.users[username] = models.User{
		Username:     username,
		Salt:         salt,
		PasswordHash: hashPassword(password, salt),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.persistLocked(); err != nil {
		delete(s.users, username)
		return "", err
	}
	return username, nil
}

// Verify checks the password and returns the account's principal.
func (s *Store) Verify(username string, password []byte) (string, error) {
	s.mu.Lock()
	u, ok := s.users[username]
	s.mu.Unlock()

	if !ok {
		return "", ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare(hashPassword(password, u.Salt), u.PasswordHash) != 1 {
		return "", ErrInvalidCredentials
	}
	return u.Username, nil
}

func (s *Store) restore() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	var users map[string]models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return fmt.Errorf("decoding user snapshot: %w", err)
	}
	if users != nil {
		s.users = users
	}
	return nil
}

func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	data, err := json.Marshal(s.users)
	if err != nil {
		return fmt.Errorf("encoding user snapshot: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
