package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"invdesk/internal/model"
)

// Session is the client-held authenticated identity: the cached user
// profile plus the current token pair.
type Session struct {
	User         *model.User
	AccessToken  string
	RefreshToken string
}

// Store owns the three persisted session entries. Nothing else in the
// codebase touches the underlying storage directly.
type Store interface {
	AccessToken() (string, bool)
	RefreshToken() (string, bool)
	User() (*model.User, bool)
	// Snapshot returns the full session, ok only when all three entries
	// are present and the profile parses.
	Snapshot() (Session, bool)
	Set(s Session) error
	SetTokens(access, refresh string) error
	Clear() error
}

const (
	accessFile  = "accessToken"
	refreshFile = "refreshToken"
	userFile    = "user.json"
)

// FileStore persists the session as three files under a directory,
// one per entry, mirroring how each entry has its own storage key.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) AccessToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readEntry(accessFile)
}

func (s *FileStore) RefreshToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readEntry(refreshFile)
}

func (s *FileStore) User() (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readUser()
}

func (s *FileStore) Snapshot() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	access, okA := s.readEntry(accessFile)
	refresh, okR := s.readEntry(refreshFile)
	user, okU := s.readUser()
	if !okA || !okR || !okU {
		return Session{}, false
	}
	return Session{User: user, AccessToken: access, RefreshToken: refresh}, true
}

func (s *FileStore) Set(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user profile: %w", err)
	}
	if err := s.writeEntry(accessFile, []byte(sess.AccessToken)); err != nil {
		return err
	}
	if err := s.writeEntry(refreshFile, []byte(sess.RefreshToken)); err != nil {
		return err
	}
	return s.writeEntry(userFile, profile)
}

func (s *FileStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeEntry(accessFile, []byte(access)); err != nil {
		return err
	}
	return s.writeEntry(refreshFile, []byte(refresh))
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, name := range []string{accessFile, refreshFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *FileStore) readEntry(name string) (string, bool) {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(string(b))
	return v, v != ""
}

func (s *FileStore) readUser() (*model.User, bool) {
	b, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil, false
	}
	var u model.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, false
	}
	return &u, true
}

func (s *FileStore) writeEntry(name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o600); err != nil {
		return fmt.Errorf("write session entry %s: %w", name, err)
	}
	return nil
}

// MemStore keeps the session in memory. Used by the gateway (one session
// per process) and by tests.
type MemStore struct {
	mu   sync.Mutex
	sess *Session
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) AccessToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil || s.sess.AccessToken == "" {
		return "", false
	}
	return s.sess.AccessToken, true
}

func (s *MemStore) RefreshToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil || s.sess.RefreshToken == "" {
		return "", false
	}
	return s.sess.RefreshToken, true
}

func (s *MemStore) User() (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil || s.sess.User == nil {
		return nil, false
	}
	return s.sess.User, true
}

func (s *MemStore) Snapshot() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil || s.sess.User == nil || s.sess.AccessToken == "" || s.sess.RefreshToken == "" {
		return Session{}, false
	}
	return *s.sess, true
}

func (s *MemStore) Set(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = &sess
	return nil
}

func (s *MemStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		s.sess = &Session{}
	}
	s.sess.AccessToken = access
	s.sess.RefreshToken = refresh
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	return nil
}
