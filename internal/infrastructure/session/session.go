package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Store persists the bearer token between runs.
type Store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore keeps the token in a JSON file, the headless equivalent of the
// browser's localStorage.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed token store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type sessionFile struct {
	Token string `json:"token"`
}

func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return "", err
	}
	return f.Token, nil
}

func (s *FileStore) Save(token string) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	data, err := json.Marshal(sessionFile{Token: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Session is the process-wide auth state with an explicit lifecycle. It is
// injected into the components that need it instead of being read from
// ambient storage at every call site.
type Session struct {
	mu         sync.Mutex
	token      string
	store      Store
	onTeardown []func()
}

// New creates a session backed by the given store. Call Initialize before
// first use.
func New(store Store) *Session {
	return &Session{store: store}
}

// Initialize loads any persisted token. Safe to call once at startup.
func (s *Session) Initialize() error {
	token, err := s.store.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Teardown clears the session and notifies listeners. Invoked on explicit
// logout and by the transport when the server answers 401.
func (s *Session) Teardown() error {
	s.mu.Lock()
	s.token = ""
	listeners := make([]func(), len(s.onTeardown))
	copy(listeners, s.onTeardown)
	s.mu.Unlock()

	err := s.store.Clear()
	for _, fn := range listeners {
		fn()
	}
	return err
}

// Token returns the current bearer token, empty when logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken stores and persists a fresh token after login.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return s.store.Save(token)
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// OnTeardown registers a listener invoked whenever the session is torn down.
func (s *Session) OnTeardown(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTeardown = append(s.onTeardown, fn)
}
