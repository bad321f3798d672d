package apiclient

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// AuthUser es el usuario autenticado tal como lo devuelve /auth/login.
type AuthUser struct {
	ID       int64  `json:"id"`
	Names    string `json:"names"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Session son las dos claves persistidas: token y authUser (JSON serializado).
type Session struct {
	Token    string `toml:"token"`
	AuthUser string `toml:"authUser"`
}

// User decodifica authUser. Devuelve false si no hay sesión.
func (s Session) User() (AuthUser, bool) {
	var u AuthUser
	if s.AuthUser == "" || json.Unmarshal([]byte(s.AuthUser), &u) != nil {
		return AuthUser{}, false
	}
	return u, true
}

func NewSession(token string, user AuthUser) Session {
	raw, _ := json.Marshal(user)
	return Session{Token: token, AuthUser: string(raw)}
}

// SessionStore guarda la sesión a nivel de proceso. Clear es idempotente.
type SessionStore interface {
	Load() (Session, error)
	Save(s Session) error
	Clear() error
}

// ---------------- Memoria ----------------

type MemoryStore struct {
	mu      sync.RWMutex
	session Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session, nil
}

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	m.session = s
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear() error {
	return m.Save(Session{})
}

// ---------------- Fichero TOML ----------------

// FileStore persiste la sesión en un fichero TOML con permisos 0600.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultSessionPath es ~/.config/gymlab/session.toml.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gymlab", "session.toml"), nil
}

func (f *FileStore) Load() (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var s Session
	if _, err := toml.DecodeFile(f.path, &s); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, err
	}
	return s, nil
}

func (f *FileStore) Save(s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(s)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
