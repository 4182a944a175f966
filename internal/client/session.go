package client

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pena-club/pena-api/internal/models"
)

// Session is the locally cached identity of the logged-in user.
type Session struct {
	User models.User `json:"user"`
}

func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "pena", "session.json")
	}
	return filepath.Join(home, ".pena", "session.json")
}

func LoadSession(path string) (Session, error) {
	var s Session
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

func SaveSession(path string, s Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
