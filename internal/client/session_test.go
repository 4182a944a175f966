package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pena-club/pena-api/internal/models"
)

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	in := Session{User: models.User{ID: "u1", Username: "cacho", Name: "Cacho"}}

	if err := SaveSession(path, in); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	out, err := LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if out.User != in.User {
		t.Errorf("loaded %+v, want %+v", out.User, in.User)
	}
}

func TestLoadSessionMissingFile(t *testing.T) {
	_, err := LoadSession(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing session file")
	}
}

func TestLoadSessionCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSession(path); err == nil {
		t.Fatal("expected error for corrupt session file")
	}
}
