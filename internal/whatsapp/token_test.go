package whatsapp

import (
	"testing"
)

func TestTokenStore_LoadMissing(t *testing.T) {
	ts := NewTokenStore(t.TempDir())
	token, err := ts.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "" {
		t.Errorf("token = %q, want empty", token)
	}
}

func TestTokenStore_SaveLoadRoundTrip(t *testing.T) {
	ts := NewTokenStore(t.TempDir())
	if err := ts.Save("opaque-token-123"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	token, err := ts.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "opaque-token-123" {
		t.Errorf("token = %q, want opaque-token-123", token)
	}
}

func TestTokenStore_Clear(t *testing.T) {
	ts := NewTokenStore(t.TempDir())
	if err := ts.Save("tok"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := ts.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	token, err := ts.Load()
	if err != nil {
		t.Fatalf("Load after Clear: %v", err)
	}
	if token != "" {
		t.Errorf("token = %q, want empty after Clear", token)
	}
}

func TestTokenStore_ClearMissingIsNoop(t *testing.T) {
	ts := NewTokenStore(t.TempDir())
	if err := ts.Clear(); err != nil {
		t.Errorf("Clear on missing token: %v", err)
	}
}

// --- Pairing handshake ---

func TestPair_FreshIssuesAndPersistsToken(t *testing.T) {
	ts := NewTokenStore(t.TempDir())
	s := NewSession()
	if err := Pair(s, ts); err != nil {
		t.Fatalf("Pair: %v", err)
	}
	if got := s.Current(); got != StateReady {
		t.Errorf("Current = %q, want %q", got, StateReady)
	}
	token, err := ts.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token == "" {
		t.Error("fresh pairing should persist a token")
	}
}

func TestPair_ResumesWithStoredToken(t *testing.T) {
	dir := t.TempDir()
	ts := NewTokenStore(dir)
	if err := ts.Save("persisted-across-restart"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s := NewSession()
	if err := Pair(s, ts); err != nil {
		t.Fatalf("Pair: %v", err)
	}
	if got := s.Current(); got != StateReady {
		t.Errorf("Current = %q, want %q", got, StateReady)
	}
	token, err := ts.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "persisted-across-restart" {
		t.Errorf("token = %q, want the stored token untouched", token)
	}
}
