package config

import (
	"path/filepath"
	"testing"

	"ledgerdesk/internal/security"
)

func TestSettingsStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	manager, err := security.NewManager(filepath.Join(dir, "k.key"))
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	store := NewSettingsStore(manager, dir)

	// missing file yields defaults, not an error
	got, err := store.Load()
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if got != (Settings{}) {
		t.Fatalf("got %+v, want zero settings", got)
	}

	in := Settings{
		AdminName:   "Jo",
		AdminRole:   "Accountant",
		CompanyName: "Acme",
	}
	in.Pin("/books/2024.csv")
	if err := store.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err = store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != in {
		t.Fatalf("got %+v, want %+v", got, in)
	}
}
