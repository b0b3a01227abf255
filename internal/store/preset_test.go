package store

import (
	"testing"

	"github.com/easyshopbd/easyshop/internal/database"
)

func setupPresetTestDB(t *testing.T) *PresetStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPresetStore(db)
}

func TestPresetReplaceAll(t *testing.T) {
	ps := setupPresetTestDB(t)

	n, err := ps.ReplaceAll([]string{"বাজার হয়ে গেছে", "", "  ", "রাস্তায় আছি"})
	if err != nil {
		t.Fatalf("replace presets: %v", err)
	}
	if n != 2 {
		t.Errorf("saved %d presets, want 2 (blanks dropped)", n)
	}

	presets, err := ps.List()
	if err != nil {
		t.Fatalf("list presets: %v", err)
	}
	if len(presets) != 2 {
		t.Fatalf("got %d presets, want 2", len(presets))
	}
	if presets[0].Text != "বাজার হয়ে গেছে" || presets[1].Text != "রাস্তায় আছি" {
		t.Errorf("presets = %+v", presets)
	}

	// A second save replaces, never appends.
	if _, err := ps.ReplaceAll([]string{"only one"}); err != nil {
		t.Fatalf("replace presets: %v", err)
	}
	presets, _ = ps.List()
	if len(presets) != 1 || presets[0].Text != "only one" {
		t.Errorf("presets after replace = %+v", presets)
	}
}
