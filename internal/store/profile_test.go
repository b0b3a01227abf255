package store

import (
	"errors"
	"testing"

	"github.com/easyshopbd/easyshop/internal/database"
)

func setupProfileTestDB(t *testing.T) (*ProfileStore, *UserStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewProfileStore(db), NewUserStore(db)
}

func TestProfileCreateAndGet(t *testing.T) {
	ps, us := setupProfileTestDB(t)

	u, _ := us.Create("rahim", "hash", false)
	created, err := ps.Create(u.ID, "Rahim Uddin", "01711111111", "House 5, Road 2")
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	got, err := ps.GetByUserID(u.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got == nil {
		t.Fatal("expected profile, got nil")
	}
	if got.ID != created.ID || got.FullName != "Rahim Uddin" || got.Phone != "01711111111" {
		t.Errorf("profile = %+v", got)
	}
}

func TestProfileSoftDeleteAndRestore(t *testing.T) {
	ps, us := setupProfileTestDB(t)

	u, _ := us.Create("rahim", "hash", false)
	if _, err := ps.Create(u.ID, "Rahim", "017", "addr"); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	if err := ps.SoftDelete(u.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	active, err := ps.List(false)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active profiles = %d, want 0", len(active))
	}
	trash, err := ps.List(true)
	if err != nil {
		t.Fatalf("list trash: %v", err)
	}
	if len(trash) != 1 {
		t.Fatalf("trashed profiles = %d, want 1", len(trash))
	}
	if trash[0].DeletedAt == nil {
		t.Error("deleted_at not stamped")
	}

	if err := ps.Restore(u.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	active, _ = ps.List(false)
	if len(active) != 1 {
		t.Errorf("active after restore = %d, want 1", len(active))
	}
	if active[0].DeletedAt != nil {
		t.Error("deleted_at still set after restore")
	}
}

func TestProfileSoftDeleteMissing(t *testing.T) {
	ps, _ := setupProfileTestDB(t)

	if err := ps.SoftDelete(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("soft delete missing: %v, want ErrNotFound", err)
	}
	if err := ps.Restore(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("restore missing: %v, want ErrNotFound", err)
	}
}

func TestProfileDisplayNamesFallback(t *testing.T) {
	ps, us := setupProfileTestDB(t)

	named, _ := us.Create("rahim", "hash", false)
	ps.Create(named.ID, "Rahim Uddin", "017", "addr")

	unnamed, _ := us.Create("karim", "hash", false)
	ps.Create(unnamed.ID, "", "018", "addr")

	names, err := ps.DisplayNames()
	if err != nil {
		t.Fatalf("display names: %v", err)
	}
	if names[named.ID] != "Rahim Uddin" {
		t.Errorf("names[%d] = %q, want full name", named.ID, names[named.ID])
	}
	if names[unnamed.ID] != "karim" {
		t.Errorf("names[%d] = %q, want username fallback", unnamed.ID, names[unnamed.ID])
	}
}

func TestProfileSetDeliveryPath(t *testing.T) {
	ps, us := setupProfileTestDB(t)

	u, _ := us.Create("rahim", "hash", false)
	ps.Create(u.ID, "Rahim", "017", "addr")

	got, err := ps.SetDeliveryPath(u.ID, "Mirpur", "10", "Green Tower", "4", "4B")
	if err != nil {
		t.Fatalf("set delivery path: %v", err)
	}
	want := "Area: Mirpur, Section: 10, Building: Green Tower, Floor: 4, Room: 4B"
	if got.DeliveryPath() != want {
		t.Errorf("delivery path = %q, want %q", got.DeliveryPath(), want)
	}
}
