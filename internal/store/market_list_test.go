package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/easyshopbd/easyshop/internal/database"
	"github.com/easyshopbd/easyshop/internal/list"
)

func setupListTestDB(t *testing.T) (*MarketListStore, *UserStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewMarketListStore(db), NewUserStore(db)
}

func createFamily(t *testing.T, us *UserStore, username string) int64 {
	t.Helper()
	u, err := us.Create(username, "hash", false)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u.ID
}

func TestMarketListCreate(t *testing.T) {
	ls, us := setupListTestDB(t)
	owner := createFamily(t, us, "rahim")

	ml, err := ls.Create(owner, "  Milk\n\nRice  \nMilk\n")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	if ml.Content != "Milk\nRice\nMilk" {
		t.Errorf("content = %q", ml.Content)
	}
	if ml.OrganizedContent != "১. Milk\n২. Rice" {
		t.Errorf("organized = %q", ml.OrganizedContent)
	}
	if ml.Status != string(list.StatusApproved) {
		t.Errorf("status = %q, want approved", ml.Status)
	}
	if ml.ApprovedAt == nil {
		t.Error("approved_at not stamped on creation")
	}
	if want := fmt.Sprintf("Pack-%d", ml.ID); ml.DisplayCode != want {
		t.Errorf("display_code = %q, want %q", ml.DisplayCode, want)
	}
}

func TestMarketListDisplayCodeStable(t *testing.T) {
	ls, us := setupListTestDB(t)
	owner := createFamily(t, us, "rahim")

	ml, err := ls.Create(owner, "Milk")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	code := ml.DisplayCode

	if _, err := ls.Update(ml.ID, owner, false, "Milk\nRice"); err != nil {
		t.Fatalf("update list: %v", err)
	}
	if _, err := ls.Transition(ml.ID, list.StatusDelivered); err != nil {
		t.Fatalf("transition: %v", err)
	}

	got, err := ls.GetByID(ml.ID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if got.DisplayCode != code {
		t.Errorf("display_code changed: %q -> %q", code, got.DisplayCode)
	}
}

func TestMarketListUpdateAccess(t *testing.T) {
	ls, us := setupListTestDB(t)
	owner := createFamily(t, us, "rahim")
	other := createFamily(t, us, "karim")

	ml, err := ls.Create(owner, "Milk")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	if _, err := ls.Update(ml.ID, other, false, "Rice"); !errors.Is(err, ErrForbidden) {
		t.Errorf("update by non-owner: %v, want ErrForbidden", err)
	}
	if _, err := ls.Update(9999, owner, false, "Rice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing list: %v, want ErrNotFound", err)
	}

	if _, err := ls.Transition(ml.ID, list.StatusDelivered); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if _, err := ls.Update(ml.ID, owner, false, "Rice"); !errors.Is(err, ErrNotMutable) {
		t.Errorf("update delivered list: %v, want ErrNotMutable", err)
	}
}

func TestMarketListUpdateReorganizes(t *testing.T) {
	ls, us := setupListTestDB(t)
	owner := createFamily(t, us, "rahim")

	ml, err := ls.Create(owner, "Milk")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	got, err := ls.Update(ml.ID, owner, false, "Eggs\nSalt\neggs")
	if err != nil {
		t.Fatalf("update list: %v", err)
	}
	if got.OrganizedContent != "১. Eggs\n২. Salt" {
		t.Errorf("organized = %q", got.OrganizedContent)
	}
}

func TestMarketListTransitionLifecycle(t *testing.T) {
	ls, us := setupListTestDB(t)
	owner := createFamily(t, us, "rahim")

	ml, err := ls.Create(owner, "Milk")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	got, err := ls.Transition(ml.ID, list.StatusDelivered)
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if got.Status != string(list.StatusDelivered) || got.DeliveredAt == nil {
		t.Errorf("after deliver: status=%q delivered_at=%v", got.Status, got.DeliveredAt)
	}

	// Restore clears the delivery stamp and re-stamps approval.
	got, err = ls.Transition(ml.ID, list.StatusApproved)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got.Status != string(list.StatusApproved) {
		t.Errorf("after restore: status = %q", got.Status)
	}
	if got.DeliveredAt != nil {
		t.Errorf("after restore: delivered_at = %v, want nil", got.DeliveredAt)
	}
	if got.ApprovedAt == nil {
		t.Error("after restore: approved_at missing")
	}
}

func TestMarketListTransitionIllegalIsNoop(t *testing.T) {
	ls, us := setupListTestDB(t)
	owner := createFamily(t, us, "rahim")

	ml, err := ls.Create(owner, "Milk")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if _, err := ls.Transition(ml.ID, list.StatusDeclined); err != nil {
		t.Fatalf("decline: %v", err)
	}

	// declined -> delivered is not in the lifecycle; record comes back
	// unchanged with no error.
	got, err := ls.Transition(ml.ID, list.StatusDelivered)
	if err != nil {
		t.Fatalf("illegal transition: %v", err)
	}
	if got.Status != string(list.StatusDeclined) {
		t.Errorf("status = %q, want declined", got.Status)
	}
	if got.DeliveredAt != nil {
		t.Errorf("delivered_at = %v, want nil", got.DeliveredAt)
	}
}

func TestMarketListTransitionMissing(t *testing.T) {
	ls, _ := setupListTestDB(t)

	if _, err := ls.Transition(42, list.StatusApproved); !errors.Is(err, ErrNotFound) {
		t.Errorf("transition missing list: %v, want ErrNotFound", err)
	}
}

func TestMarketListAdminEdit(t *testing.T) {
	ls, us := setupListTestDB(t)
	owner := createFamily(t, us, "rahim")

	ml, err := ls.Create(owner, "Milk")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if _, err := ls.Transition(ml.ID, list.StatusDelivered); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	// Staff can still edit after delivery.
	got, err := ls.AdminEdit(ml.ID, "Rice\nSalt", "replaced by staff")
	if err != nil {
		t.Fatalf("admin edit: %v", err)
	}
	if got.Content != "Rice\nSalt" {
		t.Errorf("content = %q", got.Content)
	}
	if got.OrganizedContent != "১. Rice\n২. Salt" {
		t.Errorf("organized = %q", got.OrganizedContent)
	}
	if got.Note != "replaced by staff" {
		t.Errorf("note = %q", got.Note)
	}
}

func TestMarketListDelete(t *testing.T) {
	ls, us := setupListTestDB(t)
	owner := createFamily(t, us, "rahim")
	other := createFamily(t, us, "karim")

	ml, err := ls.Create(owner, "Milk")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	if err := ls.Delete(ml.ID, other, false); !errors.Is(err, ErrForbidden) {
		t.Errorf("delete by non-owner: %v, want ErrForbidden", err)
	}
	if err := ls.Delete(ml.ID, owner, false); err != nil {
		t.Fatalf("delete by owner: %v", err)
	}
	got, err := ls.GetByID(ml.ID)
	if err != nil {
		t.Fatalf("get deleted: %v", err)
	}
	if got != nil {
		t.Error("list still present after delete")
	}
}

func TestMarketListCountByStatus(t *testing.T) {
	ls, us := setupListTestDB(t)
	owner := createFamily(t, us, "rahim")

	a, _ := ls.Create(owner, "Milk")
	ls.Create(owner, "Rice")
	if _, err := ls.Transition(a.ID, list.StatusDelivered); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	counts, err := ls.CountByStatus()
	if err != nil {
		t.Fatalf("count by status: %v", err)
	}
	if counts["approved"] != 1 || counts["delivered"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestMarketListSetNoteForActive(t *testing.T) {
	ls, us := setupListTestDB(t)
	owner := createFamily(t, us, "rahim")

	a, _ := ls.Create(owner, "Milk")
	ls.Create(owner, "Rice")
	if _, err := ls.Transition(a.ID, list.StatusDeclined); err != nil {
		t.Fatalf("decline: %v", err)
	}

	n, err := ls.SetNoteForActive("shop closed Friday")
	if err != nil {
		t.Fatalf("bulk note: %v", err)
	}
	if n != 1 {
		t.Errorf("updated %d rows, want 1", n)
	}

	declined, _ := ls.GetByID(a.ID)
	if declined.Note != "" {
		t.Errorf("declined list note = %q, want untouched", declined.Note)
	}
}

func TestMarketListListByDateRange(t *testing.T) {
	ls, us := setupListTestDB(t)
	owner := createFamily(t, us, "rahim")

	if _, err := ls.Create(owner, "Milk"); err != nil {
		t.Fatalf("create list: %v", err)
	}

	now := time.Now().UTC()
	got, err := ls.ListByDateRange(now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("list by date range: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d lists in range, want 1", len(got))
	}

	got, err = ls.ListByDateRange(now.Add(time.Hour), now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("list by date range: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d lists outside range, want 0", len(got))
	}
}
