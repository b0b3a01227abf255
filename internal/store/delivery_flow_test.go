package store

import (
	"testing"

	"github.com/easyshopbd/easyshop/internal/database"
	"github.com/easyshopbd/easyshop/internal/model"
)

func setupFlowTestDB(t *testing.T) *DeliveryFlowStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewDeliveryFlowStore(db)
}

func TestDeliveryFlowReplaceAll(t *testing.T) {
	fs := setupFlowTestDB(t)

	err := fs.ReplaceAll([]model.DeliveryFlow{
		{Label: "Morning", StartTime: "07:00", EndTime: "09:00", StatusText: "Shopping"},
		{Label: "Midday", StartTime: "09:01", EndTime: "12:00"},
	})
	if err != nil {
		t.Fatalf("replace flows: %v", err)
	}

	flows, err := fs.List()
	if err != nil {
		t.Fatalf("list flows: %v", err)
	}
	if len(flows) != 2 {
		t.Fatalf("got %d flows, want 2", len(flows))
	}
	if flows[0].Label != "Morning" || flows[0].SortOrder != 0 {
		t.Errorf("first flow = %+v", flows[0])
	}
	if flows[1].StatusText != "Approved" {
		t.Errorf("empty status_text = %q, want default Approved", flows[1].StatusText)
	}
}

func TestDeliveryFlowReplaceAllSwapsWholeSet(t *testing.T) {
	fs := setupFlowTestDB(t)

	if err := fs.ReplaceAll([]model.DeliveryFlow{
		{Label: "Old", StartTime: "07:00", EndTime: "09:00"},
	}); err != nil {
		t.Fatalf("seed flows: %v", err)
	}
	if err := fs.ReplaceAll([]model.DeliveryFlow{
		{Label: "New A", StartTime: "06:00", EndTime: "08:00"},
		{Label: "New B", StartTime: "08:01", EndTime: "10:00"},
	}); err != nil {
		t.Fatalf("replace flows: %v", err)
	}

	flows, err := fs.List()
	if err != nil {
		t.Fatalf("list flows: %v", err)
	}
	if len(flows) != 2 {
		t.Fatalf("got %d flows, want 2", len(flows))
	}
	for _, f := range flows {
		if f.Label == "Old" {
			t.Error("old rule survived the replace")
		}
	}
}

func TestDeliveryFlowReplaceAllEmpty(t *testing.T) {
	fs := setupFlowTestDB(t)

	if err := fs.ReplaceAll([]model.DeliveryFlow{
		{Label: "Only", StartTime: "07:00", EndTime: "09:00"},
	}); err != nil {
		t.Fatalf("seed flows: %v", err)
	}
	if err := fs.ReplaceAll(nil); err != nil {
		t.Fatalf("clear flows: %v", err)
	}

	flows, err := fs.List()
	if err != nil {
		t.Fatalf("list flows: %v", err)
	}
	if len(flows) != 0 {
		t.Errorf("got %d flows, want 0", len(flows))
	}
}
