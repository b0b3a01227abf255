package list

import (
	"testing"
	"time"

	"github.com/easyshopbd/easyshop/internal/model"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "approved", "delivered", "declined"} {
		if _, ok := ParseStatus(valid); !ok {
			t.Errorf("ParseStatus(%q) not ok", valid)
		}
	}
	for _, invalid := range []string{"", "Pending", "APPROVED", "shipped"} {
		if _, ok := ParseStatus(invalid); ok {
			t.Errorf("ParseStatus(%q) ok, want not ok", invalid)
		}
	}
}

func TestMutable(t *testing.T) {
	cases := map[Status]bool{
		StatusPending:   true,
		StatusApproved:  true,
		StatusDelivered: false,
		StatusDeclined:  false,
	}
	for status, want := range cases {
		if got := status.Mutable(); got != want {
			t.Errorf("%s.Mutable() = %v, want %v", status, got, want)
		}
	}
}

func TestAllowedTransitions(t *testing.T) {
	legal := []struct {
		from, to Status
	}{
		{StatusPending, StatusApproved},
		{StatusPending, StatusDeclined},
		{StatusApproved, StatusDeclined},
		{StatusApproved, StatusDelivered},
		{StatusApproved, StatusPending},
		{StatusDelivered, StatusApproved},
		{StatusDeclined, StatusApproved},
	}
	isLegal := make(map[[2]Status]bool)
	for _, tc := range legal {
		isLegal[[2]Status{tc.from, tc.to}] = true
		if _, ok := Allowed(tc.from, tc.to); !ok {
			t.Errorf("Allowed(%s, %s) = false, want true", tc.from, tc.to)
		}
	}

	// Everything outside the table is a no-op, including self-transitions.
	all := []Status{StatusPending, StatusApproved, StatusDelivered, StatusDeclined}
	for _, from := range all {
		for _, to := range all {
			if isLegal[[2]Status{from, to}] {
				continue
			}
			if _, ok := Allowed(from, to); ok {
				t.Errorf("Allowed(%s, %s) = true, want false", from, to)
			}
		}
	}
}

func TestApplyStampsTimestamps(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	ml := &model.MarketList{Status: string(StatusPending)}
	if !Apply(ml, StatusApproved, now) {
		t.Fatal("pending -> approved rejected")
	}
	if ml.Status != string(StatusApproved) {
		t.Errorf("status = %s, want approved", ml.Status)
	}
	if ml.ApprovedAt == nil || !ml.ApprovedAt.Equal(now) {
		t.Errorf("ApprovedAt = %v, want %v", ml.ApprovedAt, now)
	}

	later := now.Add(2 * time.Hour)
	if !Apply(ml, StatusDelivered, later) {
		t.Fatal("approved -> delivered rejected")
	}
	if ml.DeliveredAt == nil || !ml.DeliveredAt.Equal(later) {
		t.Errorf("DeliveredAt = %v, want %v", ml.DeliveredAt, later)
	}
	// Approval history is preserved on delivery.
	if ml.ApprovedAt == nil || !ml.ApprovedAt.Equal(now) {
		t.Errorf("ApprovedAt = %v, want unchanged %v", ml.ApprovedAt, now)
	}
}

func TestApplyRestoreClearsOutcome(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	delivered := now.Add(time.Hour)

	ml := &model.MarketList{
		Status:      string(StatusDelivered),
		ApprovedAt:  &now,
		DeliveredAt: &delivered,
	}
	restoreAt := now.Add(3 * time.Hour)
	if !Apply(ml, StatusApproved, restoreAt) {
		t.Fatal("delivered -> approved rejected")
	}
	if ml.Status != string(StatusApproved) {
		t.Errorf("status = %s, want approved", ml.Status)
	}
	if ml.DeliveredAt != nil {
		t.Errorf("DeliveredAt = %v, want nil after restore", ml.DeliveredAt)
	}
	if ml.ApprovedAt == nil || !ml.ApprovedAt.Equal(restoreAt) {
		t.Errorf("ApprovedAt = %v, want restamped %v", ml.ApprovedAt, restoreAt)
	}
}

func TestApplyRevertToPending(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	ml := &model.MarketList{Status: string(StatusApproved), ApprovedAt: &now}

	if !Apply(ml, StatusPending, now.Add(time.Minute)) {
		t.Fatal("approved -> pending rejected")
	}
	if ml.ApprovedAt != nil {
		t.Errorf("ApprovedAt = %v, want nil after revert", ml.ApprovedAt)
	}
}

func TestApplyIllegalLeavesUntouched(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	ml := &model.MarketList{Status: string(StatusPending)}

	if Apply(ml, StatusDelivered, now) {
		t.Fatal("pending -> delivered applied, want no-op")
	}
	if ml.Status != string(StatusPending) {
		t.Errorf("status = %s, want pending", ml.Status)
	}
	if ml.DeliveredAt != nil {
		t.Errorf("DeliveredAt = %v, want nil", ml.DeliveredAt)
	}
}
