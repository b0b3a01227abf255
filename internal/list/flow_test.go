package list

import (
	"testing"
	"time"

	"github.com/easyshopbd/easyshop/internal/model"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := map[string]TimeOfDay{
		"00:00": 0,
		"07:30": 450,
		"23:59": 1439,
	}
	for in, want := range cases {
		got, err := ParseTimeOfDay(in)
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", in, got, want)
		}
	}

	for _, bad := range []string{"", "24:00", "12:60", "noon", "-1:30"} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Errorf("ParseTimeOfDay(%q) succeeded, want error", bad)
		}
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{Start: 450, End: 540} // 07:30 - 09:00

	if !w.Contains(450) || !w.Contains(540) {
		t.Error("window bounds should be inclusive")
	}
	if w.Contains(449) || w.Contains(541) {
		t.Error("window matched outside its bounds")
	}
}

func TestWindowOvernightNeverMatches(t *testing.T) {
	w := Window{Start: 1380, End: 120} // 23:00 - 02:00
	for _, tod := range []TimeOfDay{0, 60, 1380, 1439} {
		if w.Contains(tod) {
			t.Errorf("overnight window matched %v", tod)
		}
	}
}

func tagRules() []model.DeliveryFlow {
	return []model.DeliveryFlow{
		{StartTime: "07:00", EndTime: "09:00", StatusText: "Approved"},
		{StartTime: "09:01", EndTime: "12:00", StatusText: "Shopping"},
	}
}

func TestTagFirstMatch(t *testing.T) {
	loc := time.UTC

	created := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)
	tag, ok := Tag(created, loc, tagRules())
	if !ok || tag != "Approved" {
		t.Errorf("Tag(07:30) = %q, %v; want Approved, true", tag, ok)
	}

	created = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	if tag, ok := Tag(created, loc, tagRules()); ok {
		t.Errorf("Tag(14:00) = %q, want no match", tag)
	}
}

func TestTagOverlapPrefersEarlierRule(t *testing.T) {
	rules := []model.DeliveryFlow{
		{StartTime: "07:00", EndTime: "12:00", StatusText: "First"},
		{StartTime: "08:00", EndTime: "10:00", StatusText: "Second"},
	}
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tag, ok := Tag(created, time.UTC, rules)
	if !ok || tag != "First" {
		t.Errorf("Tag = %q, %v; want First, true", tag, ok)
	}
}

func TestTagUsesLocationTime(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Dhaka")
	if err != nil {
		t.Fatal(err)
	}

	// 02:00 UTC is 08:00 in Dhaka.
	created := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)
	tag, ok := Tag(created, loc, tagRules())
	if !ok || tag != "Approved" {
		t.Errorf("Tag(02:00 UTC in Dhaka) = %q, %v; want Approved, true", tag, ok)
	}
}

func TestTagSkipsMalformedRules(t *testing.T) {
	rules := []model.DeliveryFlow{
		{StartTime: "bad", EndTime: "09:00", StatusText: "Broken"},
		{StartTime: "07:00", EndTime: "09:00", StatusText: "Approved"},
	}
	created := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	tag, ok := Tag(created, time.UTC, rules)
	if !ok || tag != "Approved" {
		t.Errorf("Tag = %q, %v; want Approved, true", tag, ok)
	}
}
