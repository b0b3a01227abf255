package list

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	got := Normalize("  Milk\n\nRice  \n\t\nEggs")
	want := []string{"Milk", "Rice", "Eggs"}
	if len(got) != len(want) {
		t.Fatalf("Normalize = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize("  \n\n\t \n"); got != nil {
		t.Errorf("Normalize(whitespace) = %v, want nil", got)
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	once := NormalizeText("  Milk \n\nRice\n")
	twice := NormalizeText(once)
	if once != twice {
		t.Errorf("NormalizeText not idempotent: %q vs %q", once, twice)
	}
}

func TestBengaliNumber(t *testing.T) {
	cases := map[int]string{
		0:   "০",
		1:   "১",
		9:   "৯",
		10:  "১০",
		42:  "৪২",
		105: "১০৫",
	}
	for n, want := range cases {
		if got := BengaliNumber(n); got != want {
			t.Errorf("BengaliNumber(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestOrganize(t *testing.T) {
	got := Organize("  Milk\n\nRice  \nMilk\n")
	want := "১. Milk\n২. Rice"
	if got != want {
		t.Errorf("Organize = %q, want %q", got, want)
	}
}

func TestOrganizeCaseInsensitiveDedup(t *testing.T) {
	got := Organize("Milk\nmilk\nMILK\nRice")
	want := "১. Milk\n২. Rice"
	if got != want {
		t.Errorf("Organize = %q, want %q", got, want)
	}
}

func TestOrganizeEmpty(t *testing.T) {
	if got := Organize("\n  \n"); got != "" {
		t.Errorf("Organize(blank) = %q, want empty", got)
	}
}

func TestOrganizeBengaliContent(t *testing.T) {
	got := Organize("চাল ৫ কেজি\nডাল\nচাল ৫ কেজি")
	if !strings.HasPrefix(got, "১. চাল ৫ কেজি") {
		t.Errorf("Organize = %q, want first line numbered ১", got)
	}
	if strings.Count(got, "চাল ৫ কেজি") != 1 {
		t.Errorf("Organize = %q, want duplicate removed", got)
	}
}

func TestStripNumberPrefix(t *testing.T) {
	cases := map[string]string{
		"১. Milk":      "Milk",
		"১২. Rice":     "Rice",
		"3. Eggs":      "Eggs",
		"৪।  Salt":     "Salt",
		"Milk":         "Milk",
		"2026 almanac": "2026 almanac",
		"১.":           "১.",
		"":             "",
	}
	for in, want := range cases {
		if got := StripNumberPrefix(in); got != want {
			t.Errorf("StripNumberPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}
