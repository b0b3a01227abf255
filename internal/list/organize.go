package list

import (
	"strings"
	"unicode"
)

var bengaliDigits = [10]rune{'০', '১', '২', '৩', '৪', '৫', '৬', '৭', '৮', '৯'}

// BengaliNumber renders n using Bengali numeral glyphs.
func BengaliNumber(n int) string {
	if n == 0 {
		return string(bengaliDigits[0])
	}
	var b strings.Builder
	if n < 0 {
		b.WriteByte('-')
		n = -n
	}
	var digits []rune
	for n > 0 {
		digits = append(digits, bengaliDigits[n%10])
		n /= 10
	}
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteRune(digits[i])
	}
	return b.String()
}

// Organize produces the machine-generated view of a single list: lines
// deduplicated case-insensitively (first occurrence wins, original casing
// kept) and renumbered with Bengali numerals. Empty input gives "".
func Organize(raw string) string {
	lines := Normalize(raw)
	if len(lines) == 0 {
		return ""
	}

	seen := make(map[string]bool, len(lines))
	var unique []string
	for _, line := range lines {
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, line)
	}

	var b strings.Builder
	for i, line := range unique {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(BengaliNumber(i + 1))
		b.WriteString(". ")
		b.WriteString(line)
	}
	return b.String()
}

// StripNumberPrefix removes a leading "১. " / "12. " style numeral prefix
// so already-organized lines can be renumbered during consolidation.
// Lines without such a prefix come back unchanged.
func StripNumberPrefix(line string) string {
	rest := line
	n := 0
	for _, r := range rest {
		if unicode.IsDigit(r) {
			n += len(string(r))
			continue
		}
		break
	}
	if n == 0 {
		return line
	}
	rest = rest[n:]
	if !strings.HasPrefix(rest, ".") && !strings.HasPrefix(rest, "।") {
		return line
	}
	rest = strings.TrimPrefix(rest, ".")
	rest = strings.TrimPrefix(rest, "।")
	trimmed := strings.TrimLeft(rest, " \t")
	if trimmed == "" {
		return line
	}
	return trimmed
}
