package list

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize splits raw submission text into trimmed, non-empty lines in
// their original order. Lines are NFC-normalized so visually identical
// Bengali input compares equal later. No deduplication happens here.
// Normalize(NormalizeText(x)) always equals Normalize(x).
func Normalize(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(norm.NFC.String(line))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// NormalizeText is Normalize with the lines rejoined, the canonical form
// persisted as list content.
func NormalizeText(raw string) string {
	return strings.Join(Normalize(raw), "\n")
}
