package domain

import (
	"fmt"
	"strings"
)

// Palette is the cycle of colours handed to new marks and groups.
var Palette = []string{
	"#f4a261",
	"#2a9d8f",
	"#e76f51",
	"#8ab17d",
	"#e9c46a",
	"#6d8fd6",
	"#c77dff",
	"#ef476f",
	"#06d6a0",
	"#118ab2",
}

// PendingColor highlights occurrences of the live, unsaved search.
const PendingColor = "#ffe066"

// ColorFor returns the palette entry for the n-th created item.
func ColorFor(n int) string {
	if n < 0 {
		n = -n
	}
	return Palette[n%len(Palette)]
}

// NormalizeColor validates a #rrggbb colour and lower-cases it.
// A missing leading '#' is added.
func NormalizeColor(s string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(c, "#") {
		c = "#" + c
	}
	if len(c) != 7 {
		return "", fmt.Errorf("colour %q: %w", s, ErrInvalidInput)
	}
	for _, r := range c[1:] {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return "", fmt.Errorf("colour %q: %w", s, ErrInvalidInput)
		}
	}
	return c, nil
}
