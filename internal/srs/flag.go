package srs

import (
	"fmt"
	"strings"
)

// Flag marks an item as belonging to a content category. Specialized study
// modes build their candidate pool from one flag.
type Flag string

const (
	FlagIdiom         Flag = "idiom"
	FlagPhrasalVerb   Flag = "phrasal_verb"
	FlagCollocation   Flag = "collocation"
	FlagPronunciation Flag = "pronunciation"
	FlagFocus         Flag = "focus" // user-curated focus list
)

// KnownFlags lists every flag in display order.
var KnownFlags = []Flag{FlagIdiom, FlagPhrasalVerb, FlagCollocation, FlagPronunciation, FlagFocus}

// ParseFlag validates a flag name. Hyphens are accepted in place of
// underscores so "phrasal-verb" works on the command line.
func ParseFlag(s string) (Flag, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, f := range KnownFlags {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFlag, s)
}
