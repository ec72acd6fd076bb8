package session

import (
	"strings"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
)

// Filter narrows the candidate pool before selection. The zero Filter
// keeps everything.
type Filter struct {
	Flag     srs.Flag // category; empty means any
	Keywords []string // topic words, matched case-insensitively
	ItemIDs  []string // user-curated subset
}

// IsZero reports whether the filter restricts nothing.
func (f Filter) IsZero() bool {
	return f.Flag == "" && len(f.keywords()) == 0 && len(f.ItemIDs) == 0
}

// Match reports whether it passes every set criterion.
func (f Filter) Match(it srs.Item) bool {
	if f.Flag != "" && !it.Content.HasFlag(f.Flag) {
		return false
	}
	if len(f.ItemIDs) > 0 && !containsString(f.ItemIDs, it.ID) {
		return false
	}
	if kws := f.keywords(); len(kws) > 0 && !matchesKeywords(it.Content, kws) {
		return false
	}
	return true
}

// Apply returns the items that match, preserving order.
func (f Filter) Apply(items []srs.Item) []srs.Item {
	out := make([]srs.Item, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// keywords returns the lowercased non-blank keywords.
func (f Filter) keywords() []string {
	var out []string
	for _, k := range f.Keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// matchesKeywords reports whether any keyword is a substring of the word,
// meaning, example or one of the tags.
func matchesKeywords(c srs.Content, keywords []string) bool {
	fields := make([]string, 0, 3+len(c.Tags))
	fields = append(fields, c.Word, c.Meaning, c.Example)
	fields = append(fields, c.Tags...)
	for _, field := range fields {
		field = strings.ToLower(field)
		for _, k := range keywords {
			if strings.Contains(field, k) {
				return true
			}
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
