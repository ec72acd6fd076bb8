package srs

import (
	"time"

	"github.com/google/uuid"
)

// Content holds the learner-facing fields of an item. The scheduler never
// reads them.
type Content struct {
	Word    string   `json:"word"`
	Meaning string   `json:"meaning"`
	Example string   `json:"example,omitempty"`
	IPA     string   `json:"ipa,omitempty"`
	Notes   string   `json:"notes,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Flags   []Flag   `json:"flags,omitempty"`
}

// HasFlag reports whether the content carries flag f.
func (c Content) HasFlag(f Flag) bool {
	for _, v := range c.Flags {
		if v == f {
			return true
		}
	}
	return false
}

func (c Content) clone() Content {
	out := c
	if c.Tags != nil {
		out.Tags = append([]string(nil), c.Tags...)
	}
	if c.Flags != nil {
		out.Flags = append([]Flag(nil), c.Flags...)
	}
	return out
}

// Item is a single vocabulary entry together with its scheduling state.
type Item struct {
	ID                 string     `json:"id"`
	OwnerID            string     `json:"owner_id"`
	Content            Content    `json:"content"`
	NextReviewAt       time.Time  `json:"next_review_at"`
	IntervalDays       int        `json:"interval_days"`
	EaseFactor         float64    `json:"ease_factor"`
	ConsecutiveCorrect int        `json:"consecutive_correct"`
	ForgotCount        int        `json:"forgot_count"`
	LastReviewAt       *time.Time `json:"last_review_at"` // nil before first review.
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// NewItem creates an item for ownerID that is due immediately.
func NewItem(ownerID string, content Content, now time.Time) Item {
	return Item{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Content:      content.clone(),
		NextReviewAt: now,
		EaseFactor:   DefaultEase,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ResetProgress returns a copy of item with its scheduling state restored
// to creation-time defaults. Identity, content and CreatedAt are kept.
func ResetProgress(item Item, now time.Time) Item {
	c := item.clone()
	c.NextReviewAt = now
	c.IntervalDays = 0
	c.EaseFactor = DefaultEase
	c.ConsecutiveCorrect = 0
	c.ForgotCount = 0
	c.LastReviewAt = nil
	c.UpdatedAt = now
	return c
}

// clone returns a deep copy. Pointer and slice fields are copied by value.
func (it Item) clone() Item {
	out := it
	out.Content = it.Content.clone()
	if it.LastReviewAt != nil {
		v := *it.LastReviewAt
		out.LastReviewAt = &v
	}
	return out
}

// IsDue reports whether the item's review time has passed (at or after NextReviewAt).
func (it Item) IsDue(now time.Time) bool {
	return !now.Before(it.NextReviewAt)
}

// IsNew reports whether the item is outside a successful streak, either
// because it was never graded or because it was last graded Forgot.
func (it Item) IsNew() bool {
	return it.ConsecutiveCorrect == 0
}

// OverdueDays returns how many days past due the item is. Returns 0 if not yet due.
func (it Item) OverdueDays(now time.Time) float64 {
	if now.Before(it.NextReviewAt) {
		return 0
	}
	return now.Sub(it.NextReviewAt).Hours() / 24.0
}

// IsLeech reports whether the item has been forgotten at least threshold
// times. A non-positive threshold disables the check.
func IsLeech(it Item, threshold int) bool {
	return threshold > 0 && it.ForgotCount >= threshold
}

// Status classifies an item for selection at a point in time.
type Status string

const (
	StatusDue       Status = "due"
	StatusNew       Status = "new"
	StatusScheduled Status = "scheduled"
)

// Status returns the item's tier. Due wins over new, so a forgotten item
// waiting out its relearn delay is new until the delay passes.
func (it Item) Status(now time.Time) Status {
	switch {
	case it.IsDue(now):
		return StatusDue
	case it.IsNew():
		return StatusNew
	default:
		return StatusScheduled
	}
}
