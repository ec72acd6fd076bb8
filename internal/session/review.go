package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/logger"
	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
	"github.com/son-ta-minh/ielts-pro-sub004/internal/store"
)

// ErrNotOwner is returned when an item exists but belongs to another owner.
var ErrNotOwner = errors.New("session: item belongs to another owner")

// Reviewer applies grades and resets to stored items.
type Reviewer struct {
	items   store.ItemRepo
	reviews store.ReviewRepo // optional
	log     *logger.Logger
}

// NewReviewer creates a Reviewer. reviews may be nil, in which case
// gradings are not logged.
func NewReviewer(items store.ItemRepo, reviews store.ReviewRepo, log *logger.Logger) *Reviewer {
	return &Reviewer{
		items:   items,
		reviews: reviews,
		log:     logger.OrNop(log).With("component", "reviewer"),
	}
}

// Grade schedules item itemID with grade at now, persists the result and
// records the review. Once the item is saved Grade succeeds, even if the
// review log cannot be written.
func (r *Reviewer) Grade(ctx context.Context, ownerID, itemID string, grade srs.Grade, now time.Time) (srs.Item, error) {
	if !grade.IsValid() {
		return srs.Item{}, fmt.Errorf("grade item: %w: %d", srs.ErrInvalidGrade, grade)
	}
	it, err := r.load(ctx, ownerID, itemID)
	if err != nil {
		return srs.Item{}, err
	}

	next := srs.Schedule(*it, grade, now)
	if err := r.items.Upsert(ctx, next); err != nil {
		return srs.Item{}, fmt.Errorf("save graded item: %w", err)
	}

	if r.reviews != nil {
		err := r.reviews.AppendReview(ctx, store.ReviewEvent{
			ItemID:       next.ID,
			OwnerID:      next.OwnerID,
			Grade:        grade,
			IntervalDays: next.IntervalDays,
			EaseFactor:   next.EaseFactor,
			ReviewedAt:   now,
		})
		if err != nil {
			// The grade is saved; a review-log failure is logged, not returned.
			r.log.Error("record review failed", "id", next.ID, "error", err)
		}
	}

	r.log.Info("item graded",
		"id", next.ID, "grade", grade.String(),
		"interval_days", next.IntervalDays, "ease", next.EaseFactor,
		"next_review_at", next.NextReviewAt)
	return next, nil
}

// Reset restores item itemID's scheduling state to creation defaults.
func (r *Reviewer) Reset(ctx context.Context, ownerID, itemID string, now time.Time) (srs.Item, error) {
	it, err := r.load(ctx, ownerID, itemID)
	if err != nil {
		return srs.Item{}, err
	}

	reset := srs.ResetProgress(*it, now)
	if err := r.items.Upsert(ctx, reset); err != nil {
		return srs.Item{}, fmt.Errorf("save reset item: %w", err)
	}
	r.log.Info("item reset", "id", reset.ID)
	return reset, nil
}

func (r *Reviewer) load(ctx context.Context, ownerID, itemID string) (*srs.Item, error) {
	it, err := r.items.Get(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("load item %s: %w", itemID, err)
	}
	if it.OwnerID != ownerID {
		return nil, fmt.Errorf("load item %s: %w", itemID, ErrNotOwner)
	}
	return it, nil
}
