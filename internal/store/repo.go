package store

import (
	"context"
	"errors"
	"time"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// ItemRepo is the item store consumed by the session assembler and reviewer.
type ItemRepo interface {
	// Get returns the item with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*srs.Item, error)

	// DueItems returns ownerID's items with NextReviewAt <= before, most
	// overdue first. A non-positive limit returns all of them.
	DueItems(ctx context.Context, ownerID string, before time.Time, limit int) ([]srs.Item, error)

	// NewItems returns ownerID's items with ConsecutiveCorrect == 0,
	// newest created first. A non-positive limit returns all of them.
	NewItems(ctx context.Context, ownerID string, limit int) ([]srs.Item, error)

	// ItemsByFlag returns ownerID's items carrying flag.
	ItemsByFlag(ctx context.Context, ownerID string, flag srs.Flag) ([]srs.Item, error)

	// AllItems returns every item owned by ownerID.
	AllItems(ctx context.Context, ownerID string) ([]srs.Item, error)

	// Upsert inserts or fully replaces an item.
	Upsert(ctx context.Context, item srs.Item) error

	// Merge applies incoming items with last-write-wins on UpdatedAt.
	Merge(ctx context.Context, incoming []srs.Item) (MergeResult, error)
}

// MergeResult counts what Merge did with each incoming item.
type MergeResult struct {
	Inserted  int // unknown locally
	Updated   int // strictly newer than the local copy
	Skipped   int // same age or older than the local copy
	Conflicts int // id already used by another owner
}

// ReviewEvent records one grading of an item.
type ReviewEvent struct {
	ID           string
	ItemID       string
	OwnerID      string
	Grade        srs.Grade
	IntervalDays int
	EaseFactor   float64
	ReviewedAt   time.Time
}

// ReviewRepo is the append-only review log.
type ReviewRepo interface {
	// AppendReview records a review event. An empty ID is generated.
	AppendReview(ctx context.Context, ev ReviewEvent) error

	// ReviewsSince returns ownerID's review events at or after since, oldest first.
	ReviewsSince(ctx context.Context, ownerID string, since time.Time) ([]ReviewEvent, error)
}
