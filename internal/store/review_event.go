package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
)

type reviewRow struct {
	ID           string  `db:"id"`
	ItemID       string  `db:"item_id"`
	OwnerID      string  `db:"owner_id"`
	Grade        string  `db:"grade"`
	IntervalDays int     `db:"interval_days"`
	EaseFactor   float64 `db:"ease_factor"`
	ReviewedAt   int64   `db:"reviewed_at"`
}

type reviewRepo struct {
	db      *sqlx.DB
	dialect string
}

func (r *reviewRepo) AppendReview(ctx context.Context, ev ReviewEvent) error {
	if !ev.Grade.IsValid() {
		return fmt.Errorf("append review: %w: %d", srs.ErrInvalidGrade, ev.Grade)
	}
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}

	query, args := entsql.Dialect(r.dialect).
		Insert(reviewEventsTable).
		Columns("id", "item_id", "owner_id", "grade", "interval_days", "ease_factor", "reviewed_at").
		Values(ev.ID, ev.ItemID, ev.OwnerID, ev.Grade.String(), ev.IntervalDays, ev.EaseFactor, ev.ReviewedAt.UnixMilli()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save review event: %w", err)
	}
	return nil
}

func (r *reviewRepo) ReviewsSince(ctx context.Context, ownerID string, since time.Time) ([]ReviewEvent, error) {
	d := entsql.Dialect(r.dialect)
	sel := d.Select("id", "item_id", "owner_id", "grade", "interval_days", "ease_factor", "reviewed_at").
		From(d.Table(reviewEventsTable))
	sel.Where(entsql.And(
		entsql.EQ("owner_id", ownerID),
		entsql.GTE("reviewed_at", since.UnixMilli()),
	)).OrderBy(sel.C("reviewed_at"), sel.C("id"))
	query, args := sel.Query()

	var rows []reviewRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query review events: %w", err)
	}

	events := make([]ReviewEvent, 0, len(rows))
	for _, row := range rows {
		g, err := srs.ParseGrade(row.Grade)
		if err != nil {
			return nil, fmt.Errorf("review event %s: %w", row.ID, err)
		}
		events = append(events, ReviewEvent{
			ID:           row.ID,
			ItemID:       row.ItemID,
			OwnerID:      row.OwnerID,
			Grade:        g,
			IntervalDays: row.IntervalDays,
			EaseFactor:   row.EaseFactor,
			ReviewedAt:   fromMillis(row.ReviewedAt),
		})
	}
	return events, nil
}
