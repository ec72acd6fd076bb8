package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/logger"
	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
)

var itemColumns = []string{
	"id",
	"owner_id",
	"content",
	"flags",
	"next_review_at",
	"interval_days",
	"ease_factor",
	"consecutive_correct",
	"forgot_count",
	"last_review_at",
	"created_at",
	"updated_at",
}

// itemRow is the persisted form of srs.Item. Timestamps are unix
// milliseconds; content is JSON; flags are denormalized as ",a,b," so a
// LIKE match finds whole flag names.
type itemRow struct {
	ID                 string        `db:"id"`
	OwnerID            string        `db:"owner_id"`
	Content            string        `db:"content"`
	Flags              string        `db:"flags"`
	NextReviewAt       int64         `db:"next_review_at"`
	IntervalDays       int           `db:"interval_days"`
	EaseFactor         float64       `db:"ease_factor"`
	ConsecutiveCorrect int           `db:"consecutive_correct"`
	ForgotCount        int           `db:"forgot_count"`
	LastReviewAt       sql.NullInt64 `db:"last_review_at"`
	CreatedAt          int64         `db:"created_at"`
	UpdatedAt          int64         `db:"updated_at"`
}

func toRow(it srs.Item) (itemRow, error) {
	content, err := json.Marshal(it.Content)
	if err != nil {
		return itemRow{}, fmt.Errorf("marshal content: %w", err)
	}
	row := itemRow{
		ID:                 it.ID,
		OwnerID:            it.OwnerID,
		Content:            string(content),
		Flags:              encodeFlags(it.Content.Flags),
		NextReviewAt:       it.NextReviewAt.UnixMilli(),
		IntervalDays:       it.IntervalDays,
		EaseFactor:         it.EaseFactor,
		ConsecutiveCorrect: it.ConsecutiveCorrect,
		ForgotCount:        it.ForgotCount,
		CreatedAt:          it.CreatedAt.UnixMilli(),
		UpdatedAt:          it.UpdatedAt.UnixMilli(),
	}
	if it.LastReviewAt != nil {
		row.LastReviewAt = sql.NullInt64{Int64: it.LastReviewAt.UnixMilli(), Valid: true}
	}
	return row, nil
}

func (row itemRow) toItem() (srs.Item, error) {
	it := srs.Item{
		ID:                 row.ID,
		OwnerID:            row.OwnerID,
		NextReviewAt:       fromMillis(row.NextReviewAt),
		IntervalDays:       row.IntervalDays,
		EaseFactor:         row.EaseFactor,
		ConsecutiveCorrect: row.ConsecutiveCorrect,
		ForgotCount:        row.ForgotCount,
		CreatedAt:          fromMillis(row.CreatedAt),
		UpdatedAt:          fromMillis(row.UpdatedAt),
	}
	if err := json.Unmarshal([]byte(row.Content), &it.Content); err != nil {
		return srs.Item{}, fmt.Errorf("unmarshal content of %s: %w", row.ID, err)
	}
	if row.LastReviewAt.Valid {
		t := fromMillis(row.LastReviewAt.Int64)
		it.LastReviewAt = &t
	}
	return it, nil
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func encodeFlags(flags []srs.Flag) string {
	if len(flags) == 0 {
		return ""
	}
	parts := make([]string, len(flags))
	for i, f := range flags {
		parts[i] = string(f)
	}
	return "," + strings.Join(parts, ",") + ","
}

type itemRepo struct {
	db      *sqlx.DB
	dialect string
	log     *logger.Logger
}

func (r *itemRepo) selectItems() *entsql.Selector {
	d := entsql.Dialect(r.dialect)
	return d.Select(itemColumns...).From(d.Table(itemsTable))
}

// query runs a built selector and converts the rows.
func (r *itemRepo) query(ctx context.Context, q sqlx.QueryerContext, sel *entsql.Selector) ([]srs.Item, error) {
	query, args := sel.Query()
	var rows []itemRow
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, err
	}
	items := make([]srs.Item, 0, len(rows))
	for _, row := range rows {
		it, err := row.toItem()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (r *itemRepo) Get(ctx context.Context, id string) (*srs.Item, error) {
	return r.get(ctx, r.db, id)
}

func (r *itemRepo) get(ctx context.Context, q sqlx.QueryerContext, id string) (*srs.Item, error) {
	sel := r.selectItems()
	sel.Where(entsql.EQ("id", id)).Limit(1)
	query, args := sel.Query()

	var row itemRow
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	it, err := row.toItem()
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) DueItems(ctx context.Context, ownerID string, before time.Time, limit int) ([]srs.Item, error) {
	sel := r.selectItems()
	sel.Where(entsql.And(
		entsql.EQ("owner_id", ownerID),
		entsql.LTE("next_review_at", before.UnixMilli()),
	)).OrderBy(sel.C("next_review_at"), sel.C("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	items, err := r.query(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query due items: %w", err)
	}
	return items, nil
}

func (r *itemRepo) NewItems(ctx context.Context, ownerID string, limit int) ([]srs.Item, error) {
	sel := r.selectItems()
	sel.Where(entsql.And(
		entsql.EQ("owner_id", ownerID),
		entsql.EQ("consecutive_correct", 0),
	)).OrderBy(entsql.Desc(sel.C("created_at")), sel.C("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	items, err := r.query(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query new items: %w", err)
	}
	return items, nil
}

func (r *itemRepo) ItemsByFlag(ctx context.Context, ownerID string, flag srs.Flag) ([]srs.Item, error) {
	sel := r.selectItems()
	sel.Where(entsql.And(
		entsql.EQ("owner_id", ownerID),
		entsql.Contains("flags", ","+string(flag)+","),
	)).OrderBy(sel.C("next_review_at"), sel.C("id"))
	items, err := r.query(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query items by flag %s: %w", flag, err)
	}
	return items, nil
}

func (r *itemRepo) AllItems(ctx context.Context, ownerID string) ([]srs.Item, error) {
	sel := r.selectItems()
	sel.Where(entsql.EQ("owner_id", ownerID)).OrderBy(sel.C("created_at"), sel.C("id"))
	items, err := r.query(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query all items: %w", err)
	}
	return items, nil
}

func (r *itemRepo) Upsert(ctx context.Context, item srs.Item) error {
	if err := r.upsert(ctx, r.db, item); err != nil {
		return err
	}
	r.log.Debug("item saved", "id", item.ID, "owner", item.OwnerID)
	return nil
}

func (r *itemRepo) upsert(ctx context.Context, e sqlx.ExecerContext, item srs.Item) error {
	row, err := toRow(item)
	if err != nil {
		return err
	}
	query, args := entsql.Dialect(r.dialect).
		Insert(itemsTable).
		Columns(itemColumns...).
		Values(
			row.ID, row.OwnerID, row.Content, row.Flags,
			row.NextReviewAt, row.IntervalDays, row.EaseFactor,
			row.ConsecutiveCorrect, row.ForgotCount, row.LastReviewAt,
			row.CreatedAt, row.UpdatedAt,
		).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := e.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert item %s: %w", item.ID, err)
	}
	return nil
}
