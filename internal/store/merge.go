package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
)

// Merge applies incoming items inside one transaction. An unknown id is
// inserted; a known id is replaced only when the incoming copy has a
// strictly newer UpdatedAt. Timestamps compare at millisecond resolution,
// the precision they are stored with.
func (r *itemRepo) Merge(ctx context.Context, incoming []srs.Item) (res MergeResult, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin merge: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, in := range incoming {
		local, getErr := r.get(ctx, tx, in.ID)
		switch {
		case errors.Is(getErr, ErrNotFound):
			if err = r.upsert(ctx, tx, in); err != nil {
				return res, err
			}
			res.Inserted++
		case getErr != nil:
			err = getErr
			return res, err
		case local.OwnerID != in.OwnerID:
			r.log.Warn("merge conflict: id owned by another learner",
				"id", in.ID, "local_owner", local.OwnerID, "incoming_owner", in.OwnerID)
			res.Conflicts++
		case newerThan(in, *local):
			if err = r.upsert(ctx, tx, in); err != nil {
				return res, err
			}
			res.Updated++
		default:
			res.Skipped++
		}
	}

	if err = tx.Commit(); err != nil {
		return res, fmt.Errorf("commit merge: %w", err)
	}
	r.log.Info("merge complete",
		"inserted", res.Inserted, "updated", res.Updated,
		"skipped", res.Skipped, "conflicts", res.Conflicts)
	return res, nil
}

// newerThan reports whether a was written strictly after b.
func newerThan(a, b srs.Item) bool {
	return a.UpdatedAt.UnixMilli() > b.UpdatedAt.UnixMilli()
}
