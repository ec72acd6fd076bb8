package session

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/logger"
	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
	"github.com/son-ta-minh/ielts-pro-sub004/internal/store"
)

// Options controls how a session is assembled.
type Options struct {
	Limit    int // max items per session; defaults to DefaultLimit
	NewLimit int // max new items when nothing is due; defaults to DefaultNewLimit
	Filter   Filter
	Mode     Mode
}

func (o Options) withDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.NewLimit <= 0 {
		o.NewLimit = DefaultNewLimit
	}
	return o
}

// Assembler builds study sessions from the item store.
// It is not safe for concurrent use when sharing a seeded rng.
type Assembler struct {
	items store.ItemRepo
	rng   *rand.Rand
	log   *logger.Logger
}

// NewAssembler creates an Assembler. A nil rng uses a time-seeded source.
func NewAssembler(items store.ItemRepo, rng *rand.Rand, log *logger.Logger) *Assembler {
	if rng == nil {
		rng = newRand()
	}
	return &Assembler{
		items: items,
		rng:   rng,
		log:   logger.OrNop(log).With("component", "assembler"),
	}
}

// Assemble returns the items ownerID should study at now.
//
// With no filter, due items are shuffled and truncated to Limit; when none
// are due the newest unlearned items are served instead, up to NewLimit.
// A filter narrows the pool first and the same fallback runs in memory.
// ModeSmart fills the session tier by tier via SmartPick.
func (a *Assembler) Assemble(ctx context.Context, ownerID string, opts Options, now time.Time) (*Plan, error) {
	opts = opts.withDefaults()
	plan := &Plan{OwnerID: ownerID, Source: SourceNone, AssembledAt: now}

	switch {
	case opts.Mode == ModeSmart:
		pool, err := a.pool(ctx, ownerID, opts.Filter)
		if err != nil {
			return nil, err
		}
		plan.Items = SmartPick(pool, opts.Limit, now, a.rng)
		plan.Source = SourceSmart

	case opts.Filter.IsZero():
		if err := a.fromStore(ctx, plan, opts, now); err != nil {
			return nil, err
		}

	default:
		pool, err := a.pool(ctx, ownerID, opts.Filter)
		if err != nil {
			return nil, err
		}
		a.fromPool(plan, pool, opts, now)
	}

	if len(plan.Items) == 0 {
		plan.Items = nil
		plan.Source = SourceNone
	}
	a.log.Debug("session assembled",
		"owner", ownerID, "source", string(plan.Source), "items", len(plan.Items))
	return plan, nil
}

// fromStore runs the due/new fallback against store queries.
func (a *Assembler) fromStore(ctx context.Context, plan *Plan, opts Options, now time.Time) error {
	due, err := a.items.DueItems(ctx, plan.OwnerID, now, 0)
	if err != nil {
		return fmt.Errorf("load due items: %w", err)
	}
	due = ownedBy(plan.OwnerID, due)
	if len(due) > 0 {
		Shuffle(due, a.rng)
		plan.Items = truncate(due, opts.Limit)
		plan.Source = SourceDue
		return nil
	}

	fresh, err := a.items.NewItems(ctx, plan.OwnerID, opts.NewLimit)
	if err != nil {
		return fmt.Errorf("load new items: %w", err)
	}
	fresh = ownedBy(plan.OwnerID, fresh)
	plan.Items = truncate(fresh, min(opts.NewLimit, opts.Limit))
	plan.Source = SourceNew
	return nil
}

// fromPool runs the due/new fallback over an already loaded pool.
func (a *Assembler) fromPool(plan *Plan, pool []srs.Item, opts Options, now time.Time) {
	var due, fresh []srs.Item
	for _, it := range pool {
		switch {
		case it.IsDue(now):
			due = append(due, it)
		case it.IsNew():
			fresh = append(fresh, it)
		}
	}

	if len(due) > 0 {
		Shuffle(due, a.rng)
		plan.Items = truncate(due, opts.Limit)
		plan.Source = SourceDue
		return
	}

	sortNewestFirst(fresh)
	plan.Items = truncate(fresh, min(opts.NewLimit, opts.Limit))
	plan.Source = SourceNew
}

// pool loads ownerID's candidates narrowed by f.
func (a *Assembler) pool(ctx context.Context, ownerID string, f Filter) ([]srs.Item, error) {
	var (
		items []srs.Item
		err   error
	)
	if f.Flag != "" {
		items, err = a.items.ItemsByFlag(ctx, ownerID, f.Flag)
	} else {
		items, err = a.items.AllItems(ctx, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("load candidate pool: %w", err)
	}
	return f.Apply(ownedBy(ownerID, items)), nil
}

// ownedBy drops items that belong to anyone but ownerID.
func ownedBy(ownerID string, items []srs.Item) []srs.Item {
	out := make([]srs.Item, 0, len(items))
	for _, it := range items {
		if it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	return out
}

func sortNewestFirst(items []srs.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}

func truncate(items []srs.Item, n int) []srs.Item {
	if len(items) > n {
		return items[:n]
	}
	return items
}
