package session

import (
	"math/rand"
	"time"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
)

// SmartPick selects up to n items from pool, preferring due items, then
// new items, then scheduled ones. Each tier is shuffled on its own, so
// order within a tier is random while tier order is fixed. The pool is
// not modified.
func SmartPick(pool []srs.Item, n int, now time.Time, rng *rand.Rand) []srs.Item {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	if rng == nil {
		rng = newRand()
	}

	var due, fresh, scheduled []srs.Item
	for _, it := range pool {
		switch it.Status(now) {
		case srs.StatusDue:
			due = append(due, it)
		case srs.StatusNew:
			fresh = append(fresh, it)
		default:
			scheduled = append(scheduled, it)
		}
	}

	out := make([]srs.Item, 0, min(n, len(pool)))
	for _, tier := range [][]srs.Item{due, fresh, scheduled} {
		Shuffle(tier, rng)
		out = append(out, tier...)
		if len(out) >= n {
			return out[:n]
		}
	}
	return out
}
