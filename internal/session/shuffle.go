package session

import (
	"math/rand"
	"time"
)

// Shuffle permutes items in place with a Fisher-Yates pass. A nil rng
// uses a time-seeded source; pass a seeded one for reproducible order.
func Shuffle[T any](items []T, rng *rand.Rand) {
	if rng == nil {
		rng = newRand()
	}
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
