package session

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
	"github.com/son-ta-minh/ielts-pro-sub004/internal/store"
)

// mockItemRepo implements store.ItemRepo in memory.
type mockItemRepo struct {
	items map[string]srs.Item

	// leak is appended to every query result regardless of owner.
	leak []srs.Item

	// calls records which query methods ran.
	calls []string

	err error
}

func newMockItemRepo(items ...srs.Item) *mockItemRepo {
	m := &mockItemRepo{items: make(map[string]srs.Item)}
	for _, it := range items {
		m.items[it.ID] = it
	}
	return m
}

func (m *mockItemRepo) sorted(keep func(srs.Item) bool, less func(a, b srs.Item) bool) []srs.Item {
	var out []srs.Item
	for _, it := range m.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return append(out, m.leak...)
}

func byNextReview(a, b srs.Item) bool {
	if !a.NextReviewAt.Equal(b.NextReviewAt) {
		return a.NextReviewAt.Before(b.NextReviewAt)
	}
	return a.ID < b.ID
}

func (m *mockItemRepo) Get(_ context.Context, id string) (*srs.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	it, ok := m.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &it, nil
}

func (m *mockItemRepo) DueItems(_ context.Context, ownerID string, before time.Time, limit int) ([]srs.Item, error) {
	m.calls = append(m.calls, "due")
	if m.err != nil {
		return nil, m.err
	}
	out := m.sorted(func(it srs.Item) bool {
		return it.OwnerID == ownerID && !it.NextReviewAt.After(before)
	}, byNextReview)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockItemRepo) NewItems(_ context.Context, ownerID string, limit int) ([]srs.Item, error) {
	m.calls = append(m.calls, "new")
	if m.err != nil {
		return nil, m.err
	}
	out := m.sorted(func(it srs.Item) bool {
		return it.OwnerID == ownerID && it.ConsecutiveCorrect == 0
	}, func(a, b srs.Item) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockItemRepo) ItemsByFlag(_ context.Context, ownerID string, flag srs.Flag) ([]srs.Item, error) {
	m.calls = append(m.calls, "flag")
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(it srs.Item) bool {
		return it.OwnerID == ownerID && it.Content.HasFlag(flag)
	}, byNextReview), nil
}

func (m *mockItemRepo) AllItems(_ context.Context, ownerID string) ([]srs.Item, error) {
	m.calls = append(m.calls, "all")
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(it srs.Item) bool { return it.OwnerID == ownerID }, byNextReview), nil
}

func (m *mockItemRepo) Upsert(_ context.Context, item srs.Item) error {
	if m.err != nil {
		return m.err
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockItemRepo) Merge(_ context.Context, _ []srs.Item) (store.MergeResult, error) {
	return store.MergeResult{}, fmt.Errorf("merge not supported by mock")
}

// mockReviewRepo implements store.ReviewRepo in memory.
type mockReviewRepo struct {
	events []store.ReviewEvent
	err    error
}

func (m *mockReviewRepo) AppendReview(_ context.Context, ev store.ReviewEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, ev)
	return nil
}

func (m *mockReviewRepo) ReviewsSince(_ context.Context, ownerID string, since time.Time) ([]store.ReviewEvent, error) {
	var out []store.ReviewEvent
	for _, ev := range m.events {
		if ev.OwnerID == ownerID && !ev.ReviewedAt.Before(since) {
			out = append(out, ev)
		}
	}
	return out, nil
}
