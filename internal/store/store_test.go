package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
)

var base = time.UnixMilli(1_700_000_000_000).UTC()

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestItem(owner, word string, created time.Time, flags ...srs.Flag) srs.Item {
	return srs.NewItem(owner, srs.Content{
		Word:    word,
		Meaning: "meaning of " + word,
		Tags:    []string{"band7"},
		Flags:   flags,
	}, created)
}

func mustUpsert(t *testing.T, repo ItemRepo, items ...srs.Item) {
	t.Helper()
	for _, it := range items {
		if err := repo.Upsert(context.Background(), it); err != nil {
			t.Fatalf("upsert %s: %v", it.Content.Word, err)
		}
	}
}

func words(items []srs.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Content.Word
	}
	return out
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	s, err := Open(path)
	require.NoError(t, err)
	it := newTestItem("lan", "ubiquitous", base)
	mustUpsert(t, s.ItemRepo(), it)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.ItemRepo().Get(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, "ubiquitous", got.Content.Word)
}

func TestItemRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ItemRepo()
	ctx := context.Background()

	it := newTestItem("lan", "take off", base, srs.FlagPhrasalVerb, srs.FlagFocus)
	it.Content.Example = "The plane took off."
	mustUpsert(t, repo, it)

	got, err := repo.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, it.Content, got.Content)
	assert.True(t, got.NextReviewAt.Equal(it.NextReviewAt))
	assert.True(t, got.CreatedAt.Equal(it.CreatedAt))
	assert.Nil(t, got.LastReviewAt)
	assert.Equal(t, srs.DefaultEase, got.EaseFactor)

	reviewed := srs.Schedule(*got, srs.Easy, base.Add(time.Hour))
	mustUpsert(t, repo, reviewed)

	got, err = repo.Get(ctx, it.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastReviewAt)
	assert.True(t, got.LastReviewAt.Equal(base.Add(time.Hour)))
	assert.Equal(t, reviewed.IntervalDays, got.IntervalDays)
	assert.Equal(t, reviewed.ConsecutiveCorrect, got.ConsecutiveCorrect)
	assert.InDelta(t, reviewed.EaseFactor, got.EaseFactor, 1e-9)
}

func TestGet_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.ItemRepo().Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDueItems(t *testing.T) {
	s := openTestStore(t)
	repo := s.ItemRepo()
	ctx := context.Background()

	a := newTestItem("lan", "a", base)
	a.NextReviewAt = base.Add(-2 * time.Hour)
	b := newTestItem("lan", "b", base)
	b.NextReviewAt = base // boundary: due exactly now
	c := newTestItem("lan", "c", base)
	c.NextReviewAt = base.Add(time.Millisecond)
	other := newTestItem("minh", "other", base)
	other.NextReviewAt = base.Add(-time.Hour)
	mustUpsert(t, repo, b, c, a, other)

	got, err := repo.DueItems(ctx, "lan", base, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, words(got))

	got, err = repo.DueItems(ctx, "lan", base, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, words(got))

	got, err = repo.DueItems(ctx, "nobody", base, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewItems_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.ItemRepo()

	old := newTestItem("lan", "old", base)
	mid := newTestItem("lan", "mid", base.Add(time.Minute))
	fresh := newTestItem("lan", "fresh", base.Add(2*time.Minute))
	learned := newTestItem("lan", "learned", base.Add(3*time.Minute))
	learned = srs.Schedule(learned, srs.Hard, base.Add(3*time.Minute))
	mustUpsert(t, repo, old, mid, fresh, learned)

	got, err := repo.NewItems(context.Background(), "lan", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh", "mid", "old"}, words(got))

	got, err = repo.NewItems(context.Background(), "lan", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh", "mid"}, words(got))
}

func TestItemsByFlag(t *testing.T) {
	s := openTestStore(t)
	repo := s.ItemRepo()

	mustUpsert(t, repo,
		newTestItem("lan", "kick the bucket", base, srs.FlagIdiom),
		newTestItem("lan", "give up", base, srs.FlagPhrasalVerb, srs.FlagFocus),
		newTestItem("lan", "plain", base),
		newTestItem("minh", "break a leg", base, srs.FlagIdiom),
	)

	got, err := repo.ItemsByFlag(context.Background(), "lan", srs.FlagIdiom)
	require.NoError(t, err)
	assert.Equal(t, []string{"kick the bucket"}, words(got))

	got, err = repo.ItemsByFlag(context.Background(), "lan", srs.FlagFocus)
	require.NoError(t, err)
	assert.Equal(t, []string{"give up"}, words(got))

	// "_" is a LIKE wildcard and must match literally.
	got, err = repo.ItemsByFlag(context.Background(), "lan", srs.FlagPhrasalVerb)
	require.NoError(t, err)
	assert.Equal(t, []string{"give up"}, words(got))

	got, err = repo.ItemsByFlag(context.Background(), "lan", srs.Flag("phrasal%verb"))
	require.NoError(t, err)
	assert.Empty(t, got)

	all, err := repo.AllItems(context.Background(), "lan")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMerge_LastWriteWins(t *testing.T) {
	s := openTestStore(t)
	repo := s.ItemRepo()
	ctx := context.Background()

	stale := newTestItem("lan", "stale", base)
	fresh := newTestItem("lan", "fresh", base)
	same := newTestItem("lan", "same", base)
	mustUpsert(t, repo, stale, fresh, same)

	newer := stale
	newer.Content.Meaning = "updated remotely"
	newer.UpdatedAt = base.Add(time.Minute)

	older := fresh
	older.Content.Meaning = "old remote copy"
	older.UpdatedAt = base.Add(-time.Minute)

	tie := same
	tie.Content.Meaning = "tied remote copy"

	added := newTestItem("lan", "added", base)

	foreign := newTestItem("minh", "foreign", base)
	foreign.ID = same.ID
	foreign.UpdatedAt = base.Add(time.Hour)

	res, err := repo.Merge(ctx, []srs.Item{newer, older, tie, added, foreign})
	require.NoError(t, err)
	assert.Equal(t, MergeResult{Inserted: 1, Updated: 1, Skipped: 2, Conflicts: 1}, res)

	got, err := repo.Get(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated remotely", got.Content.Meaning)

	got, err = repo.Get(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, fresh.Content.Meaning, got.Content.Meaning)

	got, err = repo.Get(ctx, same.ID)
	require.NoError(t, err)
	assert.Equal(t, "lan", got.OwnerID)
	assert.Equal(t, same.Content.Meaning, got.Content.Meaning)

	_, err = repo.Get(ctx, added.ID)
	assert.NoError(t, err)
}

func TestMerge_Idempotent(t *testing.T) {
	s := openTestStore(t)
	repo := s.ItemRepo()
	ctx := context.Background()

	batch := []srs.Item{newTestItem("lan", "a", base), newTestItem("lan", "b", base)}
	res, err := repo.Merge(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)

	res, err = repo.Merge(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, MergeResult{Skipped: 2}, res)
}

func TestReviewEvents(t *testing.T) {
	s := openTestStore(t)
	items := s.ItemRepo()
	reviews := s.ReviewRepo()
	ctx := context.Background()

	it := newTestItem("lan", "resilient", base)
	mustUpsert(t, items, it)

	for i, g := range []srs.Grade{srs.Forgot, srs.Hard, srs.Easy} {
		err := reviews.AppendReview(ctx, ReviewEvent{
			ItemID:       it.ID,
			OwnerID:      "lan",
			Grade:        g,
			IntervalDays: i,
			EaseFactor:   2.5,
			ReviewedAt:   base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	got, err := reviews.ReviewsSince(ctx, "lan", base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, srs.Hard, got[0].Grade)
	assert.Equal(t, srs.Easy, got[1].Grade)
	assert.NotEmpty(t, got[0].ID)
	assert.True(t, got[1].ReviewedAt.Equal(base.Add(2*time.Hour)))

	got, err = reviews.ReviewsSince(ctx, "minh", base)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAppendReview_InvalidGrade(t *testing.T) {
	s := openTestStore(t)
	err := s.ReviewRepo().AppendReview(context.Background(), ReviewEvent{ItemID: "x", Grade: srs.Grade(9)})
	assert.True(t, errors.Is(err, srs.ErrInvalidGrade), "err = %v", err)
}

func TestDefaultDBPath_Env(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "words.db")
	t.Setenv("IELTSPRO_DB", want)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.DirExists(t, filepath.Dir(want))
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("IELTSPRO_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ieltspro", "ieltspro.db"), got)
}
