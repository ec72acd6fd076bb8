package session

import (
	"time"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
	"github.com/son-ta-minh/ielts-pro-sub004/internal/store"
)

// Summary holds the figures shown by the stats screen.
type Summary struct {
	Total     int
	Due       int
	New       int
	Scheduled int
	Leeches   int

	Reviews  int
	ByGrade  map[srs.Grade]int
	Recalled int
	Recall   float64 // Recalled / Reviews (computed)
}

// BuildSummary classifies items at now and tallies review events.
func BuildSummary(items []srs.Item, events []store.ReviewEvent, now time.Time, leechThreshold int) *Summary {
	s := &Summary{ByGrade: make(map[srs.Grade]int)}
	for _, it := range items {
		s.Total++
		switch it.Status(now) {
		case srs.StatusDue:
			s.Due++
		case srs.StatusNew:
			s.New++
		default:
			s.Scheduled++
		}
		if srs.IsLeech(it, leechThreshold) {
			s.Leeches++
		}
	}
	for _, ev := range events {
		s.Record(ev.Grade)
	}
	return s
}

// Record adds one review result.
func (s *Summary) Record(g srs.Grade) {
	if s.ByGrade == nil {
		s.ByGrade = make(map[srs.Grade]int)
	}
	s.Reviews++
	s.ByGrade[g]++
	if g != srs.Forgot {
		s.Recalled++
	}
	if s.Reviews > 0 {
		s.Recall = float64(s.Recalled) / float64(s.Reviews)
	}
}
