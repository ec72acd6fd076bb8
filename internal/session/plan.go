package session

import (
	"time"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
)

// Source records which selection stage produced a plan.
type Source string

const (
	SourceDue   Source = "due"   // items whose review time has passed
	SourceNew   Source = "new"   // fallback pool of unlearned items
	SourceSmart Source = "smart" // tiered pick across due, new and scheduled
	SourceNone  Source = "none"  // nothing to review
)

// Mode selects the assembly strategy.
type Mode int

const (
	// ModeStandard serves due items, falling back to new items.
	ModeStandard Mode = iota
	// ModeSmart fills the session from due, then new, then scheduled items.
	ModeSmart
)

// Default session sizes.
const (
	DefaultLimit    = srs.DefaultSessionLimit
	DefaultNewLimit = srs.DefaultNewLimit
)

// Plan is the ordered list of items for one sitting.
type Plan struct {
	OwnerID     string
	Items       []srs.Item
	Source      Source
	AssembledAt time.Time
}

// Empty reports whether there is nothing to review. An empty plan is a
// finished session, not an error.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Items) == 0
}

// Len returns the number of items in the plan.
func (p *Plan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Items)
}
