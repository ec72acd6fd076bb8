package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/logger"
	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
	"github.com/son-ta-minh/ielts-pro-sub004/internal/store"
)

// Reminder tells one owner how much is waiting for review.
type Reminder struct {
	OwnerID string
	Due     int
	Leeches int // due items forgotten at least the leech threshold
	At      time.Time
}

// Notifier delivers reminders.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// LogNotifier writes reminders to the log.
type LogNotifier struct {
	Log *logger.Logger
}

func (n LogNotifier) Notify(_ context.Context, r Reminder) error {
	logger.OrNop(n.Log).Info("items due for review",
		"owner", r.OwnerID, "due", r.Due, "leeches", r.Leeches)
	return nil
}

// Options configures a Runner.
type Options struct {
	Owners         []string
	Interval       time.Duration
	LeechThreshold int
}

// Runner periodically counts due items and notifies their owners.
// It only reads the store.
type Runner struct {
	items    store.ItemRepo
	notifier Notifier
	opts     Options
	log      *logger.Logger

	// now is the clock used by scheduled runs.
	now func() time.Time

	scheduler *gocron.Scheduler
}

// New creates a Runner. A nil notifier logs reminders.
func New(items store.ItemRepo, notifier Notifier, opts Options, log *logger.Logger) *Runner {
	log = logger.OrNop(log).With("component", "reminder")
	if notifier == nil {
		notifier = LogNotifier{Log: log}
	}
	return &Runner{
		items:     items,
		notifier:  notifier,
		opts:      opts,
		log:       log,
		now:       time.Now,
		scheduler: gocron.NewScheduler(time.UTC),
	}
}

// RunOnce checks every configured owner at now and sends a reminder to
// each owner with due items. It returns the reminders it sent.
func (r *Runner) RunOnce(ctx context.Context, now time.Time) ([]Reminder, error) {
	var (
		sent []Reminder
		errs []error
	)
	for _, owner := range r.opts.Owners {
		due, err := r.items.DueItems(ctx, owner, now, 0)
		if err != nil {
			errs = append(errs, fmt.Errorf("count due items for %s: %w", owner, err))
			continue
		}
		if len(due) == 0 {
			continue
		}

		rem := Reminder{OwnerID: owner, Due: len(due), At: now}
		for _, it := range due {
			if srs.IsLeech(it, r.opts.LeechThreshold) {
				rem.Leeches++
			}
		}
		if err := r.notifier.Notify(ctx, rem); err != nil {
			errs = append(errs, fmt.Errorf("notify %s: %w", owner, err))
			continue
		}
		sent = append(sent, rem)
	}
	return sent, errors.Join(errs...)
}

// Start schedules RunOnce every Interval, first run immediately, and
// returns without blocking. Runs stop when ctx is done or Stop is called.
func (r *Runner) Start(ctx context.Context) error {
	if r.opts.Interval <= 0 {
		return fmt.Errorf("start reminder: interval must be positive, got %s", r.opts.Interval)
	}

	r.scheduler.SingletonModeAll()
	_, err := r.scheduler.Every(r.opts.Interval).Do(func() {
		if ctx.Err() != nil {
			return
		}
		if _, err := r.RunOnce(ctx, r.now()); err != nil {
			r.log.Error("reminder run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminder: %w", err)
	}

	r.scheduler.StartAsync()
	r.log.Info("reminder started", "interval", r.opts.Interval.String(), "owners", r.opts.Owners)
	return nil
}

// Stop terminates scheduled runs.
func (r *Runner) Stop() {
	r.scheduler.Stop()
	r.log.Info("reminder stopped")
}
