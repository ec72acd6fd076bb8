package srs

import "time"

// Ease factor bounds. DefaultEase is also the creation-time value.
const (
	MinEase     = 1.3
	MaxEase     = 2.5
	DefaultEase = 2.5
)

// Ease adjustments applied per grade.
const (
	ForgotEasePenalty = 0.2
	HardEasePenalty   = 0.15
	EasyEaseBonus     = 0.1
)

// RelearnDelay is how long a forgotten item waits before it is due again.
// Forgotten words are drilled in the same sitting, not the next day.
const RelearnDelay = 10 * time.Minute

// Interval policy, in days.
const (
	// HardFirstInterval applies when a Hard grade starts a new streak.
	HardFirstInterval = 1
	// EasyFirstInterval applies when an Easy grade starts a new streak.
	EasyFirstInterval = 4
	// EasyStreakFloor is the minimum interval for Easy within a streak.
	EasyStreakFloor = 6
	// HardGrowth multiplies the interval on Hard within a streak.
	HardGrowth = 1.2
)

// Day is the length of one interval day.
const Day = 24 * time.Hour

// DefaultLeechThreshold is the forgot count at which an item is reported as a leech.
const DefaultLeechThreshold = 8

// Default session sizes.
const (
	DefaultSessionLimit = 25
	DefaultNewLimit     = 10
)
