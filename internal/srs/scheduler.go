package srs

import (
	"fmt"
	"math"
	"time"
)

// Schedule applies a review grade to item at time now and returns the
// updated item. The input is not mutated. The caller persists the result.
//
// Schedule panics if grade is not a valid Grade; callers validate grades
// at the boundary with ParseGrade.
func Schedule(item Item, grade Grade, now time.Time) Item {
	c := item.clone()
	ease := clampEase(c.EaseFactor)

	switch grade {
	case Forgot:
		c.IntervalDays = 0
		c.ConsecutiveCorrect = 0
		c.EaseFactor = clampEase(ease - ForgotEasePenalty)
		c.NextReviewAt = now.Add(RelearnDelay)
		c.ForgotCount++

	case Hard:
		if c.ConsecutiveCorrect == 0 {
			c.IntervalDays = HardFirstInterval
		} else {
			c.IntervalDays = max(1, roundDays(float64(c.IntervalDays)*HardGrowth))
		}
		c.ConsecutiveCorrect++
		c.EaseFactor = clampEase(ease - HardEasePenalty)
		c.NextReviewAt = now.Add(time.Duration(c.IntervalDays) * Day)

	case Easy:
		if c.ConsecutiveCorrect == 0 {
			c.IntervalDays = EasyFirstInterval
		} else {
			c.IntervalDays = max(EasyStreakFloor, roundDays(float64(c.IntervalDays)*ease))
		}
		c.ConsecutiveCorrect++
		c.EaseFactor = clampEase(ease + EasyEaseBonus)
		c.NextReviewAt = now.Add(time.Duration(c.IntervalDays) * Day)

	default:
		panic(fmt.Errorf("%w: %d", ErrInvalidGrade, int(grade)))
	}

	c.LastReviewAt = &now
	c.UpdatedAt = now
	return c
}

func clampEase(e float64) float64 {
	return math.Min(MaxEase, math.Max(MinEase, e))
}

func roundDays(d float64) int {
	return int(math.Round(d))
}
