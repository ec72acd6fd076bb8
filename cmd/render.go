package cmd

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/session"
	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
	"github.com/son-ta-minh/ielts-pro-sub004/internal/ui/theme"
)

func renderPlan(plan *session.Plan, now time.Time) string {
	if plan.Empty() {
		return theme.Hint.Render("Nothing to review") + "\n"
	}

	var b strings.Builder
	title := fmt.Sprintf("%d items (%s)", plan.Len(), plan.Source)
	b.WriteString(theme.Title.Render(title) + "\n")
	b.WriteString(strings.Repeat("─", 60) + "\n")

	for i, it := range plan.Items {
		fmt.Fprintf(&b, "%3d. %s  %s  %s%s\n",
			i+1,
			statusBadge(it.Status(now)),
			theme.Word.Render(it.Content.Word),
			theme.Body.Render(it.Content.Meaning),
			overdueNote(it, now))
		if it.Content.Example != "" {
			b.WriteString("      " + theme.Hint.Render(it.Content.Example) + "\n")
		}
		b.WriteString("      " + theme.Scheduled.Render(it.ID) + "\n")
	}
	return b.String()
}

// overdueNote marks items at least a day past due.
func overdueNote(it srs.Item, now time.Time) string {
	days := it.OverdueDays(now)
	if days < 1 {
		return ""
	}
	return "  " + theme.Leech.Render(fmt.Sprintf("(%.0fd overdue)", math.Floor(days)))
}

func statusBadge(s srs.Status) string {
	label := fmt.Sprintf("%-9s", s)
	switch s {
	case srs.StatusDue:
		return theme.Due.Render(label)
	case srs.StatusNew:
		return theme.New.Render(label)
	default:
		return theme.Scheduled.Render(label)
	}
}

func renderGraded(it srs.Item, grade srs.Grade, now time.Time) string {
	style := theme.Correct
	if grade == srs.Forgot {
		style = theme.Incorrect
	}

	next := it.NextReviewAt.Sub(now).Round(time.Minute)
	var when string
	if it.IntervalDays > 0 {
		when = fmt.Sprintf("in %d days", it.IntervalDays)
	} else {
		when = "in " + next.String()
	}

	return fmt.Sprintf("%s %s: next review %s (%s), ease %.2f\n",
		style.Render(grade.String()),
		theme.Word.Render(it.Content.Word),
		when,
		it.NextReviewAt.Format("2006-01-02 15:04"),
		it.EaseFactor)
}

type statRow struct {
	label string
	value string
}

func renderSummary(owner string, s *session.Summary) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Stats for "+owner) + "\n")

	rows := []statRow{
		{"Items", fmt.Sprint(s.Total)},
		{"Due", theme.Due.Render(fmt.Sprint(s.Due))},
		{"New", theme.New.Render(fmt.Sprint(s.New))},
		{"Scheduled", fmt.Sprint(s.Scheduled)},
		{"Leeches", theme.Leech.Render(fmt.Sprint(s.Leeches))},
		{"Reviews (24h)", fmt.Sprint(s.Reviews)},
	}
	if s.Reviews > 0 {
		rows = append(rows, statRow{"Recall (24h)", fmt.Sprintf("%.0f%%", s.Recall*100)})
	}

	var body strings.Builder
	for i, r := range rows {
		if i > 0 {
			body.WriteString("\n")
		}
		fmt.Fprintf(&body, "%-14s %s", r.label, r.value)
	}
	b.WriteString(theme.Card.Render(body.String()) + "\n")
	return b.String()
}
