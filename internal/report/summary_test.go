package report

import (
	"strings"
	"testing"
	"time"

	"github.com/amenzbedi22/autoweeklyreport/internal/activity"
	"github.com/stretchr/testify/assert"
)

func buildSummary(now time.Time) *activity.Summary {
	s := activity.NewSummary(now)
	day := now.Add(-24 * time.Hour)
	s.RecordCommit(activity.Commit{Author: "alice", Message: "fix: race in writer", Date: day})
	s.RecordCommit(activity.Commit{Author: "bob", Message: "add retry helper", Date: day})

	closed := now.Add(-2 * 24 * time.Hour)
	s.RecordIssue(activity.Issue{
		Number: 7, Title: "Crash on empty input", Author: "alice",
		Labels:    []string{"bug"},
		CreatedAt: now.Add(-5 * 24 * time.Hour),
		ClosedAt:  &closed,
	})
	s.RecordTask(activity.TaskUpdate{Title: "Ship exporter", Statuses: []string{"Done"}, UpdatedAt: day})
	s.RecordTask(activity.TaskUpdate{Title: "Write docs", Statuses: []string{"In Progress"}, UpdatedAt: day})
	return s
}

func TestRenderSummary(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)
	d := NewDescriptor(now)
	s := buildSummary(now)

	content := RenderSummary(d, s, 10)

	lines := strings.Split(content, "\n")
	assert.Equal(t, "# 🗓️ Weekly Report — Week 45, 2025", lines[0])
	assert.Contains(t, content, "**Date:** Monday, 3 November 2025")

	// All five fixed headers survive population
	for _, header := range sectionHeaders {
		assert.Contains(t, content, header)
	}

	// KPI: 2*1 add + 2.5*1 fix + 2*1 bug closed + 3*1 task done = 9.5
	assert.Contains(t, content, "This Week KPI: **9.5**")
	assert.Contains(t, content, "Previous Week KPI: **10**")
	assert.Contains(t, content, "Trend: ⬇ Decrease")

	assert.Contains(t, content, "Fix commits: 1")
	assert.Contains(t, content, "Add commits: 1")
	assert.Contains(t, content, "### 🔹 alice")
	assert.Contains(t, content, "Bug Squasher")
	assert.Contains(t, content, "**Ship exporter** — Status: *done*")
	assert.Contains(t, content, "**Write docs** — Status: *in progress*")
}

func TestRenderSummaryRoundTripsKPIScan(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	now := time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)
	d := NewDescriptor(now)
	s := buildSummary(now)

	_, err := Save(dir, d, RenderSummary(d, s, 0))
	assert.NoError(t, err)

	// Next week's run should recover this week's KPI from the file
	next := NewDescriptor(now.Add(7 * 24 * time.Hour))
	kpi, err := PreviousWeekKPI(dir, next)
	assert.NoError(t, err)
	assert.Equal(t, s.TeamKPI(), kpi)
}

func TestRenderSummaryEmpty(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)
	d := NewDescriptor(now)
	s := activity.NewSummary(now)

	content := RenderSummary(d, s, 0)
	for _, header := range sectionHeaders {
		assert.Contains(t, content, header)
	}
	assert.Contains(t, content, "Trend: Stable")
	assert.Contains(t, content, "- Outline plans for the coming week.")
}
