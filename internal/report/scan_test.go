package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writeReportFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
}

func TestPreviousWeekKPI(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	current := NewDescriptor(time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)) // week 45

	writeReportFile(t, dir, "week_43_2025.md", "- This Week KPI: **12**\n")
	writeReportFile(t, dir, "week_44_2025.md", "- This Week KPI: **18.5**\n")
	writeReportFile(t, dir, "week_46_2025.md", "- This Week KPI: **99**\n")
	writeReportFile(t, dir, "notes.txt", "not a report")

	kpi, err := PreviousWeekKPI(dir, current)
	assert.NoError(t, err)
	assert.Equal(t, 18.5, kpi)
}

func TestPreviousWeekKPICrossYear(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	current := NewDescriptor(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)) // week 2, 2026

	writeReportFile(t, dir, "week_52_2025.md", "- This Week KPI: **7**\n")
	writeReportFile(t, dir, "week_1_2026.md", "- This Week KPI: **9**\n")

	kpi, err := PreviousWeekKPI(dir, current)
	assert.NoError(t, err)
	assert.Equal(t, 9.0, kpi)
}

func TestPreviousWeekKPISkipsSkeletonWeeks(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	current := NewDescriptor(time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)) // week 45

	// Week 44 was an unconfigured run: skeleton report without a KPI line
	writeReportFile(t, dir, "week_44_2025.md", Render(NewDescriptor(time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC))))
	writeReportFile(t, dir, "week_43_2025.md", "- This Week KPI: **12**\n")

	kpi, err := PreviousWeekKPI(dir, current)
	assert.NoError(t, err)
	assert.Equal(t, 12.0, kpi)
}

func TestPreviousWeekKPIMissing(t *testing.T) {
	t.Parallel()

	t.Run("no directory", func(t *testing.T) {
		kpi, err := PreviousWeekKPI(filepath.Join(t.TempDir(), "missing"), NewDescriptor(time.Now()))
		assert.NoError(t, err)
		assert.Zero(t, kpi)
	})

	t.Run("no earlier reports", func(t *testing.T) {
		dir := t.TempDir()
		current := NewDescriptor(time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC))
		writeReportFile(t, dir, "week_45_2025.md", "- This Week KPI: **5**\n")

		kpi, err := PreviousWeekKPI(dir, current)
		assert.NoError(t, err)
		assert.Zero(t, kpi)
	})

	t.Run("no kpi line", func(t *testing.T) {
		dir := t.TempDir()
		current := NewDescriptor(time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC))
		writeReportFile(t, dir, "week_44_2025.md", "# 🗓️ Weekly Report — Week 44, 2025\n")

		kpi, err := PreviousWeekKPI(dir, current)
		assert.NoError(t, err)
		assert.Zero(t, kpi)
	})
}

func TestParseFilename(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		filename string
		wantWeek int
		wantYear int
		wantOK   bool
	}{
		{"Valid", "week_45_2025.md", 45, 2025, true},
		{"Single digit week", "week_1_2026.md", 1, 2026, true},
		{"Wrong prefix", "report_45_2025.md", 0, 0, false},
		{"Wrong extension", "week_45_2025.txt", 0, 0, false},
		{"Not numeric", "week_forty_2025.md", 0, 0, false},
		{"Too many parts", "week_45_2025_final.md", 0, 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			week, year, ok := parseFilename(tt.filename)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantWeek, week)
				assert.Equal(t, tt.wantYear, year)
			}
		})
	}
}
