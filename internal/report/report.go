package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultDir is where weekly reports are written unless overridden.
const DefaultDir = "Weekly Reports"

// Descriptor identifies a single weekly report by its ISO week and year.
type Descriptor struct {
	Year int
	Week int
	Date time.Time
}

// NewDescriptor derives the report identity for the given instant using
// ISO-8601 week numbering, so late-December dates roll into week 1 of the
// following year when the calendar says so.
func NewDescriptor(now time.Time) Descriptor {
	year, week := now.ISOWeek()
	return Descriptor{Year: year, Week: week, Date: now}
}

// Filename returns the report file name, e.g. "week_45_2025.md".
func (d Descriptor) Filename() string {
	return fmt.Sprintf("week_%d_%d.md", d.Week, d.Year)
}

// Title returns the report's first Markdown line.
func (d Descriptor) Title() string {
	return fmt.Sprintf("# 🗓️ Weekly Report — Week %d, %d", d.Week, d.Year)
}

// DateLine returns the human-readable date line, e.g.
// "**Date:** Monday, 3 November 2025".
func (d Descriptor) DateLine() string {
	return fmt.Sprintf("**Date:** %s", d.Date.Format("Monday, 2 January 2006"))
}

// Render produces the fixed report skeleton for the descriptor. The output
// is fully determined by the descriptor, so re-running for the same date
// yields byte-identical content.
func Render(d Descriptor) string {
	return fmt.Sprintf(`%s

%s

---

## 🔍 Summary
- Key updates and milestones achieved this week.

## ⚙️ Technical Progress
- Describe key technical developments here.

## 📊 Data & Results
- Add data summaries, figures, or metrics.

## 🚀 Next Steps
- Outline plans for the coming week.

## 🧠 Notes
- Any observations or issues encountered.
`, d.Title(), d.DateLine())
}

// Save writes the rendered report under dir, creating the directory if
// needed, and replaces any existing report for the same week.
func Save(dir string, d Descriptor, content string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join(dir, d.Filename())
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write report to %s: %w", path, err)
	}

	return path, nil
}

// Generate renders and saves the skeleton report for the given instant.
func Generate(now time.Time, dir string) (string, error) {
	d := NewDescriptor(now)
	return Save(dir, d, Render(d))
}
