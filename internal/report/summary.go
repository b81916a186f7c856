package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amenzbedi22/autoweeklyreport/internal/activity"
)

// kpiLinePrefix marks the line older reports are scanned for to recover the
// previous week's score.
const kpiLinePrefix = "This Week KPI:"

// RenderSummary produces the weekly report populated with collected
// activity. The layout keeps the same title, date line, and five section
// headers as the plain skeleton.
func RenderSummary(d Descriptor, s *activity.Summary, previousKPI float64) string {
	var b strings.Builder
	kpi := s.TeamKPI()
	badges := s.Badges()

	fmt.Fprintf(&b, "%s\n\n%s\n\n", d.Title(), d.DateLine())
	fmt.Fprintf(&b, "**Range:** %s → %s\n\n", s.Since.Format("2006-01-02"), s.Until.Format("2006-01-02"))
	b.WriteString("---\n\n")

	totalCommits := s.AddCommits + s.FixCommits + s.RefactorCommits + s.OtherCommits
	b.WriteString("## 🔍 Summary\n")
	fmt.Fprintf(&b, "- Commits this week: %d\n", totalCommits)
	fmt.Fprintf(&b, "- Issues Opened: %d\n", s.IssuesOpened)
	fmt.Fprintf(&b, "- Issues Closed: %d\n", s.IssuesClosed)
	fmt.Fprintf(&b, "- Tasks marked Done/Completed: %d\n\n", s.TasksCompleted)

	b.WriteString("## ⚙️ Technical Progress\n")
	fmt.Fprintf(&b, "- Add commits: %d\n", s.AddCommits)
	fmt.Fprintf(&b, "- Fix commits: %d\n", s.FixCommits)
	fmt.Fprintf(&b, "- Refactor commits: %d\n", s.RefactorCommits)
	fmt.Fprintf(&b, "- Other commits: %d\n\n", s.OtherCommits)

	b.WriteString("## 📊 Data & Results\n")
	fmt.Fprintf(&b, "- %s **%s**\n", kpiLinePrefix, formatKPI(kpi))
	fmt.Fprintf(&b, "- Previous Week KPI: **%s**\n", formatKPI(previousKPI))
	fmt.Fprintf(&b, "- Trend: %s\n", trend(kpi, previousKPI))
	fmt.Fprintf(&b, "- Bug-type Issues Closed: %d\n", s.BugsClosed)
	for _, c := range s.Contributors() {
		fmt.Fprintf(&b, "\n### 🔹 %s\n", c.Name)
		fmt.Fprintf(&b, "- KPI Score: **%.2f**\n", c.KPI)
		fmt.Fprintf(&b, "- Total Actions: %d\n", c.TotalActions)
		fmt.Fprintf(&b, "- Bug Fixes: %d, Add Commits: %d, Refactor Commits: %d\n",
			c.BugFixes, c.AddCommits, c.RefactorCommits)
		fmt.Fprintf(&b, "- Active Days: %d\n", c.ActiveDays())
		if list := badges[c.Name]; len(list) > 0 {
			fmt.Fprintf(&b, "- Badges: %s\n", strings.Join(list, ", "))
		}
	}
	b.WriteString("\n")

	b.WriteString("## 🚀 Next Steps\n")
	if len(s.Tasks) == 0 {
		b.WriteString("- Outline plans for the coming week.\n")
	}
	for _, task := range s.Tasks {
		fmt.Fprintf(&b, "- **%s** — Status: *%s*, Updated: %s\n",
			task.Title, task.StatusLabel(), task.UpdatedAt.Format("2006-01-02 15:04"))
	}
	b.WriteString("\n")

	b.WriteString("## 🧠 Notes\n")
	b.WriteString("- Any observations or issues encountered.\n")

	return b.String()
}

func formatKPI(kpi float64) string {
	return strconv.FormatFloat(kpi, 'f', -1, 64)
}

func trend(current, previous float64) string {
	switch {
	case current > previous:
		return "⬆ Increase"
	case current < previous:
		return "⬇ Decrease"
	default:
		return "Stable"
	}
}
