package activity

import (
	"sort"
	"strings"
	"time"
)

// KPI weights for the team score and per-contributor scoring.
const (
	addWeight      = 2
	fixWeight      = 2.5
	refactorWeight = 1
	otherWeight    = 1
	closeWeight    = 2
	bugWeight      = 2
	taskWeight     = 3
)

type commitKind int

const (
	kindFix commitKind = iota
	kindAdd
	kindRefactor
	kindOther
)

// classifyCommit buckets a commit by keywords in its message. The first
// matching rule wins, so "fix: add retry" counts as a fix.
func classifyCommit(message string) commitKind {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "fix"):
		return kindFix
	case strings.Contains(msg, "add"), strings.Contains(msg, "enhancement"):
		return kindAdd
	case strings.Contains(msg, "refactor"):
		return kindRefactor
	default:
		return kindOther
	}
}

// Contributor holds one author's aggregated weekly performance.
type Contributor struct {
	Name            string
	KPI             float64
	BugFixes        int
	AddCommits      int
	RefactorCommits int
	TotalActions    int

	activeDays map[string]struct{}
}

// ActiveDays returns the number of distinct days this contributor was active.
func (c *Contributor) ActiveDays() int {
	return len(c.activeDays)
}

func (c *Contributor) markActive(day time.Time) {
	if c.activeDays == nil {
		c.activeDays = make(map[string]struct{})
	}
	c.activeDays[day.Format("2006-01-02")] = struct{}{}
}

// Summary aggregates one week of repository activity.
type Summary struct {
	Since time.Time
	Until time.Time

	AddCommits      int
	FixCommits      int
	RefactorCommits int
	OtherCommits    int

	IssuesOpened   int
	IssuesClosed   int
	BugsClosed     int
	TasksCompleted int

	Tasks []TaskUpdate

	contributors map[string]*Contributor
}

// NewSummary creates an empty summary covering the seven days up to now.
func NewSummary(now time.Time) *Summary {
	return &Summary{
		Since:        now.Add(-7 * 24 * time.Hour),
		Until:        now,
		contributors: make(map[string]*Contributor),
	}
}

func (s *Summary) contributor(name string) *Contributor {
	if name == "" {
		name = "Unknown"
	}
	c, ok := s.contributors[name]
	if !ok {
		c = &Contributor{Name: name}
		s.contributors[name] = c
	}
	return c
}

func (s *Summary) inWindow(t time.Time) bool {
	return !t.Before(s.Since) && !t.After(s.Until)
}

// RecordCommit classifies a commit and credits its author.
func (s *Summary) RecordCommit(commit Commit) {
	c := s.contributor(commit.Author)

	switch classifyCommit(commit.Message) {
	case kindFix:
		s.FixCommits++
		c.KPI += fixWeight
		c.BugFixes++
	case kindAdd:
		s.AddCommits++
		c.KPI += addWeight
		c.AddCommits++
	case kindRefactor:
		s.RefactorCommits++
		c.KPI += refactorWeight
		c.RefactorCommits++
	default:
		s.OtherCommits++
		c.KPI += otherWeight
	}

	c.TotalActions++
	c.markActive(commit.Date)
}

// RecordIssue counts issues opened and closed inside the window. Closing an
// issue credits the issue's author with KPI and one action; a closed issue
// labelled "bug" counts toward bugs closed. Active days come from commits
// only.
func (s *Summary) RecordIssue(issue Issue) {
	if s.inWindow(issue.CreatedAt) {
		s.IssuesOpened++
	}

	if issue.ClosedAt == nil || !s.inWindow(*issue.ClosedAt) {
		return
	}

	s.IssuesClosed++
	for _, label := range issue.Labels {
		if strings.EqualFold(label, "bug") {
			s.BugsClosed++
			break
		}
	}

	c := s.contributor(issue.Author)
	c.KPI += closeWeight
	c.TotalActions++
}

// RecordTask tracks a project-board item updated inside the window and
// counts it as completed when any of its statuses is done/completed.
func (s *Summary) RecordTask(task TaskUpdate) {
	if !s.inWindow(task.UpdatedAt) {
		return
	}

	for _, status := range task.Statuses {
		switch strings.ToLower(status) {
		case "done", "completed":
			s.TasksCompleted++
		default:
			continue
		}
		break
	}

	s.Tasks = append(s.Tasks, task)
}

// TeamKPI computes the team score for the week.
func (s *Summary) TeamKPI() float64 {
	return addWeight*float64(s.AddCommits) +
		fixWeight*float64(s.FixCommits) +
		bugWeight*float64(s.BugsClosed) +
		taskWeight*float64(s.TasksCompleted)
}

// Contributors returns all contributors ordered by KPI, highest first.
// Ties break on name so the ordering is stable across runs.
func (s *Summary) Contributors() []*Contributor {
	list := make([]*Contributor, 0, len(s.contributors))
	for _, c := range s.contributors {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].KPI != list[j].KPI {
			return list[i].KPI > list[j].KPI
		}
		return list[i].Name < list[j].Name
	})
	return list
}

// Badge names awarded by Badges.
const (
	BadgeTopContributor = "Top Contributor"
	BadgeBugSquasher    = "Bug Squasher"
	BadgeMostActive     = "Most Active"
	BadgeFeatureCreator = "Feature Creator"
	BadgeCodeRefactorer = "Code Refactorer"
	BadgeConsistent     = "Consistent Contributor"
)

// Badges awards recognition badges based on the week's numbers.
func (s *Summary) Badges() map[string][]string {
	badges := make(map[string][]string)
	if len(s.contributors) == 0 {
		return badges
	}

	if top := s.maxBy(func(c *Contributor) float64 { return c.KPI }); top != nil {
		badges[top.Name] = append(badges[top.Name], BadgeTopContributor)
	}
	if bug := s.maxBy(func(c *Contributor) float64 { return float64(c.BugFixes) }); bug != nil && bug.BugFixes > 0 {
		badges[bug.Name] = append(badges[bug.Name], BadgeBugSquasher)
	}
	if active := s.maxBy(func(c *Contributor) float64 { return float64(c.TotalActions) }); active != nil {
		badges[active.Name] = append(badges[active.Name], BadgeMostActive)
	}
	if feature := s.maxBy(func(c *Contributor) float64 { return float64(c.AddCommits) }); feature != nil && feature.AddCommits > 0 {
		badges[feature.Name] = append(badges[feature.Name], BadgeFeatureCreator)
	}
	if refactor := s.maxBy(func(c *Contributor) float64 { return float64(c.RefactorCommits) }); refactor != nil && refactor.RefactorCommits > 0 {
		badges[refactor.Name] = append(badges[refactor.Name], BadgeCodeRefactorer)
	}

	for name, c := range s.contributors {
		if c.ActiveDays() >= 3 {
			badges[name] = append(badges[name], BadgeConsistent)
		}
	}

	return badges
}

// maxBy returns the contributor with the highest score. Iterating the
// sorted contributor list keeps tie-breaks deterministic across runs.
func (s *Summary) maxBy(score func(*Contributor) float64) *Contributor {
	var best *Contributor
	for _, c := range s.Contributors() {
		if best == nil || score(c) > score(best) {
			best = c
		}
	}
	return best
}
