package activity

import (
	"context"
	"strings"
	"time"
)

// Commit is a single repository commit inside the reporting window.
type Commit struct {
	Author  string
	Message string
	Date    time.Time
}

// Issue is a repository issue, open or closed.
type Issue struct {
	Number    int
	Title     string
	Author    string
	Labels    []string
	CreatedAt time.Time
	ClosedAt  *time.Time
}

// TaskUpdate is a project-board item touched during the reporting window.
type TaskUpdate struct {
	Title     string
	Statuses  []string
	UpdatedAt time.Time
}

// StatusLabel returns the task's primary status lowercased, or "unknown"
// when the board exposes none.
func (t TaskUpdate) StatusLabel() string {
	if len(t.Statuses) == 0 {
		return "unknown"
	}
	return strings.ToLower(t.Statuses[0])
}

// Source provides the raw repository activity a Summary is built from.
type Source interface {
	Commits(ctx context.Context, since time.Time) ([]Commit, error)
	Issues(ctx context.Context, since time.Time) ([]Issue, error)
	ProjectItems(ctx context.Context) ([]TaskUpdate, error)
}

// Collect fetches one week of activity from the source and aggregates it.
func Collect(ctx context.Context, src Source, now time.Time) (*Summary, error) {
	s := NewSummary(now)

	commits, err := src.Commits(ctx, s.Since)
	if err != nil {
		return nil, err
	}
	for _, c := range commits {
		s.RecordCommit(c)
	}

	issues, err := src.Issues(ctx, s.Since)
	if err != nil {
		return nil, err
	}
	for _, i := range issues {
		s.RecordIssue(i)
	}

	tasks, err := src.ProjectItems(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		s.RecordTask(t)
	}

	return s, nil
}
