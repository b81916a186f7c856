// Package github fetches the repository activity the weekly report is
// built from, using the GitHub REST API for commits and issues and the
// GraphQL API for ProjectV2 board items.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amenzbedi22/autoweeklyreport/internal/activity"
)

const defaultBaseURL = "https://api.github.com"

// Client talks to the GitHub API for a single repository. It implements
// activity.Source.
type Client struct {
	httpClient    *http.Client
	token         string
	repo          string
	owner         string
	projectNumber int
	baseURL       string
}

// NewClient creates a client for the given repository. The repo must be in
// "owner/repo" format; owner is the login whose ProjectV2 board is queried
// and defaults to the repo owner when empty.
func NewClient(token, repo, owner string, projectNumber int) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN is not set")
	}
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid repo format, expected 'owner/repo', got: %s", repo)
	}
	if owner == "" {
		owner = parts[0]
	}

	return &Client{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		token:         token,
		repo:          repo,
		owner:         owner,
		projectNumber: projectNumber,
		baseURL:       defaultBaseURL,
	}, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github api call failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode github response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
}

// apiError extracts the error message from a non-OK API response.
func apiError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return fmt.Errorf("github api error: %s (status %s)", body.Message, resp.Status)
	}
	return fmt.Errorf("github api returned status: %s", resp.Status)
}

type restCommit struct {
	Commit struct {
		Message string `json:"message"`
		Author  *struct {
			Name string    `json:"name"`
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// Commits returns the repository commits since the given instant.
func (c *Client) Commits(ctx context.Context, since time.Time) ([]activity.Commit, error) {
	params := url.Values{}
	params.Set("since", since.UTC().Format(time.RFC3339))

	var raw []restCommit
	if err := c.get(ctx, "/repos/"+c.repo+"/commits", params, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch commits: %w", err)
	}

	commits := make([]activity.Commit, 0, len(raw))
	for _, rc := range raw {
		commit := activity.Commit{Message: rc.Commit.Message, Author: "Unknown"}
		if rc.Commit.Author != nil {
			commit.Author = rc.Commit.Author.Name
			commit.Date = rc.Commit.Author.Date
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

type restIssue struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at"`
	Labels    []struct {
		Name string `json:"name"`
	} `json:"labels"`
	User struct {
		Login string `json:"login"`
	} `json:"user"`
}

// Issues returns all issues updated since the given instant, open and closed.
func (c *Client) Issues(ctx context.Context, since time.Time) ([]activity.Issue, error) {
	params := url.Values{}
	params.Set("state", "all")
	params.Set("since", since.UTC().Format(time.RFC3339))

	var raw []restIssue
	if err := c.get(ctx, "/repos/"+c.repo+"/issues", params, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch issues: %w", err)
	}

	issues := make([]activity.Issue, 0, len(raw))
	for _, ri := range raw {
		issue := activity.Issue{
			Number:    ri.Number,
			Title:     ri.Title,
			Author:    ri.User.Login,
			CreatedAt: ri.CreatedAt,
			ClosedAt:  ri.ClosedAt,
		}
		for _, label := range ri.Labels {
			issue.Labels = append(issue.Labels, label.Name)
		}
		issues = append(issues, issue)
	}
	return issues, nil
}
