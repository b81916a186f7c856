package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/amenzbedi22/autoweeklyreport/internal/activity"
)

// projectItemsQuery fetches ProjectV2 board items with their content titles
// and single-select/text field values.
const projectItemsQuery = `
{
  user(login: %q) {
    projectV2(number: %d) {
      items(first: 50) {
        nodes {
          content {
            __typename
            ... on Issue { title updatedAt }
            ... on PullRequest { title updatedAt }
            ... on DraftIssue { title updatedAt }
          }
          updatedAt
          fieldValues(first: 10) {
            nodes {
              ... on ProjectV2ItemFieldSingleSelectValue { name }
              ... on ProjectV2ItemFieldTextValue { text }
            }
          }
        }
      }
    }
  }
}`

type graphqlResponse struct {
	Data struct {
		User struct {
			ProjectV2 *struct {
				Items struct {
					Nodes []projectItemNode `json:"nodes"`
				} `json:"items"`
			} `json:"projectV2"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type projectItemNode struct {
	Content *struct {
		Title string `json:"title"`
	} `json:"content"`
	UpdatedAt   time.Time `json:"updatedAt"`
	FieldValues struct {
		Nodes []struct {
			Name string `json:"name"`
			Text string `json:"text"`
		} `json:"nodes"`
	} `json:"fieldValues"`
}

// ProjectItems returns the items on the configured ProjectV2 board. A zero
// project number means no board is configured and yields no items.
func (c *Client) ProjectItems(ctx context.Context) ([]activity.TaskUpdate, error) {
	if c.projectNumber == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(projectItemsQuery, c.owner, c.projectNumber)
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graphql payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create graphql request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github graphql call failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode graphql response: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("github graphql error: %s", result.Errors[0].Message)
	}
	if result.Data.User.ProjectV2 == nil {
		return nil, fmt.Errorf("project %d not found for user %s", c.projectNumber, c.owner)
	}

	var tasks []activity.TaskUpdate
	for _, node := range result.Data.User.ProjectV2.Items.Nodes {
		task := activity.TaskUpdate{Title: "Untitled", UpdatedAt: node.UpdatedAt}
		if node.Content != nil && node.Content.Title != "" {
			task.Title = node.Content.Title
		}
		for _, field := range node.FieldValues.Nodes {
			switch {
			case field.Name != "":
				task.Statuses = append(task.Statuses, field.Name)
			case field.Text != "":
				task.Statuses = append(task.Statuses, field.Text)
			}
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
