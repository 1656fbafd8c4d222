// Package github proxies the GitHub contribution calendar for the activity widget.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// ErrCalendarNotFound is returned when GitHub answers without a contribution calendar.
var ErrCalendarNotFound = errors.New("contribution calendar not found")

// Activity is one day of the calendar.
type Activity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// Calendar is the reshaped contribution calendar.
type Calendar struct {
	TotalContributions int        `json:"totalContributions"`
	Activities         []Activity `json:"activities"`
}

// Fetcher returns the contribution calendar.
type Fetcher interface {
	Fetch(ctx context.Context) (*Calendar, error)
}

// MapLevel converts GitHub's quartile enum to 0-4.
func MapLevel(level string) int {
	switch level {
	case "NONE":
		return 0
	case "FIRST_QUARTILE":
		return 1
	case "SECOND_QUARTILE":
		return 2
	case "THIRD_QUARTILE":
		return 3
	case "FOURTH_QUARTILE":
		return 4
	default:
		return 0
	}
}

type contributionCalendar struct {
	TotalContributions githubv4.Int
	Weeks              []struct {
		ContributionDays []struct {
			ContributionCount githubv4.Int
			Date              githubv4.String
			ContributionLevel githubv4.String
		}
	}
}

// Pointers keep a null user or calendar apart from an empty one.
type contributionsQuery struct {
	User *struct {
		ContributionsCollection struct {
			ContributionCalendar *contributionCalendar
		}
	} `graphql:"user(login: $username)"`
}

// Client queries the GitHub GraphQL API for one user.
type Client struct {
	gql      *githubv4.Client
	username string
}

// NewClient authenticates with a personal access token.
func NewClient(username, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{
		gql:      githubv4.NewClient(oauth2.NewClient(context.Background(), src)),
		username: username,
	}
}

// NewClientWithURL targets a custom GraphQL endpoint, such as GitHub Enterprise or a test server.
func NewClientWithURL(url, username string, httpClient *http.Client) *Client {
	return &Client{
		gql:      githubv4.NewEnterpriseClient(url, httpClient),
		username: username,
	}
}

func (c *Client) Fetch(ctx context.Context) (*Calendar, error) {
	var q contributionsQuery
	vars := map[string]any{
		"username": githubv4.String(c.username),
	}
	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("query contribution calendar: %w", err)
	}

	if q.User == nil || q.User.ContributionsCollection.ContributionCalendar == nil {
		return nil, ErrCalendarNotFound
	}
	cal := q.User.ContributionsCollection.ContributionCalendar

	out := &Calendar{
		TotalContributions: int(cal.TotalContributions),
		Activities:         make([]Activity, 0, len(cal.Weeks)*7),
	}
	for _, week := range cal.Weeks {
		for _, day := range week.ContributionDays {
			out.Activities = append(out.Activities, Activity{
				Date:  string(day.Date),
				Count: int(day.ContributionCount),
				Level: MapLevel(string(day.ContributionLevel)),
			})
		}
	}
	return out, nil
}
