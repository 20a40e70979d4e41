package leetcode

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"portfolio/domain/entities"
	"portfolio/infrastructure/external"

	"go.uber.org/zap"
)

// DefaultEndpoint is the public LeetCode GraphQL endpoint
const DefaultEndpoint = "https://leetcode.com/graphql"

const statsQuery = `query userProblemsSolved($username: String!) {
  matchedUser(username: $username) {
    profile { ranking }
    submitStatsGlobal { acSubmissionNum { difficulty count } }
  }
}`

type graphQLRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type statsResponse struct {
	Data struct {
		MatchedUser *struct {
			Profile struct {
				Ranking int `json:"ranking"`
			} `json:"profile"`
			SubmitStatsGlobal struct {
				AcSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int    `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStatsGlobal"`
		} `json:"matchedUser"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Client fetches solved-problem counts for one user
type Client struct {
	endpoint string
	username string
	api      *external.Client
	logger   *zap.Logger
}

// NewClient creates a LeetCode client
func NewClient(endpoint, username string, httpClient *http.Client, logger *zap.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	headers := http.Header{}
	headers.Set("Referer", "https://leetcode.com")

	return &Client{
		endpoint: endpoint,
		username: username,
		api:      external.NewClient(httpClient, external.DefaultBreakerConfig("leetcode"), headers, logger),
		logger:   logger,
	}
}

// FetchStats returns the solved counts per difficulty and the ranking
func (c *Client) FetchStats(ctx context.Context) (*entities.CodingStats, error) {
	var resp statsResponse
	err := c.api.PostJSON(ctx, c.endpoint, graphQLRequest{
		Query:     statsQuery,
		Variables: map[string]string{"username": c.username},
	}, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("leetcode query failed: %s", resp.Errors[0].Message)
	}
	user := resp.Data.MatchedUser
	if user == nil {
		return nil, fmt.Errorf("leetcode user %q not found", c.username)
	}

	stats := &entities.CodingStats{
		Username: c.username,
		Ranking:  user.Profile.Ranking,
	}
	for _, n := range user.SubmitStatsGlobal.AcSubmissionNum {
		switch strings.ToLower(n.Difficulty) {
		case "all":
			stats.TotalSolved = n.Count
		case "easy":
			stats.EasySolved = n.Count
		case "medium":
			stats.MediumSolved = n.Count
		case "hard":
			stats.HardSolved = n.Count
		}
	}

	return stats, nil
}
