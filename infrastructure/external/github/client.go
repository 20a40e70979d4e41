package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"portfolio/domain/entities"
	"portfolio/infrastructure/external"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public GitHub REST API
const DefaultBaseURL = "https://api.github.com"

type apiRepo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Homepage    string    `json:"homepage"`
	Language    string    `json:"language"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Topics      []string  `json:"topics"`
	Fork        bool      `json:"fork"`
	Archived    bool      `json:"archived"`
	PushedAt    time.Time `json:"pushed_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Client lists a user's public repositories
type Client struct {
	baseURL  string
	username string
	api      *external.Client
	logger   *zap.Logger
}

// NewClient creates a GitHub client. token is optional and only raises
// the rate limit.
func NewClient(baseURL, username, token string, httpClient *http.Client, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	headers := http.Header{}
	headers.Set("X-GitHub-Api-Version", "2022-11-28")
	if token != "" {
		headers.Set("Authorization", "Bearer "+token)
	}

	return &Client{
		baseURL:  baseURL,
		username: username,
		api:      external.NewClient(httpClient, external.DefaultBreakerConfig("github"), headers, logger),
		logger:   logger,
	}
}

// ListRepositories returns public, non-fork repositories, most recently
// updated first
func (c *Client) ListRepositories(ctx context.Context) ([]entities.Repository, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?type=owner&sort=updated&per_page=100", c.baseURL, url.PathEscape(c.username))

	var repos []apiRepo
	if err := c.api.GetJSON(ctx, endpoint, &repos); err != nil {
		return nil, err
	}

	out := make([]entities.Repository, 0, len(repos))
	for _, r := range repos {
		if r.Fork {
			continue
		}
		topics := r.Topics
		if topics == nil {
			topics = []string{}
		}
		updated := r.PushedAt
		if r.UpdatedAt.After(updated) {
			updated = r.UpdatedAt
		}
		out = append(out, entities.Repository{
			Name:        r.Name,
			Description: r.Description,
			URL:         r.HTMLURL,
			Homepage:    r.Homepage,
			Language:    r.Language,
			Stars:       r.Stars,
			Forks:       r.Forks,
			Topics:      topics,
			UpdatedAt:   updated,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})

	c.logger.Debug("Fetched GitHub repositories", zap.String("user", c.username), zap.Int("count", len(out)))
	return out, nil
}
