package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gnomegl/gitvouch/internal/models"
)

// GraphQLClient wraps the GitHub GraphQL API. The contributions collection
// is only exposed over GraphQL, so this sits alongside the REST client
// rather than replacing it.
type GraphQLClient struct {
	gql *githubv4.Client
	cfg Config

	mu        sync.Mutex
	remaining int
	resetAt   time.Time
}

func NewGraphQLClient(token string, cfg Config) *GraphQLClient {
	return newGraphQLClient("", token, cfg)
}

// newGraphQLClient builds the client; a non-empty endpoint overrides the
// public API URL.
func newGraphQLClient(endpoint, token string, cfg Config) *GraphQLClient {
	c := &GraphQLClient{cfg: cfg, remaining: 5000}

	var base http.RoundTripper = http.DefaultTransport
	if token != "" {
		base = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   http.DefaultTransport,
		}
	}
	httpClient := &http.Client{Transport: &rateLimitTransport{base: base, client: c}}

	if endpoint == "" {
		c.gql = githubv4.NewClient(httpClient)
	} else {
		c.gql = githubv4.NewEnterpriseClient(endpoint, httpClient)
	}
	return c
}

// rateLimitTransport records the rate budget headers from every response so
// the pool can pick the client with the most room left.
type rateLimitTransport struct {
	base   http.RoundTripper
	client *GraphQLClient
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err == nil {
		t.client.updateRateLimit(resp)
	}
	return resp, err
}

func (c *GraphQLClient) updateRateLimit(resp *http.Response) {
	remaining, err := strconv.Atoi(resp.Header.Get("X-RateLimit-Remaining"))
	if err != nil {
		return
	}
	c.mu.Lock()
	c.remaining = remaining
	if unix, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		c.resetAt = time.Unix(unix, 0)
	}
	c.mu.Unlock()
}

// Remaining reports the rate budget left according to the last response.
func (c *GraphQLClient) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// ResetAt reports when the rate budget replenishes.
func (c *GraphQLClient) ResetAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resetAt
}

// GitHub answers queries for missing users with a NOT_FOUND error rather
// than a null user.
func isNotFound(err error) bool {
	return strings.Contains(err.Error(), "Could not resolve to a User")
}

// FetchProfile returns the user's profile, or nil when no such user exists.
func (c *GraphQLClient) FetchProfile(ctx context.Context, login string) (*models.Profile, error) {
	var q struct {
		User struct {
			Login     string
			Name      *string
			Bio       *string
			Company   *string
			Location  *string
			CreatedAt githubv4.DateTime
			Followers struct{ TotalCount int }
			Following struct{ TotalCount int }
		} `graphql:"user(login: $login)"`
	}

	vars := map[string]interface{}{"login": githubv4.String(login)}
	if err := c.gql.Query(ctx, &q, vars); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	if q.User.Login == "" {
		return nil, nil
	}

	return &models.Profile{
		Login:     q.User.Login,
		Name:      orEmpty(q.User.Name),
		Bio:       orEmpty(q.User.Bio),
		Company:   orEmpty(q.User.Company),
		Location:  orEmpty(q.User.Location),
		Followers: q.User.Followers.TotalCount,
		Following: q.User.Following.TotalCount,
		CreatedAt: q.User.CreatedAt.Time,
	}, nil
}

// contributedRepository mirrors the repository selection inside the
// contributions query; fields line up with models.Repository.
type contributedRepository struct {
	ID              string
	Name            string
	Owner           struct{ Login string }
	IsFork          bool
	IsTemplate      bool
	IsArchived      bool
	StargazerCount  int
	ForkCount       int
	Watchers        struct{ TotalCount int }
	PushedAt        *githubv4.DateTime
	PrimaryLanguage *struct{ Name string }
	Languages       struct {
		TotalSize int
		Edges     []struct {
			Size int
			Node struct{ Name string }
		}
	} `graphql:"languages(first: $maxLangs, orderBy: {field: SIZE, direction: DESC})"`
	DefaultBranchRef *struct {
		Target struct {
			Commit struct {
				History struct{ TotalCount int }
			} `graphql:"... on Commit"`
		}
	}
}

// FetchYearContributions returns the user's contribution aggregates for one
// year range.
func (c *GraphQLClient) FetchYearContributions(ctx context.Context, login string, yr models.YearRange) (*models.YearContributions, error) {
	from, err := time.Parse(time.RFC3339, yr.From)
	if err != nil {
		return nil, fmt.Errorf("parsing range start: %v", err)
	}
	to, err := time.Parse(time.RFC3339, yr.To)
	if err != nil {
		return nil, fmt.Errorf("parsing range end: %v", err)
	}

	var q struct {
		User struct {
			ContributionsCollection struct {
				TotalCommitContributions            int
				TotalIssueContributions             int
				TotalPullRequestContributions       int
				TotalPullRequestReviewContributions int
				CommitContributionsByRepository     []struct {
					Contributions struct{ TotalCount int }
					Repository    contributedRepository
				} `graphql:"commitContributionsByRepository(maxRepositories: $maxRepos)"`
			} `graphql:"contributionsCollection(from: $from, to: $to)"`
		} `graphql:"user(login: $login)"`
	}

	vars := map[string]interface{}{
		"login":    githubv4.String(login),
		"from":     githubv4.DateTime{Time: from},
		"to":       githubv4.DateTime{Time: to},
		"maxRepos": githubv4.Int(c.cfg.MaxRepositoriesPerYear),
		"maxLangs": githubv4.Int(c.cfg.MaxLanguagesPerRepo),
	}
	if err := c.gql.Query(ctx, &q, vars); err != nil {
		if isNotFound(err) {
			return &models.YearContributions{}, nil
		}
		return nil, fmt.Errorf("fetching %d contributions: %w", yr.Year, err)
	}

	collection := q.User.ContributionsCollection
	result := &models.YearContributions{
		TotalCommitContributions:            collection.TotalCommitContributions,
		TotalIssueContributions:             collection.TotalIssueContributions,
		TotalPullRequestContributions:       collection.TotalPullRequestContributions,
		TotalPullRequestReviewContributions: collection.TotalPullRequestReviewContributions,
	}
	for _, entry := range collection.CommitContributionsByRepository {
		result.CommitContributionsByRepository = append(result.CommitContributionsByRepository, models.RepositoryContribution{
			Contributions: models.CountNode{TotalCount: entry.Contributions.TotalCount},
			Repository:    toRepository(entry.Repository),
		})
	}
	return result, nil
}

func toRepository(repo contributedRepository) models.Repository {
	out := models.Repository{
		ID:             repo.ID,
		Name:           repo.Name,
		Owner:          models.RepositoryOwner{Login: repo.Owner.Login},
		IsFork:         repo.IsFork,
		IsTemplate:     repo.IsTemplate,
		IsArchived:     repo.IsArchived,
		StargazerCount: repo.StargazerCount,
		ForkCount:      repo.ForkCount,
		Watchers:       models.CountNode{TotalCount: repo.Watchers.TotalCount},
	}
	if repo.PushedAt != nil {
		pushed := repo.PushedAt.Time
		out.PushedAt = &pushed
	}
	if repo.PrimaryLanguage != nil {
		out.PrimaryLanguage = &models.Language{Name: repo.PrimaryLanguage.Name}
	}
	out.Languages.TotalSize = repo.Languages.TotalSize
	for _, edge := range repo.Languages.Edges {
		out.Languages.Edges = append(out.Languages.Edges, models.LanguageEdge{
			Size: edge.Size,
			Node: models.Language{Name: edge.Node.Name},
		})
	}
	if repo.DefaultBranchRef != nil {
		ref := &models.DefaultBranchRef{}
		ref.Target.History.TotalCount = repo.DefaultBranchRef.Target.Commit.History.TotalCount
		out.DefaultBranch = ref
	}
	return out
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
