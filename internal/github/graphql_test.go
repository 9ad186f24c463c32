package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnomegl/gitvouch/internal/models"
)

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func testClient(t *testing.T, handler http.HandlerFunc) *GraphQLClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return newGraphQLClient(server.URL, "", DefaultConfig())
}

func TestFetchProfile(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "octocat", req.Variables["login"])

		w.Header().Set("X-RateLimit-Remaining", "4999")
		w.Header().Set("X-RateLimit-Reset", "1767225600")
		w.Write([]byte(`{"data":{"user":{
			"login":"octocat","name":"The Octocat","bio":"","company":"GitHub",
			"location":"San Francisco","createdAt":"2011-01-25T18:44:36Z",
			"followers":{"totalCount":5000},"following":{"totalCount":9}}}}`))
	})

	profile, err := client.FetchProfile(context.Background(), "octocat")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "octocat", profile.Login)
	assert.Equal(t, "The Octocat", profile.Name)
	assert.Equal(t, 5000, profile.Followers)
	assert.Equal(t, 2011, profile.CreatedAt.Year())
	assert.Equal(t, 4999, client.Remaining())
}

func TestFetchProfileNotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"null user", `{"data":{"user":null}}`},
		{"not found error", `{"data":null,"errors":[{"message":"Could not resolve to a User with the login of 'ghost'.","type":"NOT_FOUND"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			profile, err := client.FetchProfile(context.Background(), "ghost")
			require.NoError(t, err)
			assert.Nil(t, profile)
		})
	}
}

func TestFetchProfileGraphQLError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"errors":[{"message":"Something went wrong","type":"INTERNAL"}]}`))
	})

	_, err := client.FetchProfile(context.Background(), "octocat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Something went wrong")
}

func TestFetchProfileHTTPError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	})

	_, err := client.FetchProfile(context.Background(), "octocat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestFetchYearContributions(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "octocat", req.Variables["login"])
		assert.Equal(t, "2024-01-01T00:00:00Z", req.Variables["from"])
		assert.Equal(t, "2024-12-31T23:59:59Z", req.Variables["to"])
		assert.Equal(t, float64(100), req.Variables["maxRepos"])

		w.Write([]byte(`{"data":{"user":{"contributionsCollection":{
			"totalCommitContributions":120,
			"totalIssueContributions":4,
			"totalPullRequestContributions":9,
			"totalPullRequestReviewContributions":2,
			"commitContributionsByRepository":[{
				"contributions":{"totalCount":80},
				"repository":{
					"id":"R_1","name":"hello-world","owner":{"login":"octocat"},
					"isFork":false,"isTemplate":false,"isArchived":false,
					"stargazerCount":12,"forkCount":3,
					"watchers":{"totalCount":4},
					"pushedAt":"2024-06-01T10:00:00Z",
					"primaryLanguage":{"name":"Go"},
					"languages":{"totalSize":54321,"edges":[
						{"size":50000,"node":{"name":"Go"}},
						{"size":4321,"node":{"name":"Shell"}}]},
					"defaultBranchRef":{"target":{"history":{"totalCount":200}}}
				}
			}]}}}}`))
	})

	yr := models.YearRange{Year: 2024, From: "2024-01-01T00:00:00.000Z", To: "2024-12-31T23:59:59.000Z"}
	yc, err := client.FetchYearContributions(context.Background(), "octocat", yr)
	require.NoError(t, err)

	assert.Equal(t, 120, yc.TotalCommitContributions)
	require.Len(t, yc.CommitContributionsByRepository, 1)

	entry := yc.CommitContributionsByRepository[0]
	assert.Equal(t, 80, entry.Contributions.TotalCount)

	repo := entry.Repository
	assert.Equal(t, "hello-world", repo.Name)
	assert.Equal(t, "octocat", repo.Owner.Login)
	assert.Equal(t, 200, repo.CommitCount())
	assert.Equal(t, 4, repo.TotalWatchers())
	require.NotNil(t, repo.PushedAt)
	assert.Equal(t, 54321, repo.Languages.TotalSize)
	require.Len(t, repo.Languages.Edges, 2)
	assert.Equal(t, "Go", repo.Languages.Edges[0].Node.Name)
}
