package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnomegl/gitvouch/internal/models"
)

type fakeProfiles struct {
	mu      sync.Mutex
	profile *models.Profile
	err     error
	calls   int
}

func (f *fakeProfiles) FetchProfile(ctx context.Context, login string) (*models.Profile, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.profile, f.err
}

type fakeContributions struct {
	mu      sync.Mutex
	byYear  map[int]*models.YearContributions
	errYear int
	calls   []int
	block   chan struct{} // when set, every fetch waits on it
}

func (f *fakeContributions) FetchYearContributions(ctx context.Context, login string, yr models.YearRange) (*models.YearContributions, error) {
	f.mu.Lock()
	f.calls = append(f.calls, yr.Year)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.errYear != 0 && yr.Year == f.errYear {
		return nil, errors.New("boom")
	}
	if yc, ok := f.byYear[yr.Year]; ok {
		return yc, nil
	}
	return &models.YearContributions{}, nil
}

func contribution(owner, name string, commits int) models.RepositoryContribution {
	return models.RepositoryContribution{
		Contributions: models.CountNode{TotalCount: commits},
		Repository: models.Repository{
			ID:    owner + "/" + name,
			Name:  name,
			Owner: models.RepositoryOwner{Login: owner},
		},
	}
}

func testAnalyzer(p *fakeProfiles, c *fakeContributions) *Analyzer {
	return &Analyzer{
		Profiles:      p,
		Contributions: c,
		Now: func() time.Time {
			return time.Date(2025, time.November, 17, 0, 0, 0, 0, time.UTC)
		},
	}
}

func testProfile() *models.Profile {
	return &models.Profile{
		Login:     "octocat",
		Name:      "The Octocat",
		CreatedAt: time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRunEmptyUsername(t *testing.T) {
	profiles := &fakeProfiles{}
	contribs := &fakeContributions{}

	result, err := testAnalyzer(profiles, contribs).Run(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, result.Profile)
	assert.Empty(t, result.Timeline)
	assert.Zero(t, profiles.calls, "empty username must not fetch")
	assert.Empty(t, contribs.calls)
}

func TestRunUserNotFound(t *testing.T) {
	profiles := &fakeProfiles{profile: nil}
	contribs := &fakeContributions{}

	result, err := testAnalyzer(profiles, contribs).Run(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, result.Profile)
	assert.Empty(t, result.Timeline)
	assert.Empty(t, contribs.calls, "missing user must not trigger year fetches")
}

func TestRunProfileError(t *testing.T) {
	profiles := &fakeProfiles{err: errors.New("api down")}

	result, err := testAnalyzer(profiles, &fakeContributions{}).Run(context.Background(), "octocat")
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestRunTimelineOrderAndCounts(t *testing.T) {
	profiles := &fakeProfiles{profile: testProfile()}
	contribs := &fakeContributions{
		byYear: map[int]*models.YearContributions{
			2024: {TotalCommitContributions: 42, TotalIssueContributions: 3, TotalPullRequestContributions: 7, TotalPullRequestReviewContributions: 1},
		},
	}

	result, err := testAnalyzer(profiles, contribs).Run(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, result.Timeline, 3)

	// Most recent first, regardless of fetch completion order.
	assert.Equal(t, []int{2025, 2024, 2023}, []int{
		result.Timeline[0].Year, result.Timeline[1].Year, result.Timeline[2].Year,
	})
	assert.Equal(t, 42, result.Timeline[1].TotalCommits)
	assert.Equal(t, 3, result.Timeline[1].TotalIssues)
	assert.Equal(t, 7, result.Timeline[1].TotalPRs)
	assert.Equal(t, 1, result.Timeline[1].TotalReviews)
}

func TestRunPartitionsOwnership(t *testing.T) {
	entries := []models.RepositoryContribution{
		contribution("octocat", "alpha", 10),
		contribution("someoneelse", "beta", 5),
		contribution("octocat", "gamma", 2),
		contribution("Octocat", "delta", 1), // case differs: not owned
	}
	profiles := &fakeProfiles{profile: testProfile()}
	contribs := &fakeContributions{
		byYear: map[int]*models.YearContributions{
			2025: {CommitContributionsByRepository: entries},
		},
	}

	result, err := testAnalyzer(profiles, contribs).Run(context.Background(), "octocat")
	require.NoError(t, err)

	year := result.Timeline[0]
	require.Equal(t, 2025, year.Year)
	require.Len(t, year.OwnedRepos, 2)
	require.Len(t, year.Contributions, 2)
	assert.Equal(t, len(entries), len(year.OwnedRepos)+len(year.Contributions))

	// Relative order preserved within each side.
	assert.Equal(t, "alpha", year.OwnedRepos[0].Repository.Name)
	assert.Equal(t, "gamma", year.OwnedRepos[1].Repository.Name)
	assert.Equal(t, "beta", year.Contributions[0].Repository.Name)
	assert.Equal(t, "delta", year.Contributions[1].Repository.Name)

	for _, entry := range year.OwnedRepos {
		assert.Equal(t, "octocat", entry.Repository.Owner.Login)
	}
	for _, entry := range year.Contributions {
		assert.NotEqual(t, "octocat", entry.Repository.Owner.Login)
	}
}

func TestRunYearErrorFailsWholeRun(t *testing.T) {
	profiles := &fakeProfiles{profile: testProfile()}
	contribs := &fakeContributions{errYear: 2024}

	result, err := testAnalyzer(profiles, contribs).Run(context.Background(), "octocat")
	require.Error(t, err)
	assert.ErrorContains(t, err, "2024")
	assert.Nil(t, result)
}

func TestRunFansOutConcurrently(t *testing.T) {
	profiles := &fakeProfiles{profile: testProfile()}
	block := make(chan struct{})
	contribs := &fakeContributions{block: block}

	a := testAnalyzer(profiles, contribs)
	done := make(chan *Result, 1)
	go func() {
		result, err := a.Run(context.Background(), "octocat")
		require.NoError(t, err)
		done <- result
	}()

	// All three year queries must be in flight before any of them completes.
	assert.Eventually(t, func() bool {
		contribs.mu.Lock()
		defer contribs.mu.Unlock()
		return len(contribs.calls) == 3
	}, time.Second, time.Millisecond)

	close(block)
	result := <-done
	assert.Len(t, result.Timeline, 3)
}

func TestOwnedRepositoriesDedupes(t *testing.T) {
	timeline := models.Timeline{
		{Year: 2025, OwnedRepos: []models.RepositoryContribution{
			contribution("octocat", "alpha", 10),
			contribution("octocat", "beta", 4),
		}},
		{Year: 2024, OwnedRepos: []models.RepositoryContribution{
			contribution("octocat", "alpha", 20),
			contribution("octocat", "gamma", 1),
		}},
	}

	repos := OwnedRepositories(timeline)
	require.Len(t, repos, 3)
	assert.Equal(t, "alpha", repos[0].Name)
	assert.Equal(t, "beta", repos[1].Name)
	assert.Equal(t, "gamma", repos[2].Name)
}
