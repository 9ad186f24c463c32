package analytics

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gnomegl/gitvouch/internal/models"
)

// ProfileFetcher resolves a login to a profile. A nil profile with a nil
// error means the user does not exist.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, login string) (*models.Profile, error)
}

// ContributionFetcher returns a user's contribution aggregates for one
// year range.
type ContributionFetcher interface {
	FetchYearContributions(ctx context.Context, login string, yr models.YearRange) (*models.YearContributions, error)
}

// Result is a settled pipeline run. A nil Profile with an empty Timeline
// means the user was not found (or the username was empty).
type Result struct {
	Profile  *models.Profile `json:"profile"`
	Timeline models.Timeline `json:"timeline"`
}

// Analyzer aggregates a user's full contribution history: one query per
// account year, fetched concurrently, partitioned into owned and external
// repositories and sorted most recent first.
type Analyzer struct {
	Profiles      ProfileFetcher
	Contributions ContributionFetcher

	// MaxConcurrentYearFetches bounds the fan-out; <= 0 means 5.
	MaxConcurrentYearFetches int

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time

	// OnYearDone, when set, is called after each year query settles.
	OnYearDone func()
}

// Run fetches the profile and every account year's contributions. A failed
// year query fails the whole run; the timeline is all-or-nothing.
func (a *Analyzer) Run(ctx context.Context, username string) (*Result, error) {
	if username == "" {
		return &Result{}, nil
	}

	profile, err := a.Profiles.FetchProfile(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("fetching profile for %s: %w", username, err)
	}
	if profile == nil {
		return &Result{}, nil
	}

	now := time.Now()
	if a.Now != nil {
		now = a.Now()
	}
	ranges := YearRanges(profile.CreatedAt, now)

	years, err := a.fetchAllYears(ctx, username, ranges)
	if err != nil {
		return nil, err
	}

	timeline := make(models.Timeline, 0, len(ranges))
	for i, yc := range years {
		owned, contributed := partition(yc.CommitContributionsByRepository, username)
		timeline = append(timeline, models.YearData{
			Year:          ranges[i].Year,
			TotalCommits:  yc.TotalCommitContributions,
			TotalIssues:   yc.TotalIssueContributions,
			TotalPRs:      yc.TotalPullRequestContributions,
			TotalReviews:  yc.TotalPullRequestReviewContributions,
			OwnedRepos:    owned,
			Contributions: contributed,
		})
	}
	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].Year > timeline[j].Year
	})

	return &Result{Profile: profile, Timeline: timeline}, nil
}

// fetchAllYears issues one query per range concurrently and waits for all of
// them. The first failure wins; completion order does not matter because
// results land in their range's slot.
func (a *Analyzer) fetchAllYears(ctx context.Context, username string, ranges []models.YearRange) ([]*models.YearContributions, error) {
	limit := a.MaxConcurrentYearFetches
	if limit <= 0 {
		limit = 5
	}

	results := make([]*models.YearContributions, len(ranges))
	sem := make(chan bool, limit)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, yr := range ranges {
		wg.Add(1)
		go func(i int, yr models.YearRange) {
			defer wg.Done()
			sem <- true
			defer func() { <-sem }()

			yc, err := a.Contributions.FetchYearContributions(ctx, username, yr)
			mu.Lock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("fetching %d contributions: %w", yr.Year, err)
				}
			} else {
				results[i] = yc
			}
			mu.Unlock()

			if a.OnYearDone != nil {
				a.OnYearDone()
			}
		}(i, yr)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	for i := range results {
		if results[i] == nil {
			results[i] = &models.YearContributions{}
		}
	}
	return results, nil
}

// partition splits a year's repository contributions into those owned by
// the user (exact, case-sensitive login match) and the rest, preserving
// relative order within each side.
func partition(entries []models.RepositoryContribution, username string) (owned, contributed []models.RepositoryContribution) {
	for _, entry := range entries {
		if entry.Repository.Owner.Login == username {
			owned = append(owned, entry)
		} else {
			contributed = append(contributed, entry)
		}
	}
	return owned, contributed
}

// OwnedRepositories flattens the timeline's owned contributions into the
// repository set the scoring engine consumes. The same repository shows up
// in every year it was active, so entries are deduplicated by ID with the
// first occurrence winning.
func OwnedRepositories(timeline models.Timeline) []models.Repository {
	seen := make(map[string]struct{})
	var repos []models.Repository
	for _, year := range timeline {
		for _, entry := range year.OwnedRepos {
			if _, ok := seen[entry.Repository.ID]; ok {
				continue
			}
			seen[entry.Repository.ID] = struct{}{}
			repos = append(repos, entry.Repository)
		}
	}
	return repos
}
