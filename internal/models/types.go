package models

import "time"

// Repository is the metadata snapshot the GraphQL API returns for a single
// repository. Optional fields stay nullable; use the accessor methods when a
// zero default is wanted.
type Repository struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Owner           RepositoryOwner    `json:"owner"`
	IsFork          bool               `json:"isFork"`
	IsTemplate      bool               `json:"isTemplate"`
	IsArchived      bool               `json:"isArchived"`
	StargazerCount  int                `json:"stargazerCount"`
	ForkCount       int                `json:"forkCount"`
	Watchers        CountNode          `json:"watchers"`
	PushedAt        *time.Time         `json:"pushedAt"`
	PrimaryLanguage *Language          `json:"primaryLanguage"`
	Languages       LanguageConnection `json:"languages"`
	DefaultBranch   *DefaultBranchRef  `json:"defaultBranchRef"`
}

type RepositoryOwner struct {
	Login string `json:"login"`
}

type CountNode struct {
	TotalCount int `json:"totalCount"`
}

type Language struct {
	Name string `json:"name"`
}

type LanguageConnection struct {
	TotalSize int            `json:"totalSize"`
	Edges     []LanguageEdge `json:"edges"`
}

type LanguageEdge struct {
	Size int      `json:"size"`
	Node Language `json:"node"`
}

type DefaultBranchRef struct {
	Target struct {
		History CountNode `json:"history"`
	} `json:"target"`
}

// CommitCount returns the default-branch commit total, or 0 when the
// repository has no default branch.
func (r *Repository) CommitCount() int {
	if r.DefaultBranch == nil {
		return 0
	}
	return r.DefaultBranch.Target.History.TotalCount
}

// TotalWatchers returns the watcher count.
func (r *Repository) TotalWatchers() int {
	return r.Watchers.TotalCount
}

// RecentlyActive reports whether the repository was pushed to within the
// given window before now. Repositories that were never pushed are inactive.
func (r *Repository) RecentlyActive(now time.Time, window time.Duration) bool {
	if r.PushedAt == nil {
		return false
	}
	return now.Sub(*r.PushedAt) <= window
}

// Profile is the subset of a user profile the analyzer needs.
type Profile struct {
	Login     string    `json:"login"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	Company   string    `json:"company"`
	Location  string    `json:"location"`
	Followers int       `json:"followers"`
	Following int       `json:"following"`
	CreatedAt time.Time `json:"createdAt"`
}

// YearRange bounds one calendar year of a user's account lifetime.
type YearRange struct {
	Year int
	From string
	To   string
}

// RepositoryContribution pairs a commit tally with the repository it was
// made against.
type RepositoryContribution struct {
	Contributions CountNode  `json:"contributions"`
	Repository    Repository `json:"repository"`
}

// YearContributions mirrors one contributionsCollection response.
type YearContributions struct {
	TotalCommitContributions            int                      `json:"totalCommitContributions"`
	TotalIssueContributions             int                      `json:"totalIssueContributions"`
	TotalPullRequestContributions       int                      `json:"totalPullRequestContributions"`
	TotalPullRequestReviewContributions int                      `json:"totalPullRequestReviewContributions"`
	CommitContributionsByRepository     []RepositoryContribution `json:"commitContributionsByRepository"`
}

// YearData is one timeline entry: a year's aggregate counts plus its
// repository contributions split into owned and external sets.
type YearData struct {
	Year          int                      `json:"year"`
	TotalCommits  int                      `json:"totalCommits"`
	TotalIssues   int                      `json:"totalIssues"`
	TotalPRs      int                      `json:"totalPRs"`
	TotalReviews  int                      `json:"totalReviews"`
	OwnedRepos    []RepositoryContribution `json:"ownedRepos"`
	Contributions []RepositoryContribution `json:"contributions"`
}

// Timeline is ordered by year descending.
type Timeline []YearData

// Category buckets an authenticity score.
type Category string

const (
	CategoryHigh       Category = "High"
	CategoryMedium     Category = "Medium"
	CategoryLow        Category = "Low"
	CategorySuspicious Category = "Suspicious"
)

type ScoreBreakdown struct {
	OriginalityScore   float64 `json:"originalityScore"`
	ActivityScore      float64 `json:"activityScore"`
	EngagementScore    float64 `json:"engagementScore"`
	CodeOwnershipScore float64 `json:"codeOwnershipScore"`
}

type ScoreMetadata struct {
	TotalRepos    int `json:"totalRepos"`
	OriginalRepos int `json:"originalRepos"`
	ForkedRepos   int `json:"forkedRepos"`
	ArchivedRepos int `json:"archivedRepos"`
	TemplateRepos int `json:"templateRepos"`
}

// AuthenticityScore is the scoring engine's verdict over a repository set.
type AuthenticityScore struct {
	Score     int            `json:"score"`
	Category  Category       `json:"category"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	Flags     []string       `json:"flags"`
	Metadata  ScoreMetadata  `json:"metadata"`
}
