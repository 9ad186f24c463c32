package score

import (
	"math"
	"time"

	"github.com/gnomegl/gitvouch/internal/models"
)

// Component caps. The four components sum to at most 100.
const (
	maxOriginality   = 25.0
	maxActivity      = 25.0
	maxEngagement    = 25.0
	maxCodeOwnership = 25.0

	// Activity splits evenly between recency and commit volume.
	maxRecency      = 12.5
	maxCommitVolume = 12.5

	// Engagement splits across stars, forks and watchers. The caps line up
	// with log10(1001)*2.78, so each metric saturates around 1000.
	maxStarScore    = 8.33
	maxForkScore    = 8.33
	maxWatcherScore = 8.34
	logScale        = 2.78

	// Code ownership splits between language diversity and code size.
	maxDiversity = 12.5
	maxCodeSize  = 12.5

	recentWindow      = 90 * 24 * time.Hour
	commitSaturation  = 50.0     // avg commits per repo at full volume score
	sizeSaturation    = 500000.0 // avg bytes per repo at full size score
	diversityLanguage = 5.0      // distinct languages at full diversity score
)

// Heuristic warning messages, in detection order.
const (
	FlagNoRepositories   = "No repositories found"
	FlagFewOriginals     = "Less than 30% original repositories"
	FlagForkHeavy        = "Significantly more forks than original repos"
	FlagStaleRepos       = "Less than 20% repos active in last 90 days"
	FlagLowCommits       = "Low average commits per repository"
	FlagNoStars          = "No stars across all repositories"
	FlagFewLanguages     = "Limited language diversity (less than 2 languages)"
	FlagMostlyArchived   = "More than 50% repos are archived"
	FlagNoOriginalsAtAll = "No original repositories despite having many repos"
)

// CalculateAuthenticityScore rates a repository set 0-100 across four capped
// components and collects warning flags for suspicious patterns. It never
// fails: missing optional fields count as zero.
func CalculateAuthenticityScore(repos []models.Repository) models.AuthenticityScore {
	return calculateAt(repos, time.Now().UTC())
}

func calculateAt(repos []models.Repository, now time.Time) models.AuthenticityScore {
	if len(repos) == 0 {
		return models.AuthenticityScore{
			Score:    0,
			Category: models.CategorySuspicious,
			Flags:    []string{FlagNoRepositories},
		}
	}

	var flags []string
	totalRepos := len(repos)

	meta := models.ScoreMetadata{TotalRepos: totalRepos}
	for i := range repos {
		r := &repos[i]
		if !r.IsFork && !r.IsTemplate {
			meta.OriginalRepos++
		}
		if r.IsFork {
			meta.ForkedRepos++
		}
		if r.IsArchived {
			meta.ArchivedRepos++
		}
		if r.IsTemplate {
			meta.TemplateRepos++
		}
	}

	// Originality: share of repos that are neither forks nor templates.
	originalRatio := float64(meta.OriginalRepos) / float64(totalRepos)
	originality := originalRatio * maxOriginality
	// The 0.35 gate is intentionally wider than the message suggests.
	if originalRatio <= 0.35 {
		flags = append(flags, FlagFewOriginals)
	}
	if meta.ForkedRepos > meta.OriginalRepos*2 {
		flags = append(flags, FlagForkHeavy)
	}

	// Activity: recent pushes plus average commit volume.
	var totalCommits, recentlyActive int
	for i := range repos {
		totalCommits += repos[i].CommitCount()
		if repos[i].RecentlyActive(now, recentWindow) {
			recentlyActive++
		}
	}
	recentRatio := float64(recentlyActive) / float64(totalRepos)
	avgCommits := float64(totalCommits) / float64(totalRepos)
	activity := recentRatio*maxRecency + math.Min(avgCommits/commitSaturation*maxCommitVolume, maxCommitVolume)
	if recentRatio < 0.2 {
		flags = append(flags, FlagStaleRepos)
	}
	if avgCommits < 5 {
		flags = append(flags, FlagLowCommits)
	}

	// Engagement: log-scaled stars, forks and watchers.
	var totalStars, totalForks, totalWatchers int
	for i := range repos {
		totalStars += repos[i].StargazerCount
		totalForks += repos[i].ForkCount
		totalWatchers += repos[i].TotalWatchers()
	}
	engagement := logScore(totalStars, maxStarScore) +
		logScore(totalForks, maxForkScore) +
		logScore(totalWatchers, maxWatcherScore)
	if totalStars == 0 && totalRepos > 5 {
		flags = append(flags, FlagNoStars)
	}

	// Code ownership: language spread and average repo size.
	languages := make(map[string]struct{})
	var totalCodeSize int
	for i := range repos {
		r := &repos[i]
		if r.PrimaryLanguage != nil && r.PrimaryLanguage.Name != "" {
			languages[r.PrimaryLanguage.Name] = struct{}{}
		}
		for _, edge := range r.Languages.Edges {
			if edge.Node.Name != "" {
				languages[edge.Node.Name] = struct{}{}
			}
		}
		totalCodeSize += r.Languages.TotalSize
	}
	diversity := math.Min(float64(len(languages))/diversityLanguage*maxDiversity, maxDiversity)
	avgSize := float64(totalCodeSize) / float64(totalRepos)
	ownership := diversity + math.Min(avgSize/sizeSaturation*maxCodeSize, maxCodeSize)
	if len(languages) < 2 {
		flags = append(flags, FlagFewLanguages)
	}

	if float64(meta.ArchivedRepos) > float64(totalRepos)*0.5 {
		flags = append(flags, FlagMostlyArchived)
	}
	if totalRepos > 20 && meta.OriginalRepos == 0 {
		flags = append(flags, FlagNoOriginalsAtAll)
	}

	total := int(math.Round(originality + activity + engagement + ownership))

	return models.AuthenticityScore{
		Score:    total,
		Category: categorize(total),
		Breakdown: models.ScoreBreakdown{
			OriginalityScore:   round1(originality),
			ActivityScore:      round1(activity),
			EngagementScore:    round1(engagement),
			CodeOwnershipScore: round1(ownership),
		},
		Flags:    flags,
		Metadata: meta,
	}
}

func logScore(total int, limit float64) float64 {
	return math.Min(math.Log10(float64(total)+1)*logScale, limit)
}

func categorize(total int) models.Category {
	switch {
	case total >= 80:
		return models.CategoryHigh
	case total >= 60:
		return models.CategoryMedium
	case total >= 40:
		return models.CategoryLow
	default:
		return models.CategorySuspicious
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
