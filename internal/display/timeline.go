package display

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gnomegl/gitvouch/internal/models"
)

// TimelineTable prints one row per account year, most recent first.
func TimelineTable(timeline models.Timeline) error {
	if len(timeline) == 0 {
		color.Yellow("No contribution history found")
		return nil
	}

	fmt.Println()
	headerColor.Println("CONTRIBUTION TIMELINE")

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Year", "Commits", "Issues", "PRs", "Reviews", "Owned", "Contributed"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, year := range timeline {
		data = append(data, []string{
			strconv.Itoa(year.Year),
			strconv.Itoa(year.TotalCommits),
			strconv.Itoa(year.TotalIssues),
			strconv.Itoa(year.TotalPRs),
			strconv.Itoa(year.TotalReviews),
			strconv.Itoa(len(year.OwnedRepos)),
			strconv.Itoa(len(year.Contributions)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// TimelineDetails lists each year's repositories with their commit tallies.
func TimelineDetails(timeline models.Timeline) {
	for _, year := range timeline {
		if len(year.OwnedRepos) == 0 && len(year.Contributions) == 0 {
			continue
		}

		fmt.Println()
		headerColor.Printf("%d\n", year.Year)
		fmt.Println(strings.Repeat("-", 40))

		if len(year.OwnedRepos) > 0 {
			color.Green("Owned repositories:")
			for _, entry := range year.OwnedRepos {
				printRepoLine(entry)
			}
		}
		if len(year.Contributions) > 0 {
			color.Yellow("Contributed to:")
			for _, entry := range year.Contributions {
				printRepoLine(entry)
			}
		}
	}
}

func printRepoLine(entry models.RepositoryContribution) {
	repo := entry.Repository
	line := fmt.Sprintf("  %s/%s (%d commits)", repo.Owner.Login, repo.Name, entry.Contributions.TotalCount)

	var tags []string
	if repo.IsFork {
		tags = append(tags, "fork")
	}
	if repo.IsArchived {
		tags = append(tags, "archived")
	}
	if repo.PrimaryLanguage != nil && repo.PrimaryLanguage.Name != "" {
		tags = append(tags, repo.PrimaryLanguage.Name)
	}
	if len(tags) > 0 {
		line += " [" + strings.Join(tags, ", ") + "]"
	}
	fmt.Println(line)
}
