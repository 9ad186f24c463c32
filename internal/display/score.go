package display

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gnomegl/gitvouch/internal/models"
)

// Authenticity prints the score card: total, category, component breakdown
// and any warning flags.
func Authenticity(result models.AuthenticityScore) {
	fmt.Println()
	headerColor.Println("AUTHENTICITY")
	fmt.Println(strings.Repeat("-", 40))

	categoryPrinter(result.Category)("Score: %d/100 (%s)", result.Score, result.Category)

	fmt.Printf("%s %.1f/25  %s %.1f/25\n",
		color.WhiteString("Originality:"), result.Breakdown.OriginalityScore,
		color.WhiteString("Activity:"), result.Breakdown.ActivityScore)
	fmt.Printf("%s %.1f/25  %s %.1f/25\n",
		color.WhiteString("Engagement:"), result.Breakdown.EngagementScore,
		color.WhiteString("Ownership:"), result.Breakdown.CodeOwnershipScore)

	meta := result.Metadata
	fmt.Printf("%s %d total, %d original, %d forked, %d archived, %d templates\n",
		color.WhiteString("Repos:"),
		meta.TotalRepos, meta.OriginalRepos, meta.ForkedRepos, meta.ArchivedRepos, meta.TemplateRepos)

	if len(result.Flags) > 0 {
		fmt.Println()
		color.Red("Warning flags:")
		for _, flag := range result.Flags {
			color.Red("  - %s", flag)
		}
	}
}

func categoryPrinter(category models.Category) func(format string, a ...interface{}) {
	switch category {
	case models.CategoryHigh:
		return color.Green
	case models.CategoryMedium:
		return color.Yellow
	case models.CategoryLow:
		return color.Magenta
	default:
		return color.Red
	}
}
