package display

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gnomegl/gitvouch/internal/models"
)

var headerColor = color.New(color.Bold, color.FgCyan)

func UserInfo(profile *models.Profile) {
	if profile == nil {
		return
	}

	fmt.Println()
	headerColor.Printf("USER: %s\n", profile.Login)

	printField("Name", profile.Name)
	printField("Company", profile.Company)
	printField("Location", profile.Location)
	printField("Bio", profile.Bio)

	fmt.Println()
	fmt.Printf("%s %d  %s %d\n",
		color.WhiteString("Followers:"), profile.Followers,
		color.WhiteString("Following:"), profile.Following)

	if !profile.CreatedAt.IsZero() {
		fmt.Printf("%s %s\n", color.WhiteString("Created:"), profile.CreatedAt.Format("2006-01-02"))
	}

	fmt.Println()
}

func printField(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("%s %s\n", color.WhiteString(label+":"), value)
}
