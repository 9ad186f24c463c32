package cli

import (
	"github.com/gnomegl/gitvouch/internal/utils"
	"github.com/urfave/cli/v2"
)

const helpTemplate = `{{.Name}} - {{.Usage}}

Usage: {{.HelpName}} [options] <username>

Options:
   {{range .VisibleFlags}}{{.}}
   {{end}}`

func NewApp(action cli.ActionFunc) *cli.App {
	cli.AppHelpTemplate = helpTemplate

	return &cli.App{
		Name:    "gitvouch",
		Usage:   "Analyze a GitHub user's contribution history and rate how authentic the account looks",
		Version: "v" + utils.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "token",
				Aliases: []string{"t"},
				Usage:   "GitHub personal access token",
				EnvVars: []string{"GITVOUCH_GITHUB_TOKEN"},
			},
			&cli.StringFlag{
				Name:  "token-file",
				Usage: "File with extra tokens, one per line, to spread rate limits",
			},
			&cli.BoolFlag{
				Name:    "details",
				Aliases: []string{"d"},
				Usage:   "List each year's repositories and commit counts",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format (text, json)",
				Value:   "text",
			},
			&cli.BoolFlag{
				Name:    "no-score",
				Aliases: []string{"n"},
				Usage:   "Skip the authenticity score",
			},
		},
		Action:    action,
		ArgsUsage: "<username>",
		Authors: []*cli.Author{
			{Name: "gnomegl"},
		},
	}
}
