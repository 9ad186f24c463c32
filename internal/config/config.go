package config

import (
	"github.com/urfave/cli/v2"
)

type AppConfig struct {
	Target      string
	ShowDetails bool
	Output      string
	NoScore     bool
	TokenFile   string
}

func ParseConfig(c *cli.Context) (*AppConfig, error) {
	if c.NArg() == 0 {
		return nil, cli.ShowAppHelp(c)
	}

	return &AppConfig{
		Target:      c.Args().First(),
		ShowDetails: c.Bool("details"),
		Output:      c.String("output"),
		NoScore:     c.Bool("no-score"),
		TokenFile:   c.String("token-file"),
	}, nil
}
