package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/gnomegl/gitvouch/internal/art"
	"github.com/gnomegl/gitvouch/internal/auth"
	appcli "github.com/gnomegl/gitvouch/internal/cli"
	"github.com/gnomegl/gitvouch/internal/config"
	"github.com/gnomegl/gitvouch/internal/github"
	"github.com/gnomegl/gitvouch/internal/service"
)

func runApp(c *cli.Context) error {
	cfg, err := config.ParseConfig(c)
	if err != nil || cfg == nil {
		return err
	}

	ctx := context.Background()

	restClient, token, err := auth.SetupGitHubClient(c, ctx)
	if err != nil {
		color.Red("[x] %v", err)
		return err
	}

	tokens, err := github.CollectTokens(token, cfg.TokenFile)
	if err != nil {
		color.Red("[x] %v", err)
		return err
	}
	pool := github.NewClientPool(tokens, github.DefaultConfig())
	if pool.Size() > 1 {
		color.Blue("Using %d tokens", pool.Size())
	}

	orchestrator := service.NewOrchestrator(restClient, pool, cfg)
	return orchestrator.Run(ctx)
}

func main() {
	// Configure logger to only show the message
	log.SetFlags(0)

	app := appcli.NewApp(runApp)
	app.Before = func(c *cli.Context) error {
		if c.Args().Len() == 0 && !c.Bool("help") && !c.Bool("version") {
			art.PrintLogo()
			cli.ShowAppHelp(c)
			return cli.Exit("", 1)
		}
		if !c.Bool("help") && !c.Bool("version") && c.String("output") != "json" {
			art.PrintLogo()
			fmt.Println()
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
