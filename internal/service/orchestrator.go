package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	gh "github.com/google/go-github/v57/github"
	"github.com/schollz/progressbar/v3"

	"github.com/gnomegl/gitvouch/internal/analytics"
	"github.com/gnomegl/gitvouch/internal/config"
	"github.com/gnomegl/gitvouch/internal/display"
	"github.com/gnomegl/gitvouch/internal/github"
	"github.com/gnomegl/gitvouch/internal/score"
)

type Orchestrator struct {
	rest   *gh.Client
	pool   *github.ClientPool
	config *config.AppConfig
}

func NewOrchestrator(rest *gh.Client, pool *github.ClientPool, cfg *config.AppConfig) *Orchestrator {
	return &Orchestrator{
		rest:   rest,
		pool:   pool,
		config: cfg,
	}
}

func (o *Orchestrator) Run(ctx context.Context) error {
	username := o.config.Target

	fmt.Println()
	color.Blue("Target user: %s", username)

	exists, err := github.UserExists(ctx, o.rest, username)
	if err != nil {
		color.Red("[x] Error checking user: %v", err)
		return err
	}
	if !exists {
		color.Red("[x] No GitHub user found: %s", username)
		return nil
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan]Aggregating contribution years[reset]"),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(os.Stderr),
	)

	fetchCfg := github.DefaultConfig()
	analyzer := &analytics.Analyzer{
		Profiles:                 o.pool,
		Contributions:            o.pool,
		MaxConcurrentYearFetches: fetchCfg.MaxConcurrentYearFetches,
		OnYearDone:               func() { bar.Add(1) },
	}

	session := analytics.NewSession(analyzer)
	<-session.Start(ctx, username)
	state := session.State()
	bar.Finish()
	settleProgress()
	fmt.Println()
	if state.Err != nil {
		color.Red("[x] Error: %v", state.Err)
		return state.Err
	}
	if state.Profile == nil {
		color.Red("[x] No GitHub user found: %s", username)
		return nil
	}

	report := display.Report{
		Profile:  state.Profile,
		Timeline: state.Timeline,
	}
	if !o.config.NoScore {
		owned := analytics.OwnedRepositories(state.Timeline)
		authenticity := score.CalculateAuthenticityScore(owned)
		report.Authenticity = &authenticity
	}

	if o.config.Output == "json" {
		return display.ExportJSON(os.Stdout, report)
	}

	display.UserInfo(report.Profile)
	if err := display.TimelineTable(report.Timeline); err != nil {
		return err
	}
	if o.config.ShowDetails {
		display.TimelineDetails(report.Timeline)
	}
	if report.Authenticity != nil {
		display.Authenticity(*report.Authenticity)
	}

	github.DisplayRateLimit(ctx, o.rest)
	return nil
}

// sleep briefly so the spinner goroutine drains before results print
func settleProgress() {
	time.Sleep(100 * time.Millisecond)
}
