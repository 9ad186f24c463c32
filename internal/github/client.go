package github

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/go-github/v57/github"
	"github.com/urfave/cli/v2"
	"golang.org/x/oauth2"
)

func GetGithubClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	return github.NewClient(tc)
}

func GetToken(c *cli.Context) string {
	if c.String("token") != "" {
		token := c.String("token")
		saveToken(token)
		return token
	}

	token := os.Getenv("GITVOUCH_GITHUB_TOKEN")
	if token != "" {
		return token
	}

	configDir, err := os.UserConfigDir()
	if err == nil {
		tokenFile := filepath.Join(configDir, "gitvouch", "token")
		if data, err := os.ReadFile(tokenFile); err == nil {
			token = strings.TrimSpace(string(data))
			if token != "" {
				return token
			}
		}
	}

	color.Yellow("\nA GitHub personal access token is needed for the GraphQL contribution data and to avoid rate limits.")
	color.Blue("To create a new token:")
	fmt.Println("1. Visit: https://github.com/settings/tokens")
	fmt.Println("2. Click 'Generate new token' (classic)")
	fmt.Println("3. Give it a name (e.g. 'gitvouch')")
	fmt.Println("4. Select the following scopes:")
	color.Green("   - read:user")
	color.Green("   - repo (only if you want private repo stats)")
	fmt.Println("5. Click 'Generate token' at the bottom")
	fmt.Println("6. Copy the token and paste it below")
	fmt.Println("\nNote: The token will be saved locally for future use")

	fmt.Print("\nPaste your token here (or press Enter to continue without one): ")
	var input string
	fmt.Scanln(&input)
	token = strings.TrimSpace(input)

	if token != "" {
		saveToken(token)
	} else {
		color.Yellow("\nRunning without a token. Contribution history requires authentication and will likely fail.")
	}

	return token
}

func saveToken(token string) {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		return
	}
	configPath := filepath.Join(configDir, "gitvouch")
	os.MkdirAll(configPath, 0700)
	tokenFile := filepath.Join(configPath, "token")
	if err := os.WriteFile(tokenFile, []byte(token), 0600); err == nil {
		color.Green("Token saved successfully")
	}
}

func UserExists(ctx context.Context, client *github.Client, username string) (bool, error) {
	_, resp, err := client.Users.Get(ctx, username)
	if err != nil {
		if resp != nil && resp.StatusCode == 404 {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func ValidateToken(ctx context.Context, client *github.Client) error {
	_, resp, err := client.Users.Get(ctx, "")
	if err != nil {
		if resp != nil {
			switch resp.StatusCode {
			case 401:
				return fmt.Errorf("invalid GitHub token")
			case 403:
				// Rate limited - skip validation, token is likely valid
				color.Yellow("⚠️  Rate limited, skipping token validation")
				return nil
			}
		}
		return fmt.Errorf("error validating token: %v", err)
	}
	return nil
}

type RateLimitInfo struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

func GetRateLimit(ctx context.Context, client *github.Client) (*RateLimitInfo, error) {
	limits, _, err := client.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching rate limit: %v", err)
	}
	core := limits.GetCore()
	if core == nil {
		return nil, fmt.Errorf("no core rate limit in response")
	}
	return &RateLimitInfo{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		Reset:     core.Reset.Time,
	}, nil
}

func DisplayRateLimit(ctx context.Context, client *github.Client) {
	info, err := GetRateLimit(ctx, client)
	if err != nil {
		return
	}

	percentage := float64(info.Remaining) / float64(info.Limit) * 100
	if percentage > 50 {
		color.Green("\nAPI rate limit: %d/%d remaining (%.1f%%)", info.Remaining, info.Limit, percentage)
	} else if percentage > 20 {
		color.Yellow("\nAPI rate limit: %d/%d remaining (%.1f%%)", info.Remaining, info.Limit, percentage)
	} else {
		color.Red("\nAPI rate limit: %d/%d remaining (%.1f%%), resets at %s",
			info.Remaining, info.Limit, percentage, info.Reset.Format("15:04:05"))
	}
}
