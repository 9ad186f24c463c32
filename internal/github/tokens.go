package github

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadTokenFile loads one token per line, skipping blanks and # comments.
func ReadTokenFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open token file: %v", err)
	}
	defer f.Close()

	var tokens []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading token file: %v", err)
	}

	if len(tokens) == 0 {
		return nil, fmt.Errorf("token file is empty: %s", path)
	}

	return tokens, nil
}

// CollectTokens assembles the token list for the pool: the primary token
// first, extras from GITVOUCH_GITHUB_TOKENS (comma-separated) and an
// optional token file.
func CollectTokens(primary, tokenFile string) ([]string, error) {
	seen := make(map[string]struct{})
	var tokens []string
	add := func(token string) {
		token = strings.TrimSpace(token)
		if token == "" {
			return
		}
		if _, ok := seen[token]; ok {
			return
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}

	add(primary)
	for _, token := range strings.Split(os.Getenv("GITVOUCH_GITHUB_TOKENS"), ",") {
		add(token)
	}
	if tokenFile != "" {
		fromFile, err := ReadTokenFile(tokenFile)
		if err != nil {
			return nil, err
		}
		for _, token := range fromFile {
			add(token)
		}
	}

	return tokens, nil
}
