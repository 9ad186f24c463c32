package github

import (
	"context"
	"sync"
	"time"

	"github.com/gnomegl/gitvouch/internal/models"
)

// ClientPool spreads GraphQL queries across multiple tokens, preferring the
// client with the largest remaining rate budget.
type ClientPool struct {
	clients []*GraphQLClient
	mu      sync.Mutex
}

func NewClientPool(tokens []string, cfg Config) *ClientPool {
	if len(tokens) == 0 {
		return &ClientPool{clients: []*GraphQLClient{NewGraphQLClient("", cfg)}}
	}

	pool := &ClientPool{clients: make([]*GraphQLClient, 0, len(tokens))}
	for _, token := range tokens {
		pool.clients = append(pool.clients, NewGraphQLClient(token, cfg))
	}
	return pool
}

func (p *ClientPool) GetClient() *GraphQLClient {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.clients) == 1 {
		return p.clients[0]
	}

	var best *GraphQLClient
	bestRemaining := -1
	for _, c := range p.clients {
		if rem := c.Remaining(); rem > bestRemaining {
			bestRemaining = rem
			best = c
		}
	}

	if bestRemaining < 100 {
		var earliest *GraphQLClient
		earliestReset := time.Now().Add(24 * time.Hour)
		for _, c := range p.clients {
			if reset := c.ResetAt(); reset.Before(earliestReset) {
				earliestReset = reset
				earliest = c
			}
		}
		if earliest != nil {
			return earliest
		}
	}

	return best
}

func (p *ClientPool) Size() int {
	return len(p.clients)
}

// FetchProfile routes a profile query through the best available client.
func (p *ClientPool) FetchProfile(ctx context.Context, login string) (*models.Profile, error) {
	return p.GetClient().FetchProfile(ctx, login)
}

// FetchYearContributions routes a contribution query through the best
// available client, so a multi-token pool spreads the year fan-out.
func (p *ClientPool) FetchYearContributions(ctx context.Context, login string, yr models.YearRange) (*models.YearContributions, error) {
	return p.GetClient().FetchYearContributions(ctx, login, yr)
}
