package github

// Config holds tuning for GitHub fetch operations.
type Config struct {
	MaxConcurrentYearFetches int
	MaxRepositoriesPerYear   int
	MaxLanguagesPerRepo      int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		MaxConcurrentYearFetches: 5,
		MaxRepositoriesPerYear:   100,
		MaxLanguagesPerRepo:      10,
	}
}
