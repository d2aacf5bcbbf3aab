package config

import (
	"time"
)

// Matching holds runtime configuration for the tag matching engine.
type Matching struct {
	// CacheTTL is how long a category's tag list is served from cache.
	CacheTTL time.Duration
	// MinConfidence is the default confidence floor for fuzzy matches.
	MinConfidence float64
	// MaxResults is the default result-set cap per category.
	MaxResults int
	// HTTPAddr is the listen address for the web surface.
	HTTPAddr string
	// Debug enables debug-level logging.
	Debug bool
}

// LoadMatching builds matching configuration from the environment.
func LoadMatching() *Matching {
	return &Matching{
		CacheTTL:      GetEnvDuration("TAG_CACHE_TTL", 5*time.Minute),
		MinConfidence: GetEnvFloat("TAG_MIN_CONFIDENCE", 0.7),
		MaxResults:    GetEnvInt("TAG_MAX_RESULTS", 5),
		HTTPAddr:      GetEnv("TAG_HTTP_ADDR", ":8080"),
		Debug:         GetEnvBool("TAG_DEBUG", false),
	}
}
