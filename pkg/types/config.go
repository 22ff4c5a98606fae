// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by every registry client.
type HTTPConfig struct {
	// Timeout bounds a single registry call (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citecheck/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// HTTPProxy and HTTPSProxy override the proxy environment variables.
	HTTPProxy  string `json:"http_proxy,omitempty" yaml:"http_proxy,omitempty"`
	HTTPSProxy string `json:"https_proxy,omitempty" yaml:"https_proxy,omitempty"`

	// MaxIdleConnsPerHost sizes the shared connection pool.
	MaxIdleConnsPerHost int `json:"max_idle_conns_per_host" yaml:"max_idle_conns_per_host"`
}

// RegistryConfig holds settings for the bibliographic registry clients.
type RegistryConfig struct {
	CrossrefBase string `json:"crossref_base" yaml:"crossref_base"`
	OpenAlexBase string `json:"openalex_base" yaml:"openalex_base"`
	PubMedBase   string `json:"pubmed_base" yaml:"pubmed_base"`
	ArxivBase    string `json:"arxiv_base" yaml:"arxiv_base"`

	// ContactEmail is sent as mailto/email for polite-pool access.
	ContactEmail string `json:"contact_email,omitempty" yaml:"contact_email,omitempty"`

	// RequestsPerSecond and Burst configure each registry's rate limiter.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
	Burst             int     `json:"burst" yaml:"burst"`

	// MaxRetries is the 429 retry budget per request (0 disables retries).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// VerifyConfig holds settings for the verification orchestrator.
type VerifyConfig struct {
	// MaxCandidates caps the number of references verified per document (default 60).
	MaxCandidates int `json:"max_candidates" yaml:"max_candidates"`

	// MaxConcurrent bounds simultaneous outbound registry calls (default 16).
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`
}

// ServeConfig holds settings for the HTTP API.
type ServeConfig struct {
	Addr string `json:"addr" yaml:"addr"`

	// MaxUploadBytes limits multipart document uploads.
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// LogConfig holds logger construction parameters.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// Format is json or console (default console).
	Format string `json:"format" yaml:"format"`

	// OutputPaths defaults to stderr.
	OutputPaths []string `json:"output_paths,omitempty" yaml:"output_paths,omitempty"`
}

// Config groups all settings.
type Config struct {
	HTTP       HTTPConfig     `json:"http" yaml:"http"`
	Registries RegistryConfig `json:"registries" yaml:"registries"`
	Verify     VerifyConfig   `json:"verify" yaml:"verify"`
	Serve      ServeConfig    `json:"serve" yaml:"serve"`
	Log        LogConfig      `json:"log" yaml:"log"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:             10 * time.Second,
			UserAgent:           "citecheck/0.1 (+https://github.com/pdiddy/citecheck)",
			MaxIdleConnsPerHost: 16,
		},
		Registries: RegistryConfig{
			CrossrefBase:      "https://api.crossref.org",
			OpenAlexBase:      "https://api.openalex.org",
			PubMedBase:        "https://eutils.ncbi.nlm.nih.gov/entrez/eutils",
			ArxivBase:         "https://export.arxiv.org/api/query",
			RequestsPerSecond: 10,
			Burst:             5,
			MaxRetries:        1,
		},
		Verify: VerifyConfig{
			MaxCandidates: 60,
			MaxConcurrent: 16,
		},
		Serve: ServeConfig{
			Addr:           ":8000",
			MaxUploadBytes: 20 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
