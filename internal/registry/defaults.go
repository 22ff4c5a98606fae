// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/pdiddy/citecheck/pkg/types"
)

// NewCheckers builds the four registry clients in their fixed order
// (Crossref, OpenAlex, PubMed, arXiv). They share client; each gets its own
// rate limiter.
func NewCheckers(client *http.Client, cfg types.Config) []Checker {
	reg := cfg.Registries
	opts := func(base string) Options {
		return Options{
			Client:     client,
			BaseURL:    base,
			Email:      reg.ContactEmail,
			UserAgent:  cfg.HTTP.UserAgent,
			Timeout:    cfg.HTTP.Timeout,
			Limiter:    newLimiter(reg.RequestsPerSecond, reg.Burst),
			MaxRetries: reg.MaxRetries,
		}
	}

	return []Checker{
		NewCrossref(opts(reg.CrossrefBase)),
		NewOpenAlex(opts(reg.OpenAlexBase)),
		NewPubMed(opts(reg.PubMedBase)),
		NewArxiv(opts(reg.ArxivBase)),
	}
}

// newLimiter returns nil (unlimited) when rps is not positive.
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
