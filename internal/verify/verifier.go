// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify orchestrates citation verification: it extracts candidate
// references, dispatches registry lookups concurrently under a shared
// semaphore, decides a verdict per reference and aggregates the report.
package verify

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/citecheck/internal/extract"
	"github.com/pdiddy/citecheck/internal/metrics"
	"github.com/pdiddy/citecheck/internal/registry"
	"github.com/pdiddy/citecheck/pkg/types"
)

// DefaultMaxConcurrent bounds simultaneous registry calls per Verifier.
const DefaultMaxConcurrent = 16

// noteNotChecked marks registries skipped by a settled verdict.
const noteNotChecked = "not checked"

// Verifier checks references against a fixed, ordered set of registries.
// It is safe for concurrent use; all callers share one semaphore.
type Verifier struct {
	checkers      []registry.Checker
	now           func() time.Time
	logger        *zap.Logger
	metrics       *metrics.Recorder
	maxCandidates int
	sem           chan struct{}
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(v *Verifier) { v.now = now }
}

// WithLogger sets the logger (default no-op).
func WithLogger(l *zap.Logger) Option {
	return func(v *Verifier) { v.logger = l }
}

// WithMetrics sets the metrics recorder (default none).
func WithMetrics(m *metrics.Recorder) Option {
	return func(v *Verifier) { v.metrics = m }
}

// WithMaxConcurrent bounds in-flight registry calls.
func WithMaxConcurrent(n int) Option {
	return func(v *Verifier) {
		if n > 0 {
			v.sem = make(chan struct{}, n)
		}
	}
}

// WithMaxCandidates caps references verified per document.
func WithMaxCandidates(n int) Option {
	return func(v *Verifier) {
		if n > 0 {
			v.maxCandidates = n
		}
	}
}

// New creates a Verifier. Checkers are consulted, and reported as the
// source of a confirmation, in the order given.
func New(checkers []registry.Checker, opts ...Option) *Verifier {
	v := &Verifier{
		checkers:      checkers,
		now:           time.Now,
		logger:        zap.NewNop(),
		maxCandidates: extract.DefaultMaxCandidates,
		sem:           make(chan struct{}, DefaultMaxConcurrent),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify extracts candidate references from text and verifies each one.
// References run in parallel; the report keeps extraction order.
func (v *Verifier) Verify(ctx context.Context, text string) types.Report {
	candidates := extract.ExtractReferences(text, v.maxCandidates)
	records := make([]types.VerdictRecord, len(candidates))

	var wg sync.WaitGroup
	for i, ref := range candidates {
		wg.Add(1)
		go func(idx int, ref string) {
			defer wg.Done()
			records[idx] = v.VerifyReference(ctx, ref)
		}(i, ref)
	}
	wg.Wait()

	report := BuildReport(records)
	v.logger.Info("verification complete",
		zap.Int("total", report.Total),
		zap.Int("valid", report.ValidCount),
		zap.Int("fake", report.FakeCount),
		zap.Int("unverified", report.UnverifiedCount),
	)
	return report
}

// VerifyReference verifies one candidate reference. A future year or a
// reference without identifiers is settled without any registry call.
func (v *Verifier) VerifyReference(ctx context.Context, ref string) types.VerdictRecord {
	text := strings.TrimSpace(ref)
	ids := extract.ParseIdentifiers(text)
	now := v.now()

	var checks map[string]types.CheckResult
	if needsLookup(ids, now) {
		checks = v.dispatch(ctx, ids)
	} else {
		checks = make(map[string]types.CheckResult, len(v.checkers))
		for _, c := range v.checkers {
			checks[c.Name()] = types.CheckResult{
				Registry: c.Name(),
				Note:     noteNotChecked,
				Outcome:  types.OutcomeNotChecked,
			}
		}
	}

	d := Decide(ids, checks, now)
	rec := types.VerdictRecord{
		Text:        text,
		Identifiers: ids,
		Checks:      checks,
		Valid:       d.Valid,
		Verdict:     d.Verdict,
		Reason:      d.Reason,
	}
	for _, c := range v.checkers {
		if r := checks[c.Name()]; r.Passed {
			rec.Source, rec.Title, rec.URL = r.Registry, r.Title, r.URL
			break
		}
	}

	v.metrics.ObserveVerdict(string(rec.Verdict))
	v.logger.Debug("reference verified",
		zap.String("verdict", string(rec.Verdict)),
		zap.String("reason", rec.Reason),
		zap.String("doi", ids.DOI),
		zap.String("pmid", ids.PMID),
		zap.String("arxiv", ids.ArxivID),
	)
	return rec
}

// dispatch runs every applicable registry call in parallel and waits for
// all of them. Registries without an identifier get their not-checked
// result.
func (v *Verifier) dispatch(ctx context.Context, ids types.IdentifierSet) map[string]types.CheckResult {
	results := make([]types.CheckResult, len(v.checkers))

	var wg sync.WaitGroup
	for i, c := range v.checkers {
		id := ids.Value(c.Kind())
		if id == "" {
			results[i] = registry.NotChecked(c)
			continue
		}
		wg.Add(1)
		go func(idx int, c registry.Checker, id string) {
			defer wg.Done()
			results[idx] = v.check(ctx, c, id)
		}(i, c, id)
	}
	wg.Wait()

	checks := make(map[string]types.CheckResult, len(results))
	for i, c := range v.checkers {
		checks[c.Name()] = results[i]
	}
	return checks
}

// check runs one registry call under the semaphore. A cancelled wait for a
// slot yields an unreachable result for this call only; no request was sent,
// so it is not marked checked.
func (v *Verifier) check(ctx context.Context, c registry.Checker, id string) types.CheckResult {
	select {
	case <-ctx.Done():
		r := registry.Unreachable(c.Name(), ctx.Err())
		r.Checked = false
		return r
	case v.sem <- struct{}{}:
	}
	defer func() { <-v.sem }()

	start := time.Now()
	r := c.Check(ctx, id)
	elapsed := time.Since(start)

	if r.Registry == "" {
		r.Registry = c.Name()
	}
	v.metrics.ObserveCheck(c.Name(), string(r.Outcome), elapsed)

	switch r.Outcome {
	case types.OutcomeUnreachable, types.OutcomeMalformed, types.OutcomeHTTPError:
		v.logger.Warn("registry check failed",
			zap.String("registry", c.Name()),
			zap.String("id", id),
			zap.String("outcome", string(r.Outcome)),
			zap.Int("status", r.StatusCode),
			zap.String("detail", r.Detail),
			zap.Duration("elapsed", elapsed),
		)
	}
	return r
}
