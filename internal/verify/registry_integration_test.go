// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citecheck/internal/registry"
	"github.com/pdiddy/citecheck/pkg/types"
)

// registryStack runs the real clients against local servers: Crossref knows
// one DOI, OpenAlex never answers inside the call timeout, and PubMed/arXiv
// count the requests they receive.
type registryStack struct {
	checkers []registry.Checker
	unused   int32
}

func newRegistryStack(t *testing.T) *registryStack {
	t.Helper()
	st := &registryStack{}

	crossref := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/works/10.1000/abc123" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","message":{"DOI":"10.1000/abc123","title":["Some Title"]}}`))
	}))
	t.Cleanup(crossref.Close)

	openalex := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	t.Cleanup(openalex.Close)

	counting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&st.unused, 1)
		http.NotFound(w, r)
	}))
	t.Cleanup(counting.Close)

	opts := func(ts *httptest.Server, timeout time.Duration) registry.Options {
		return registry.Options{Client: ts.Client(), BaseURL: ts.URL, Timeout: timeout}
	}
	st.checkers = []registry.Checker{
		registry.NewCrossref(opts(crossref, 2*time.Second)),
		registry.NewOpenAlex(opts(openalex, 100*time.Millisecond)),
		registry.NewPubMed(opts(counting, 2*time.Second)),
		registry.NewArxiv(opts(counting, 2*time.Second)),
	}
	return st
}

func TestVerify_RealClientsCrossrefFoundOpenAlexTimesOut(t *testing.T) {
	refs := []string{
		"[1] Smith J (2021). Some Title. doi:10.1000/abc123",
		"[2] Smith J (2021). Some Title (doi:10.1000/abc123)",
	}

	for _, ref := range refs {
		t.Run(ref, func(t *testing.T) {
			st := newRegistryStack(t)
			v := New(st.checkers, WithClock(func() time.Time { return fixedNow }))

			rec := v.VerifyReference(context.Background(), ref)

			assert.Equal(t, "10.1000/abc123", rec.Identifiers.DOI)
			assert.Equal(t, types.VerdictValid, rec.Verdict)
			assert.True(t, rec.Valid)
			assert.Equal(t, types.ReasonConfirmed, rec.Reason)
			assert.Equal(t, registry.NameCrossref, rec.Source)
			assert.Equal(t, "Some Title", rec.Title)
			assert.Equal(t, "https://doi.org/10.1000/abc123", rec.URL)

			require.Len(t, rec.Checks, 4)
			assert.Equal(t, "found in Crossref", rec.Checks[registry.NameCrossref].Note)
			oa := rec.Checks[registry.NameOpenAlex]
			assert.Equal(t, types.OutcomeUnreachable, oa.Outcome)
			assert.Equal(t, "OpenAlex unreachable", oa.Note)
			assert.False(t, oa.Passed)
			assert.Equal(t, "No PMID found", rec.Checks[registry.NamePubMed].Note)
			assert.Equal(t, "No arXiv ID found", rec.Checks[registry.NameArxiv].Note)
			assert.Zero(t, atomic.LoadInt32(&st.unused))
		})
	}
}

func TestVerify_RealClientsUnknownDOIIsFake(t *testing.T) {
	st := newRegistryStack(t)
	v := New(st.checkers, WithClock(func() time.Time { return fixedNow }))

	report := v.Verify(context.Background(), "[1] Doe A (2020). Invented. doi:10.1000/missing")

	require.Len(t, report.References, 1)
	rec := report.References[0]
	assert.Equal(t, types.VerdictFake, rec.Verdict)
	assert.Equal(t, types.ReasonNotFound, rec.Reason)
	assert.Equal(t, "DOI not found (404)", rec.Checks[registry.NameCrossref].Note)
	assert.Equal(t, 1, report.FakeCount)
	assert.Zero(t, report.ValidCount)
}
