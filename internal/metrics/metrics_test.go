// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCheck(t *testing.T) {
	r := New()
	r.ObserveCheck("Crossref", "found", 120*time.Millisecond)
	r.ObserveCheck("Crossref", "found", 80*time.Millisecond)
	r.ObserveCheck("PubMed", "unreachable", 10*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.registryChecks.WithLabelValues("Crossref", "found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.registryChecks.WithLabelValues("PubMed", "unreachable")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.checkDuration))
}

func TestObserveVerdict(t *testing.T) {
	r := New()
	r.ObserveVerdict("VALID")
	r.ObserveVerdict("FAKE")
	r.ObserveVerdict("FAKE")

	assert.Equal(t, 1.0, testutil.ToFloat64(r.verdicts.WithLabelValues("VALID")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.verdicts.WithLabelValues("FAKE")))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveCheck("arXiv", "found", time.Second)
		r.ObserveVerdict("VALID")
	})
	assert.Nil(t, r.Registry())

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := New()
	r.ObserveCheck("OpenAlex", "not_found", time.Millisecond)
	r.ObserveVerdict("UNVERIFIED")

	ts := httptest.NewServer(r.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, `citecheck_registry_checks_total{outcome="not_found",registry="OpenAlex"} 1`)
	assert.Contains(t, out, `citecheck_verdicts_total{verdict="UNVERIFIED"} 1`)
	assert.Contains(t, out, "citecheck_registry_check_duration_seconds_bucket")
	assert.Contains(t, out, "go_goroutines")
}

func TestConcurrentRecording(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.ObserveCheck("Crossref", "found", time.Millisecond)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50.0, testutil.ToFloat64(r.registryChecks.WithLabelValues("Crossref", "found")))
}
