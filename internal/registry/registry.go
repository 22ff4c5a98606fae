// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry checks scholarly identifiers against external
// bibliographic registries: Crossref and OpenAlex for DOIs, PubMed for
// PMIDs and arXiv for arXiv IDs. Every client downgrades transport, status
// and decode failures into a non-passing types.CheckResult; Check never
// returns an error.
package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/citecheck/internal/httputil"
	"github.com/pdiddy/citecheck/pkg/types"
)

// Registry names, used as keys in VerdictRecord.Checks.
const (
	NameCrossref = "Crossref"
	NameOpenAlex = "OpenAlex"
	NamePubMed   = "PubMed"
	NameArxiv    = "arXiv"
)

// DefaultTimeout bounds one Check call when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes limits how much of a registry response is read.
const maxBodyBytes = 4 << 20

// Checker validates one identifier against one registry.
type Checker interface {
	// Name returns the registry name.
	Name() string

	// Kind returns the identifier scheme the registry understands.
	Kind() types.IdentifierKind

	// Check looks id up. An empty id returns a not-checked result without
	// any network I/O.
	Check(ctx context.Context, id string) types.CheckResult
}

// Options configures a registry client. Zero values select defaults.
type Options struct {
	// Client is the shared HTTP session (default http.DefaultClient).
	Client *http.Client

	// BaseURL overrides the registry endpoint (tests use httptest servers).
	BaseURL string

	// Email is sent as a polite-pool contact address when non-empty.
	Email string

	UserAgent string

	// Timeout bounds one Check call (default DefaultTimeout).
	Timeout time.Duration

	// Limiter paces requests to the registry; nil means unlimited.
	Limiter *rate.Limiter

	// MaxRetries is the 429 retry budget per request.
	MaxRetries int
}

// endpoint holds the HTTP plumbing common to all clients.
type endpoint struct {
	client     *http.Client
	baseURL    string
	email      string
	userAgent  string
	timeout    time.Duration
	limiter    *rate.Limiter
	maxRetries int
}

func newEndpoint(opts Options, defaultBase string) endpoint {
	e := endpoint{
		client:     opts.Client,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		email:      opts.Email,
		userAgent:  opts.UserAgent,
		timeout:    opts.Timeout,
		limiter:    opts.Limiter,
		maxRetries: opts.MaxRetries,
	}
	if e.client == nil {
		e.client = http.DefaultClient
	}
	if e.baseURL == "" {
		e.baseURL = strings.TrimRight(defaultBase, "/")
	}
	if e.timeout <= 0 {
		e.timeout = DefaultTimeout
	}
	return e
}

// fetch issues a GET and reads the (size-limited) body. A non-nil error
// means no usable response arrived.
func (e *endpoint) fetch(ctx context.Context, rawURL string) (int, []byte, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return 0, nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, e.client, req, e.maxRetries)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// escapeDOI path-escapes each slash-separated DOI segment.
func escapeDOI(doi string) string {
	parts := strings.Split(doi, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// --- result constructors ---

// NotChecked is the result recorded for a registry that had no identifier
// to look up.
func NotChecked(c Checker) types.CheckResult {
	return notChecked(c.Name(), c.Kind())
}

func notChecked(name string, kind types.IdentifierKind) types.CheckResult {
	return types.CheckResult{
		Registry: name,
		Note:     fmt.Sprintf("No %s found", kind.Label()),
		Outcome:  types.OutcomeNotChecked,
	}
}

// found is the only constructor that sets Passed. It refuses to pass a
// result without a canonical URL.
func found(name string, status int, title, canonicalURL string) types.CheckResult {
	if canonicalURL == "" {
		return malformed(name, status, fmt.Errorf("no canonical URL"))
	}
	return types.CheckResult{
		Registry:   name,
		Checked:    true,
		Passed:     true,
		Title:      title,
		URL:        canonicalURL,
		Note:       "found in " + name,
		Outcome:    types.OutcomeFound,
		StatusCode: status,
	}
}

func notFound(name string, status int, note string) types.CheckResult {
	return types.CheckResult{
		Registry:   name,
		Checked:    true,
		Note:       note,
		Outcome:    types.OutcomeNotFound,
		StatusCode: status,
	}
}

// Unreachable reports that no usable response arrived from the registry.
func Unreachable(name string, err error) types.CheckResult {
	r := types.CheckResult{
		Registry: name,
		Checked:  true,
		Note:     name + " unreachable",
		Outcome:  types.OutcomeUnreachable,
	}
	if err != nil {
		r.Detail = err.Error()
	}
	return r
}

func malformed(name string, status int, err error) types.CheckResult {
	r := Unreachable(name, err)
	r.Outcome = types.OutcomeMalformed
	r.StatusCode = status
	return r
}

func httpError(name string, status int) types.CheckResult {
	return types.CheckResult{
		Registry:   name,
		Checked:    true,
		Note:       fmt.Sprintf("%s returned HTTP %d", name, status),
		Outcome:    types.OutcomeHTTPError,
		StatusCode: status,
	}
}

// statusResult maps a non-200 status to a result; kind names the 404 note.
func statusResult(name string, kind types.IdentifierKind, status int) types.CheckResult {
	if status == http.StatusNotFound {
		return notFound(name, status, fmt.Sprintf("%s not found (404)", kind.Label()))
	}
	return httpError(name, status)
}
