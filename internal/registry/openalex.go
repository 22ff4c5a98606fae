// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/citecheck/pkg/types"
)

// openAlexAPIBase is the OpenAlex API root. Declared as a var so tests can
// substitute an httptest server.
var openAlexAPIBase = "https://api.openalex.org"

// OpenAlex checks DOIs against the OpenAlex works endpoint.
type OpenAlex struct {
	endpoint
}

// NewOpenAlex creates an OpenAlex client.
func NewOpenAlex(opts Options) *OpenAlex {
	return &OpenAlex{endpoint: newEndpoint(opts, openAlexAPIBase)}
}

// Name returns the registry name.
func (c *OpenAlex) Name() string { return NameOpenAlex }

// Kind returns the identifier scheme.
func (c *OpenAlex) Kind() types.IdentifierKind { return types.KindDOI }

// Check tries the work addressed as a doi.org URL, as "doi:<doi>" and as
// the raw DOI, in that order, and stops at the first 200. A 200 whose body
// carries an id or doi passes. When no variant answers 200, any 404 wins
// over other failures.
func (c *OpenAlex) Check(ctx context.Context, doi string) types.CheckResult {
	if doi == "" {
		return notChecked(NameOpenAlex, types.KindDOI)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var last types.CheckResult
	sawNotFound := false

	for _, reqURL := range c.variants(doi) {
		status, body, err := c.fetch(ctx, reqURL)
		if err != nil {
			last = Unreachable(NameOpenAlex, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if status != http.StatusOK {
			last = statusResult(NameOpenAlex, types.KindDOI, status)
			if status == http.StatusNotFound {
				sawNotFound = true
			}
			continue
		}
		return c.parseWork(status, body, doi)
	}

	if sawNotFound {
		return statusResult(NameOpenAlex, types.KindDOI, http.StatusNotFound)
	}
	return last
}

// variants returns the work URLs to try, in order.
func (c *OpenAlex) variants(doi string) []string {
	ids := []string{doiResolverBase + doi, "doi:" + doi, doi}
	urls := make([]string, len(ids))
	for i, id := range ids {
		u := c.baseURL + "/works/" + escapeDOI(id)
		if c.email != "" {
			u += "?mailto=" + url.QueryEscape(c.email)
		}
		urls[i] = u
	}
	return urls
}

func (c *OpenAlex) parseWork(status int, body []byte, doi string) types.CheckResult {
	var work openAlexWork
	if err := json.Unmarshal(body, &work); err != nil {
		return malformed(NameOpenAlex, status, fmt.Errorf("parsing OpenAlex response: %w", err))
	}
	if work.ID == "" && work.DOI == "" {
		return malformed(NameOpenAlex, status, fmt.Errorf("OpenAlex response has no id or doi"))
	}

	title := work.Title
	if title == "" {
		title = work.DisplayName
	}
	canonical := work.ID
	if canonical == "" {
		canonical = doiResolverBase + doi
	}
	return found(NameOpenAlex, status, title, canonical)
}

// OpenAlex API JSON structure (fields we need).
type openAlexWork struct {
	ID          string `json:"id"`
	DOI         string `json:"doi"`
	Title       string `json:"title"`
	DisplayName string `json:"display_name"`
}
