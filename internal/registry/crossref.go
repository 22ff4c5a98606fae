// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/citecheck/pkg/types"
)

// crossrefAPIBase is the Crossref REST API root. Declared as a var so tests
// can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org"

// doiResolverBase builds canonical DOI URLs.
const doiResolverBase = "https://doi.org/"

// Crossref checks DOIs against the Crossref works endpoint.
type Crossref struct {
	endpoint
}

// NewCrossref creates a Crossref client.
func NewCrossref(opts Options) *Crossref {
	return &Crossref{endpoint: newEndpoint(opts, crossrefAPIBase)}
}

// Name returns the registry name.
func (c *Crossref) Name() string { return NameCrossref }

// Kind returns the identifier scheme.
func (c *Crossref) Kind() types.IdentifierKind { return types.KindDOI }

// Check looks up GET /works/{doi}. A 200 whose message carries a title
// passes.
func (c *Crossref) Check(ctx context.Context, doi string) types.CheckResult {
	if doi == "" {
		return notChecked(NameCrossref, types.KindDOI)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := c.baseURL + "/works/" + escapeDOI(doi)
	if c.email != "" {
		reqURL += "?mailto=" + url.QueryEscape(c.email)
	}

	status, body, err := c.fetch(ctx, reqURL)
	if err != nil {
		return Unreachable(NameCrossref, err)
	}
	if status != http.StatusOK {
		return statusResult(NameCrossref, types.KindDOI, status)
	}

	var cr crossrefResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return malformed(NameCrossref, status, fmt.Errorf("parsing Crossref response: %w", err))
	}
	if len(cr.Message.Title) == 0 || strings.TrimSpace(cr.Message.Title[0]) == "" {
		return malformed(NameCrossref, status, fmt.Errorf("Crossref response has no title"))
	}

	return found(NameCrossref, status, strings.TrimSpace(cr.Message.Title[0]), doiResolverBase+doi)
}

// Crossref API JSON structures.
type crossrefResponse struct {
	Status  string          `json:"status"`
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	DOI   string   `json:"DOI"`
	Title []string `json:"title"`
	URL   string   `json:"URL"`
}
