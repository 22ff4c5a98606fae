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

// pubMedAPIBase is the NCBI E-utilities root. Declared as a var so tests can
// substitute an httptest server.
var pubMedAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const pubMedArticleBase = "https://pubmed.ncbi.nlm.nih.gov/"

// PubMed checks PMIDs against the E-utilities esummary endpoint.
type PubMed struct {
	endpoint
}

// NewPubMed creates a PubMed client.
func NewPubMed(opts Options) *PubMed {
	return &PubMed{endpoint: newEndpoint(opts, pubMedAPIBase)}
}

// Name returns the registry name.
func (c *PubMed) Name() string { return NamePubMed }

// Kind returns the identifier scheme.
func (c *PubMed) Kind() types.IdentifierKind { return types.KindPMID }

// Check requests the esummary record for pmid. The record passes when the
// result map holds an entry for pmid with a non-empty title and no error.
func (c *PubMed) Check(ctx context.Context, pmid string) types.CheckResult {
	if pmid == "" {
		return notChecked(NamePubMed, types.KindPMID)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", pmid)
	params.Set("retmode", "json")
	if c.email != "" {
		params.Set("email", c.email)
	}
	reqURL := c.baseURL + "/esummary.fcgi?" + params.Encode()

	status, body, err := c.fetch(ctx, reqURL)
	if err != nil {
		return Unreachable(NamePubMed, err)
	}
	if status != http.StatusOK {
		return statusResult(NamePubMed, types.KindPMID, status)
	}

	var resp pubMedSummary
	if err := json.Unmarshal(body, &resp); err != nil {
		return malformed(NamePubMed, status, fmt.Errorf("parsing PubMed response: %w", err))
	}

	raw, ok := resp.Result[pmid]
	if !ok {
		return notFound(NamePubMed, status, "PMID not found")
	}
	var doc pubMedDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return malformed(NamePubMed, status, fmt.Errorf("parsing PubMed record: %w", err))
	}
	title := strings.TrimSpace(doc.Title)
	if doc.Error != "" || title == "" {
		return notFound(NamePubMed, status, "PMID not found")
	}

	return found(NamePubMed, status, title, pubMedArticleBase+pmid+"/")
}

// esummary JSON. The result map also carries a "uids" array, so values are
// decoded lazily.
type pubMedSummary struct {
	Result map[string]json.RawMessage `json:"result"`
}

type pubMedDoc struct {
	UID   string `json:"uid"`
	Title string `json:"title"`
	Error string `json:"error"`
}
