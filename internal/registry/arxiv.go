// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/citecheck/pkg/types"
)

// arxivAPIBase is the arXiv query endpoint. Declared as a var so tests can
// substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

const arxivAbsBase = "https://arxiv.org/abs/"

// Arxiv checks arXiv IDs against the arXiv export API.
type Arxiv struct {
	endpoint
}

// NewArxiv creates an arXiv client.
func NewArxiv(opts Options) *Arxiv {
	return &Arxiv{endpoint: newEndpoint(opts, arxivAPIBase)}
}

// Name returns the registry name.
func (c *Arxiv) Name() string { return NameArxiv }

// Kind returns the identifier scheme.
func (c *Arxiv) Kind() types.IdentifierKind { return types.KindArxiv }

// Check queries ?id_list={id}. The ID passes when the returned Atom feed
// holds an entry whose abstract URL names the same ID. arXiv answers unknown
// IDs with 200 and an error entry, so the status alone proves nothing.
func (c *Arxiv) Check(ctx context.Context, id string) types.CheckResult {
	if id == "" {
		return notChecked(NameArxiv, types.KindArxiv)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := c.baseURL + "?id_list=" + url.QueryEscape(id)

	status, body, err := c.fetch(ctx, reqURL)
	if err != nil {
		return Unreachable(NameArxiv, err)
	}
	if status != http.StatusOK {
		return statusResult(NameArxiv, types.KindArxiv, status)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(bytes.NewReader(body)).Decode(&feed); err != nil {
		return malformed(NameArxiv, status, fmt.Errorf("parsing arXiv response: %w", err))
	}

	want := stripArxivVersion(id)
	for _, entry := range feed.Entries {
		if extractArxivID(entry.ID) != want {
			continue
		}
		return found(NameArxiv, status, collapseSpace(entry.Title), arxivAbsBase+want)
	}
	return notFound(NameArxiv, status, "arXiv ID not found")
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID    string `xml:"id"`
	Title string `xml:"title"`
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" -> "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	return stripArxivVersion(idURL[idx+len(prefix):])
}

// stripArxivVersion drops a trailing "v<n>".
func stripArxivVersion(id string) string {
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			return id[:vIdx]
		}
	}
	return id
}

// collapseSpace joins the line-wrapped titles the Atom feed returns.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
