// internal/retrieval/retriever.go

// Package retrieval embeds a query, searches the corpus index, and maps the
// nearest vectors back to reference documents. Retrieval is best-effort
// enrichment: every failure degrades to an empty result so scoring can
// proceed with reduced context.
package retrieval

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/RNAdvani/kurukshetra/internal/appconfig"
	"github.com/RNAdvani/kurukshetra/internal/corpus"
	"github.com/RNAdvani/kurukshetra/internal/providers"
	"github.com/RNAdvani/kurukshetra/internal/util"
)

// maxQueryRunes bounds embedding cost for pathological inputs.
const maxQueryRunes = 256

// contextDocRunes caps each document's contribution to a formatted context
// block.
const contextDocRunes = 300

var queryCleaner = regexp.MustCompile(`[^\w\s:.\-]`)

// Retriever resolves queries against a loaded corpus.
type Retriever struct {
	cfg      *appconfig.Config
	embedder providers.Embedder
	corpus   *corpus.Corpus
}

// New builds a Retriever over an already-loaded corpus.
func New(cfg *appconfig.Config, embedder providers.Embedder, c *corpus.Corpus) (*Retriever, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder is nil")
	}
	if c == nil || c.Index == nil || c.Store == nil {
		return nil, fmt.Errorf("corpus is not loaded")
	}
	return &Retriever{cfg: cfg, embedder: embedder, corpus: c}, nil
}

// Retrieve returns up to contextCap documents nearest to query, ordered by
// ascending distance. Ids returned by the index but absent from the store
// are dropped. Any internal failure returns an empty slice, never an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, k, contextCap int) []corpus.Document {
	sanitized := SanitizeQuery(query)
	if sanitized == "" {
		return nil
	}
	if k <= 0 {
		k = r.cfg.TopK()
	}
	if contextCap <= 0 {
		contextCap = r.cfg.ContextLimit()
	}

	host, err := r.cfg.EmbeddingHostEntry()
	if err != nil {
		log.Printf("[RETRIEVAL] No embedding host: %v", err)
		return nil
	}
	vector, err := r.embedder.Embed(ctx, host, r.cfg.EmbeddingModel, sanitized)
	if err != nil {
		log.Printf("[RETRIEVAL] Embed failed: %v", err)
		return nil
	}

	neighbors, err := r.corpus.Index.Search(vector, k)
	if err != nil {
		log.Printf("[RETRIEVAL] Search failed: %v", err)
		return nil
	}

	docs := make([]corpus.Document, 0, contextCap)
	for _, n := range neighbors {
		doc, ok := r.corpus.Store.Get(n.ID)
		if !ok {
			log.Printf("[RETRIEVAL] Dropping stale id %d", n.ID)
			continue
		}
		docs = append(docs, doc)
		if len(docs) == contextCap {
			break
		}
	}
	return docs
}

// SanitizeQuery strips characters outside the word/space/punctuation subset,
// collapses runs of whitespace, and truncates to a fixed length.
func SanitizeQuery(query string) string {
	cleaned := queryCleaner.ReplaceAllString(query, " ")
	cleaned = util.CollapseSpaces(cleaned)
	return util.HeadRunes(cleaned, maxQueryRunes)
}

// FormatContext renders retrieved documents as a numbered reference block
// for prompt construction, truncating each document's text.
func FormatContext(docs []corpus.Document) string {
	if len(docs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Reference material:\n")
	for i, doc := range docs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, util.TruncateRunes(doc.Text, contextDocRunes))
	}
	return strings.TrimRight(b.String(), "\n")
}
