// internal/corpus/loader.go
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/RNAdvani/kurukshetra/internal/appconfig"
	"github.com/RNAdvani/kurukshetra/internal/providers"
	"github.com/RNAdvani/kurukshetra/internal/vectorindex"
)

// Corpus pairs the vector index with its metadata store. Neighbor ids from
// the index resolve to documents in the store.
type Corpus struct {
	Index *vectorindex.Index
	Store *Store
}

// Load opens the corpus from the configured paths. The index is rebuilt
// when it is missing or its vector count no longer matches the metadata
// file, which happens whenever records are added or removed.
func Load(ctx context.Context, cfg *appconfig.Config, embedder providers.Embedder) (*Corpus, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(cfg.CorpusMetadataPath) == "" {
		return nil, fmt.Errorf("corpusMetadataPath is required")
	}
	if strings.TrimSpace(cfg.CorpusIndexPath) == "" {
		return nil, fmt.Errorf("corpusIndexPath is required")
	}

	store, err := LoadStore(cfg.CorpusMetadataPath)
	if err != nil {
		return nil, err
	}
	if store.Size() == 0 {
		return nil, fmt.Errorf("corpus metadata %s contains no usable records", cfg.CorpusMetadataPath)
	}

	index, err := vectorindex.ReadFile(cfg.CorpusIndexPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("[CORPUS] Index %s not found, rebuilding", cfg.CorpusIndexPath)
	case err != nil:
		return nil, err
	case index.Count() != store.Size():
		log.Printf("[CORPUS] Index has %d vectors but metadata has %d records, rebuilding", index.Count(), store.Size())
	default:
		return &Corpus{Index: index, Store: store}, nil
	}

	index, err = Build(ctx, cfg, embedder, store)
	if err != nil {
		return nil, err
	}
	return &Corpus{Index: index, Store: store}, nil
}

// Build embeds every document in the store and writes a fresh index to the
// configured path. Document order determines index ids.
func Build(ctx context.Context, cfg *appconfig.Config, embedder providers.Embedder, store *Store) (*vectorindex.Index, error) {
	host, err := cfg.EmbeddingHostEntry()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	log.Printf("[CORPUS] Embedding %d documents with %s (host: %s)", store.Size(), cfg.EmbeddingModel, host.Name)

	var index *vectorindex.Index
	for _, doc := range store.Documents() {
		vector, err := embedder.Embed(ctx, host, cfg.EmbeddingModel, doc.Text)
		if err != nil {
			return nil, fmt.Errorf("embed document %d: %w", doc.ID, err)
		}
		if index == nil {
			index, err = vectorindex.New(len(vector))
			if err != nil {
				return nil, err
			}
		}
		if err := index.Add(vector); err != nil {
			return nil, fmt.Errorf("index document %d: %w", doc.ID, err)
		}
	}

	if err := index.WriteFile(cfg.CorpusIndexPath); err != nil {
		return nil, err
	}
	log.Printf("[CORPUS] Rebuilt index with %d vectors in %s", index.Count(), time.Since(start).Truncate(time.Millisecond))
	return index, nil
}
