// internal/retrieval/retriever_test.go
package retrieval

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/RNAdvani/kurukshetra/internal/appconfig"
	"github.com/RNAdvani/kurukshetra/internal/corpus"
	"github.com/RNAdvani/kurukshetra/internal/vectorindex"
)

type fixedEmbedder struct {
	vector []float32
	err    error
}

func (f fixedEmbedder) Embed(context.Context, appconfig.Host, string, string) ([]float32, error) {
	return f.vector, f.err
}

func testConfig() *appconfig.Config {
	return &appconfig.Config{
		Hosts:          []appconfig.Host{{Name: "local", URL: "http://localhost:11434"}},
		EmbeddingModel: "nomic-embed-text",
	}
}

func buildCorpus(t *testing.T, vectors [][]float32, docCount int) *corpus.Corpus {
	t.Helper()
	idx, err := vectorindex.New(len(vectors[0]))
	if err != nil {
		t.Fatal(err)
	}
	if err := idx.Add(vectors...); err != nil {
		t.Fatal(err)
	}
	lines := make([]string, 0, docCount)
	for i := 0; i < docCount; i++ {
		lines = append(lines, `{"instruction":"doc","input":"","output":"body"}`)
	}
	store := loadStoreFromLines(t, strings.Join(lines, "\n"))
	return &corpus.Corpus{Index: idx, Store: store}
}

func loadStoreFromLines(t *testing.T, lines string) *corpus.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metadata.jsonl")
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := corpus.LoadStore(path)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestSanitizeQuery(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		limit int
	}{
		{name: "strips symbols", in: `tax "policy" <b>now!</b>`, want: "tax policy b now b"},
		{name: "keeps allowed punctuation", in: "topic: a.b-c", want: "topic: a.b-c"},
		{name: "collapses whitespace", in: "a   b\t\nc", want: "a b c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeQuery(tc.in); got != tc.want {
				t.Fatalf("SanitizeQuery(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}

	long := strings.Repeat("x", 400)
	if got := SanitizeQuery(long); len(got) != 256 {
		t.Fatalf("expected 256-char cap, got %d", len(got))
	}
}

func TestRetrieveOrdersAndCaps(t *testing.T) {
	c := buildCorpus(t, [][]float32{
		{0, 5}, // id 0, far
		{0, 1}, // id 1, near
		{0, 2}, // id 2
		{0, 3}, // id 3
	}, 4)
	r, err := New(testConfig(), fixedEmbedder{vector: []float32{0, 0}}, c)
	if err != nil {
		t.Fatal(err)
	}

	docs := r.Retrieve(context.Background(), "tax policy", 4, 2)
	if len(docs) != 2 {
		t.Fatalf("expected contextCap=2 documents, got %d", len(docs))
	}
	if docs[0].ID != 1 || docs[1].ID != 2 {
		t.Fatalf("expected nearest ids [1 2], got [%d %d]", docs[0].ID, docs[1].ID)
	}
}

func TestRetrieveDropsStaleIDs(t *testing.T) {
	// index has 3 vectors but the store only has 2 documents
	c := buildCorpus(t, [][]float32{{0, 1}, {0, 2}, {0, 0}}, 2)
	r, err := New(testConfig(), fixedEmbedder{vector: []float32{0, 0}}, c)
	if err != nil {
		t.Fatal(err)
	}

	docs := r.Retrieve(context.Background(), "anything", 3, 3)
	if len(docs) != 2 {
		t.Fatalf("expected stale id dropped, got %d docs", len(docs))
	}
	for _, doc := range docs {
		if !c.Store.Contains(doc.ID) {
			t.Fatalf("returned id %d is not in the store", doc.ID)
		}
	}
}

func TestRetrieveDegradesToEmpty(t *testing.T) {
	c := buildCorpus(t, [][]float32{{0, 1}}, 1)

	t.Run("embed failure", func(t *testing.T) {
		r, _ := New(testConfig(), fixedEmbedder{err: errors.New("host down")}, c)
		if docs := r.Retrieve(context.Background(), "query", 1, 1); docs != nil {
			t.Fatalf("expected nil on embed failure, got %v", docs)
		}
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		r, _ := New(testConfig(), fixedEmbedder{vector: []float32{1, 2, 3}}, c)
		if docs := r.Retrieve(context.Background(), "query", 1, 1); docs != nil {
			t.Fatalf("expected nil on dimension mismatch, got %v", docs)
		}
	})

	t.Run("blank query", func(t *testing.T) {
		r, _ := New(testConfig(), fixedEmbedder{vector: []float32{0, 0}}, c)
		if docs := r.Retrieve(context.Background(), "  <<>>!! ", 1, 1); docs != nil {
			t.Fatalf("expected nil for blank sanitized query, got %v", docs)
		}
	})
}

func TestFormatContext(t *testing.T) {
	if FormatContext(nil) != "" {
		t.Fatal("expected empty context for no documents")
	}

	long := corpus.Document{ID: 0, Text: strings.Repeat("a", 400)}
	out := FormatContext([]corpus.Document{long, {ID: 1, Text: "short"}})
	if !strings.HasPrefix(out, "Reference material:\n1. ") {
		t.Fatalf("unexpected context prefix: %q", out)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 entries, got %d lines", len(lines))
	}
	// 300 text runes plus the "1. " prefix and the ellipsis marker
	if n := utf8.RuneCountInString(lines[1]); n > 304 {
		t.Fatalf("document text not truncated: %d runes", n)
	}
	if lines[2] != "2. short" {
		t.Fatalf("unexpected second entry: %q", lines[2])
	}
}
