// internal/corpus/store.go

// Package corpus manages the debate reference corpus: a JSONL metadata file
// of instruction records paired with a vector index over their embeddings.
// Document ids are positions in the metadata file, so the metadata order and
// the index insertion order must stay aligned.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
)

// Record is one line of the metadata file.
type Record struct {
	Instruction string `json:"instruction"`
	Input       string `json:"input"`
	Output      string `json:"output"`
}

// Document is a record plus its stable id and the flattened text that gets
// embedded and returned as retrieval context.
type Document struct {
	ID     int
	Record Record
	Text   string
}

// Store holds the parsed metadata file in memory.
type Store struct {
	documents []Document
}

// LoadStore reads a JSONL metadata file. Lines that are blank, fail to
// parse, or are missing a field are skipped with a warning; ids are assigned
// over the surviving documents in file order.
func LoadStore(path string) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus metadata: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 8*1024*1024)

	store := &Store{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var record Record
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			log.Printf("[CORPUS] Skipping metadata line %d: %v", lineNo, err)
			continue
		}
		if record.Instruction == "" || record.Output == "" {
			log.Printf("[CORPUS] Skipping metadata line %d: missing instruction or output", lineNo)
			continue
		}
		store.documents = append(store.documents, Document{
			ID:     len(store.documents),
			Record: record,
			Text:   flatten(record),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus metadata: %w", err)
	}

	return store, nil
}

// Size reports the number of documents in the store.
func (s *Store) Size() int { return len(s.documents) }

// Contains reports whether id maps to a document.
func (s *Store) Contains(id int) bool { return id >= 0 && id < len(s.documents) }

// Get returns the document for id. The boolean is false when the id is
// outside the store, which happens when the index is stale relative to the
// metadata file.
func (s *Store) Get(id int) (Document, bool) {
	if !s.Contains(id) {
		return Document{}, false
	}
	return s.documents[id], true
}

// Documents returns every document in id order.
func (s *Store) Documents() []Document { return s.documents }

func flatten(r Record) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.Instruction, r.Input, r.Output} {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
