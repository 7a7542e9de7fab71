// internal/vectorindex/index.go
// Package vectorindex implements a flat nearest-neighbour index over
// fixed-dimension embedding vectors.
package vectorindex

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDimensionMismatch is returned when a vector's dimensionality does not
// match the index.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Neighbor is a single search hit: the stored vector's insertion-order id
// and its squared Euclidean distance from the query.
type Neighbor struct {
	ID       int
	Distance float64
}

// Index is an append-only flat index. Vectors are identified by insertion
// order, starting at zero. Search is brute force; corpora are small and
// rebuilt wholesale on change, so there is no removal operation.
//
// An Index is safe for concurrent reads once fully built.
type Index struct {
	dim     int
	vectors [][]float32
}

// New creates an empty index for vectors of the given dimension.
func New(dim int) (*Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid index dimension %d", dim)
	}
	return &Index{dim: dim}, nil
}

// Dim returns the index's vector dimension.
func (idx *Index) Dim() int { return idx.dim }

// Count returns the number of stored vectors.
func (idx *Index) Count() int { return len(idx.vectors) }

// Add appends vectors to the index, assigning ids in insertion order.
func (idx *Index) Add(vectors ...[]float32) error {
	for _, v := range vectors {
		if len(v) != idx.dim {
			return fmt.Errorf("%w: got %d, index dimension %d", ErrDimensionMismatch, len(v), idx.dim)
		}
	}
	idx.vectors = append(idx.vectors, vectors...)
	return nil
}

// Search returns the k nearest stored vectors to query, ordered by ascending
// squared L2 distance. Ties preserve insertion order. The result length is
// min(k, Count()).
func (idx *Index) Search(query []float32, k int) ([]Neighbor, error) {
	if len(query) != idx.dim {
		return nil, fmt.Errorf("%w: query has %d, index dimension %d", ErrDimensionMismatch, len(query), idx.dim)
	}
	if k <= 0 {
		return nil, nil
	}

	neighbors := make([]Neighbor, len(idx.vectors))
	for i, v := range idx.vectors {
		neighbors[i] = Neighbor{ID: i, Distance: squaredL2(query, v)}
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})

	if k > len(neighbors) {
		k = len(neighbors)
	}
	return neighbors[:k], nil
}

func squaredL2(a, b []float32) float64 {
	sum := 0.0
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
