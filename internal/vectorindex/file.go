// internal/vectorindex/file.go
package vectorindex

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// File format: little-endian header (magic, version, dimension, count)
// followed by count rows of dimension float32 values. Row order is id order.
const (
	fileMagic   uint32 = 0x4b565849 // "IXVK"
	fileVersion uint32 = 1
)

// WriteFile persists the index to path, creating parent directories as needed.
func (idx *Index) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create index directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	header := []uint32{fileMagic, fileVersion, uint32(idx.dim), uint32(len(idx.vectors))}
	for _, v := range header {
		if err := binary.Write(writer, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("write index header: %w", err)
		}
	}
	for _, row := range idx.vectors {
		for _, val := range row {
			if err := binary.Write(writer, binary.LittleEndian, math.Float32bits(val)); err != nil {
				return fmt.Errorf("write index row: %w", err)
			}
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush index: %w", err)
	}
	return nil
}

// ReadFile loads a persisted index from path.
func ReadFile(path string) (*Index, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	var magic, version, dim, count uint32
	for _, field := range []*uint32{&magic, &version, &dim, &count} {
		if err := binary.Read(reader, binary.LittleEndian, field); err != nil {
			return nil, fmt.Errorf("read index header: %w", err)
		}
	}
	if magic != fileMagic {
		return nil, fmt.Errorf("not an index file: bad magic %#x", magic)
	}
	if version != fileVersion {
		return nil, fmt.Errorf("unsupported index file version %d", version)
	}

	idx, err := New(int(dim))
	if err != nil {
		return nil, err
	}
	idx.vectors = make([][]float32, 0, count)
	for i := uint32(0); i < count; i++ {
		row := make([]float32, dim)
		for j := range row {
			var bits uint32
			if err := binary.Read(reader, binary.LittleEndian, &bits); err != nil {
				if err == io.EOF || err == io.ErrUnexpectedEOF {
					return nil, fmt.Errorf("index file truncated at row %d", i)
				}
				return nil, fmt.Errorf("read index row %d: %w", i, err)
			}
			row[j] = math.Float32frombits(bits)
		}
		idx.vectors = append(idx.vectors, row)
	}
	return idx, nil
}
