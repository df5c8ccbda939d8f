// Package tsv reads and writes chunk manifests in tab-separated form.
//
// The first line holds the image size in bytes. Every following line holds
// three tab-separated fields: chunk id, start byte and chunk size.
//
//	12
//	A	0	5
//	B	3	5
//	C	2	10
package tsv

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
	"github.com/custodia-labs/chunkroute/internal/core/ports/driven"
)

// Ensure Codec implements the interface.
var _ driven.ManifestCodec = (*Codec)(nil)

// maxLineSize bounds a single manifest line.
const maxLineSize = 1 << 20

// Codec is the tab-separated manifest codec.
type Codec struct{}

// New creates a new TSV codec.
func New() *Codec {
	return &Codec{}
}

// Decode reads a whole manifest from r.
// Blank lines are skipped and trailing carriage returns are ignored.
func (c *Codec) Decode(r io.Reader) (*domain.Manifest, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	manifest := &domain.Manifest{}
	header := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !header {
			size, err := parseInt(line)
			if err != nil || size <= 0 {
				return nil, fmt.Errorf("%w: line %d: invalid image size %q", domain.ErrMalformedRecord, lineNo, line)
			}
			manifest.ImageSize = size
			header = true
			continue
		}

		chunk, err := parseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		manifest.Chunks = append(manifest.Chunks, chunk)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	if !header {
		return nil, fmt.Errorf("%w: missing image size header", domain.ErrMalformedRecord)
	}

	return manifest, nil
}

// Encode writes the manifest header and records in file order.
func (c *Codec) Encode(w io.Writer, manifest *domain.Manifest) error {
	if manifest == nil {
		return domain.ErrInvalidInput
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", manifest.ImageSize)
	for _, ch := range manifest.Chunks {
		fmt.Fprintf(bw, "%s\t%d\t%d\n", ch.ID, ch.Start, ch.Size)
	}
	return bw.Flush()
}

func parseRecord(line string) (domain.Chunk, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 3 {
		return domain.Chunk{}, fmt.Errorf("%w: expected 3 tab-separated fields, got %d",
			domain.ErrMalformedRecord, len(fields))
	}

	id := strings.TrimSpace(fields[0])
	if id == "" {
		return domain.Chunk{}, fmt.Errorf("%w: empty chunk id", domain.ErrMalformedRecord)
	}
	start, err := parseInt(fields[1])
	if err != nil {
		return domain.Chunk{}, fmt.Errorf("%w: chunk %s: invalid start %q", domain.ErrMalformedRecord, id, fields[1])
	}
	size, err := parseInt(fields[2])
	if err != nil {
		return domain.Chunk{}, fmt.Errorf("%w: chunk %s: invalid size %q", domain.ErrMalformedRecord, id, fields[2])
	}
	if start < 0 {
		return domain.Chunk{}, fmt.Errorf("%w: chunk %s has negative start %d", domain.ErrMalformedRecord, id, start)
	}
	if size <= 0 {
		return domain.Chunk{}, fmt.Errorf("%w: chunk %s has non-positive size %d", domain.ErrMalformedRecord, id, size)
	}
	if start > math.MaxInt64-size {
		return domain.Chunk{}, fmt.Errorf("%w: chunk %s range %d+%d overflows", domain.ErrMalformedRecord, id, start, size)
	}

	return domain.Chunk{ID: id, Start: start, Size: size}, nil
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
