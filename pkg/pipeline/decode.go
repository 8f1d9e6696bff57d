package pipeline

import (
	"bytes"
	"os"

	"github.com/matzehuels/memstack/pkg/cache"
	"github.com/matzehuels/memstack/pkg/errors"
	"github.com/matzehuels/memstack/pkg/io"
	"github.com/matzehuels/memstack/pkg/memmap"
)

// Decode reads, validates, and flattens an input file into a document
// payload. Validation failures carry every violation found.
func Decode(opts Options) (io.Document, string, error) {
	raw, err := os.ReadFile(opts.Input)
	if err != nil {
		return io.Document{}, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", opts.Input)
	}
	doc, err := decodeBytes(raw)
	if err != nil {
		return io.Document{}, "", err
	}
	return doc, contentHash(raw), nil
}

func decodeBytes(raw []byte) (io.Document, error) {
	root, err := io.ReadJSON(bytes.NewReader(raw))
	if err != nil {
		return io.Document{}, err
	}
	if vs := memmap.Validate(root); len(vs) > 0 {
		return io.Document{}, errors.FromViolations(vs)
	}
	return io.Export(memmap.NewIndex(memmap.Flatten(root))), nil
}

// contentHash identifies one raw input across cache entries.
func contentHash(raw []byte) string {
	return cache.Hash(raw)
}

// DocumentIndex rebuilds the flattened index from a document payload. The
// payload already carries the flat node list, so no re-validation happens.
func DocumentIndex(doc io.Document) *memmap.Index {
	return memmap.NewIndex(doc.Nodes)
}
