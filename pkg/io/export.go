package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/memstack/pkg/memmap"
)

// Summary is the root record of a document payload.
type Summary struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Start uint64 `json:"start" bson:"start"`
	Size  uint64 `json:"size" bson:"size"`
	End   uint64 `json:"end" bson:"end"`
}

// Document is the flat payload handed to the packaging side: the HTML sink
// embeds it, the server serves it, and the store archives it. It is the
// exact interchange shape between the core and everything downstream.
type Document struct {
	// DocumentID identifies one decoded document across cache entries,
	// server sessions, and store records.
	DocumentID string            `json:"document_id,omitempty" bson:"document_id,omitempty"`
	Root       Summary           `json:"root" bson:"root"`
	Nodes      []memmap.FlatNode `json:"nodes" bson:"nodes"`
}

// Export builds the document payload from a flattened index, assigning a
// fresh document ID.
func Export(idx *memmap.Index) Document {
	root := idx.Root()
	return Document{
		DocumentID: uuid.NewString(),
		Root: Summary{
			ID:    root.ID,
			Name:  root.Name,
			Start: root.Start,
			Size:  root.Size,
			End:   root.End,
		},
		Nodes: idx.Nodes(),
	}
}

// MarshalDocument serializes a document payload as indented JSON.
func MarshalDocument(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// ReadDocument deserializes a document payload from r.
func ReadDocument(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, err
	}
	return d, nil
}

// ExportJSON writes the document payload for a flattened index to a file.
func ExportJSON(idx *memmap.Index, path string) error {
	data, err := MarshalDocument(Export(idx))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
