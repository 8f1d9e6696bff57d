// Package store archives document payloads so rendered maps can be fetched
// again by ID, from another machine or after the input file is gone.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/memstack/pkg/errors"
	"github.com/matzehuels/memstack/pkg/io"
)

// Store is the document archive interface.
type Store interface {
	// Publish upserts a document by its document ID.
	Publish(ctx context.Context, doc io.Document) error

	// Fetch retrieves a document by ID.
	Fetch(ctx context.Context, documentID string) (io.Document, error)

	// Close releases the connection.
	Close(ctx context.Context) error
}

// MongoStore is the MongoDB-backed archive.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect dials MongoDB and verifies the connection.
func Connect(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "store: mongo_uri is not configured")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping %s", uri)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Publish upserts the document keyed by document_id, so republishing the
// same document replaces the stored copy.
func (s *MongoStore) Publish(ctx context.Context, doc io.Document) error {
	if doc.DocumentID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "store: document has no ID")
	}
	filter := bson.M{"document_id": doc.DocumentID}
	_, err := s.coll.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "publish %s", doc.DocumentID)
	}
	return nil
}

// Fetch retrieves a document by ID.
func (s *MongoStore) Fetch(ctx context.Context, documentID string) (io.Document, error) {
	var doc io.Document
	err := s.coll.FindOne(ctx, bson.M{"document_id": documentID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return io.Document{}, errors.New(errors.ErrCodeDocumentNotFound, "document %s not found", documentID)
	}
	if err != nil {
		return io.Document{}, errors.Wrap(errors.ErrCodeInternal, err, "fetch %s", documentID)
	}
	return doc, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
