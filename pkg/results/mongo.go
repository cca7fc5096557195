package results

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/coalition/pkg/errors"
)

// Default MongoDB names.
const (
	DefaultMongoDatabase   = "coalition"
	DefaultMongoCollection = "manipulations"
)

// MongoConfig configures [NewMongoSink].
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	// Timeout bounds connecting and each insert. Zero means 10s.
	Timeout time.Duration
}

// MongoSink inserts records into a MongoDB collection.
type MongoSink struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoSink connects to cfg.URI and pings the server.
func NewMongoSink(ctx context.Context, cfg MongoConfig) (*MongoSink, error) {
	if err := errors.ValidateURI(cfg.URI, "mongodb", "mongodb+srv"); err != nil {
		return nil, err
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetServerSelectionTimeout(cfg.Timeout))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}
	return &MongoSink{
		client:  client,
		coll:    client.Database(cfg.Database).Collection(cfg.Collection),
		timeout: cfg.Timeout,
	}, nil
}

// Save inserts rec along with both profiles as string arrays.
func (s *MongoSink) Save(ctx context.Context, rec Record) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if _, err := s.coll.InsertOne(ctx, document(rec)); err != nil {
		return fmt.Errorf("insert manipulation: %w", err)
	}
	return nil
}

func (s *MongoSink) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Sink = (*MongoSink)(nil)

func document(rec Record) bson.M {
	return bson.M{
		"_id":             rec.ID,
		"created_at":      rec.CreatedAt,
		"candidates":      rec.Candidates,
		"coalition_size":  rec.CoalitionSize,
		"attempt":         rec.Attempt,
		"original_winner": int(rec.OriginalWinner),
		"new_winner":      int(rec.NewWinner),
		"order":           rec.Order.String(),
		"coalition":       rec.Coalition,
		"changed":         rec.Changed,
		"original":        profileLines(rec.Original),
		"manipulated":     profileLines(rec.Manipulated),
	}
}
