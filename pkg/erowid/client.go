package erowid

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Document is one Erowid experience report, as read from the configured
// Plebiscite collection. Bifrost treats the collaborator as an opaque
// datasource; this mirrors only the fields the erowid query contract
// actually projects.
type Document struct {
	Title         string        `bson:"title"`
	Text          string        `bson:"text"`
	Meta          Meta          `bson:"meta"`
	SubstanceInfo SubstanceInfo `bson:"substanceInfo"`
}

// Meta carries the publish timestamp the erowid query sorts on.
type Meta struct {
	Published time.Time `bson:"published"`
}

// SubstanceInfo names the substance a report is about.
type SubstanceInfo struct {
	Substance string `bson:"substance"`
}

// Client is a lazily-connected, connection-pooled handle onto the
// Plebiscite collection: a config struct goes in, a pooled client with a
// connectivity check comes out on first use.
type Client struct {
	cfg Config
	log *slog.Logger

	once       sync.Once
	connectErr error
	mongo      *mongo.Client
	collection *mongo.Collection
}

// New constructs a Client that connects on first use. Callers must only
// construct one when cfg.Enabled is true.
func New(cfg Config) *Client {
	return &Client{cfg: cfg, log: slog.With("component", "erowid")}
}

func (c *Client) connect(ctx context.Context) error {
	c.once.Do(func() {
		client, err := mongo.Connect(options.Client().ApplyURI(c.cfg.URL))
		if err != nil {
			c.connectErr = fmt.Errorf("connecting to plebiscite mongo: %w", err)
			return
		}
		if err := client.Ping(ctx, nil); err != nil {
			c.connectErr = fmt.Errorf("pinging plebiscite mongo: %w", err)
			return
		}
		c.mongo = client
		c.collection = client.Database(c.cfg.Database).Collection(c.cfg.Collection)
		c.log.Info("connected to plebiscite datasource", "database", c.cfg.Database, "collection", c.cfg.Collection)
	})
	return c.connectErr
}

// Query returns Plebiscite documents sorted by meta.published descending,
// optionally filtered to a single substance, paginated by limit/offset.
// The substance filter is applied only when substanceName is non-empty;
// see DESIGN.md for the inverted-boolean bug this corrects relative to
// the legacy behavior.
func (c *Client) Query(ctx context.Context, substanceName string, limit, offset int) ([]Document, error) {
	if err := c.connect(ctx); err != nil {
		return nil, err
	}

	filter := bson.M{}
	if substanceName != "" {
		filter["substanceInfo.substance"] = substanceName
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "meta.published", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := c.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("querying plebiscite collection: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding plebiscite documents: %w", err)
	}
	return docs, nil
}

// Close releases the underlying Mongo connection, if one was established.
func (c *Client) Close(ctx context.Context) error {
	if c.mongo == nil {
		return nil
	}
	return c.mongo.Disconnect(ctx)
}
