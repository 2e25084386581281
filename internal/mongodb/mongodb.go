// Package mongodb stores keywords in a MongoDB collection.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"keywatch/internal/models"
	"keywatch/internal/store"
)

const (
	// DefaultDatabase is used when the connection string names no database.
	DefaultDatabase = "keywatch"

	collectionName  = "keywords"
	uniqueIndexName = "channelId_1_text_1"
)

// keywordDocument is the stored shape of a keyword.
type keywordDocument struct {
	ID         bson.ObjectID `bson:"_id"`
	ChannelID  string        `bson:"channelId"`
	Text       string        `bson:"text"`
	AlertCount int64         `bson:"alertCount"`
	CreatedAt  time.Time     `bson:"createdAt"`
}

func (d keywordDocument) toModel() models.Keyword {
	return models.Keyword{
		ID:         d.ID.Hex(),
		ChannelID:  d.ChannelID,
		Text:       d.Text,
		AlertCount: d.AlertCount,
	}
}

// Store is a keyword store backed by MongoDB.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// New connects to MongoDB, verifies the connection, and ensures the
// (channelId, text) unique index exists.
func New(ctx context.Context, uri string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &Store{
		client:     client,
		collection: client.Database(DatabaseName(uri)).Collection(collectionName),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return s, nil
}

// DatabaseName returns the database named in the URI path, or DefaultDatabase.
func DatabaseName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return DefaultDatabase
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return DefaultDatabase
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "channelId", Value: 1},
			{Key: "text", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName(uniqueIndexName),
	})
	if err != nil {
		return fmt.Errorf("failed to create unique index: %w", err)
	}
	return nil
}

// List returns all keywords ordered by _id, which follows insertion order.
func (s *Store) List(ctx context.Context) ([]models.Keyword, error) {
	cursor, err := s.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []keywordDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	keywords := make([]models.Keyword, 0, len(docs))
	for _, d := range docs {
		keywords = append(keywords, d.toModel())
	}
	return keywords, nil
}

// Create inserts a keyword after checking the pair is free. The unique index
// catches pairs inserted between the check and the insert.
func (s *Store) Create(ctx context.Context, channelID, text string) (*models.Keyword, error) {
	in, err := store.Prepare(channelID, text)
	if err != nil {
		return nil, err
	}

	filter := bson.D{
		{Key: "channelId", Value: in.ChannelID},
		{Key: "text", Value: in.Text},
	}
	err = s.collection.FindOne(ctx, filter).Err()
	switch {
	case err == nil:
		return nil, store.ErrDuplicateKeyword
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, err
	}

	doc := keywordDocument{
		ID:        bson.NewObjectID(),
		ChannelID: in.ChannelID,
		Text:      in.Text,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, store.ErrDuplicateKeyword
		}
		return nil, err
	}

	kw := doc.toModel()
	return &kw, nil
}

// Delete removes a keyword by its hex ObjectID.
func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrKeywordNotFound
	}

	result, err := s.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return store.ErrKeywordNotFound
	}
	return nil
}

// Ping checks the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *Store) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		slog.Error("failed to disconnect from mongodb", "error", err)
	}
}
