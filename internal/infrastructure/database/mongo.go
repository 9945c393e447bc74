package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	UsersCollection      = "users"
	CategoriesCollection = "categories"
	GenresCollection     = "genres"
	TitlesCollection     = "titles"
	ReviewsCollection    = "reviews"
	CommentsCollection   = "comments"
)

const connectTimeout = 10 * time.Second

// MongoDBClient wraps a connected client.
type MongoDBClient struct {
	Client *mongo.Client
}

// NewMongoDBClient connects and pings the primary.
func NewMongoDBClient(ctx context.Context, uri string) (*MongoDBClient, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoDBClient{Client: client}, nil
}

// Disconnect closes the client, waiting at most connectTimeout.
func (m *MongoDBClient) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

// indexSpecs lists the indexes each collection needs. Unique ones back the
// uniqueness rules; the rest serve lookups and cascades.
func indexSpecs() map[string][]mongo.IndexModel {
	unique := options.Index().SetUnique(true)
	return map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		CategoriesCollection: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		},
		GenresCollection: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		},
		TitlesCollection: {
			{Keys: bson.D{{Key: "year", Value: -1}, {Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "category_slug", Value: 1}}},
			{Keys: bson.D{{Key: "genre_slugs", Value: 1}}},
		},
		ReviewsCollection: {
			{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "title_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_author_title")},
			{Keys: bson.D{{Key: "title_id", Value: 1}, {Key: "pub_date", Value: -1}}},
		},
		CommentsCollection: {
			{Keys: bson.D{{Key: "review_id", Value: 1}, {Key: "pub_date", Value: -1}}},
			{Keys: bson.D{{Key: "author_id", Value: 1}}},
		},
	}
}

// EnsureIndexes creates missing indexes; existing ones are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range indexSpecs() {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
