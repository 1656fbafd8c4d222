package commentstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio/internal/comments"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	DefaultMongoDatabase = "portfolioCluster"
	CollectionName       = "comments"
)

// collection is the subset of *mongo.Collection the store needs.
type collection interface {
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (cursor, error)
	InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (any, error)
}

type cursor interface {
	All(ctx context.Context, results any) error
	Close(ctx context.Context) error
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (mc *mongoCollection) Find(ctx context.Context, filter any, opts ...*options.FindOptions) (cursor, error) {
	cur, err := mc.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return cur, nil
}

func (mc *mongoCollection) InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (any, error) {
	res, err := mc.coll.InsertOne(ctx, document, opts...)
	if err != nil {
		return nil, err
	}
	return res.InsertedID, nil
}

// commentDocument is the BSON shape of a stored comment.
type commentDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Message   string             `bson:"message"`
	Timestamp time.Time          `bson:"timestamp"`
}

func (d commentDocument) toComment() comments.Comment {
	return comments.Comment{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Message:   d.Message,
		Timestamp: d.Timestamp.UTC(),
	}
}

// Mongo stores comments in a MongoDB collection.
type Mongo struct {
	client     *mongo.Client
	collection collection
}

// ConnectMongo dials uri, verifies the connection and ensures the timestamp index.
func ConnectMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	if uri == "" {
		return nil, errors.New("MONGODB_URI is required for the mongo comment store")
	}
	if database == "" {
		database = DefaultMongoDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(database).Collection(CollectionName)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create timestamp index: %w", err)
	}

	return &Mongo{client: client, collection: &mongoCollection{coll: coll}}, nil
}

func (m *Mongo) List(ctx context.Context) ([]comments.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cur, err := m.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	defer cur.Close(ctx)

	var docs []commentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	out := make([]comments.Comment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toComment())
	}
	return out, nil
}

func (m *Mongo) Insert(ctx context.Context, c comments.Comment) (comments.Comment, error) {
	doc := commentDocument{
		Name:      c.Name,
		Message:   c.Message,
		Timestamp: c.Timestamp,
	}

	insertedID, err := m.collection.InsertOne(ctx, doc)
	if err != nil {
		return comments.Comment{}, fmt.Errorf("insert comment: %w", err)
	}

	oid, ok := insertedID.(primitive.ObjectID)
	if !ok {
		return comments.Comment{}, fmt.Errorf("unexpected inserted id type %T", insertedID)
	}
	c.ID = oid.Hex()
	return c, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
