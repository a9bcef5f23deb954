package store

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/driftboard/driftboard/pkg/errors"
	"github.com/driftboard/driftboard/pkg/scene"
)

// DefaultMongoDatabase is the database name used when none is configured.
const DefaultMongoDatabase = "driftboard"

// MongoStore persists scenes as BSON documents in a MongoDB collection,
// one document per scene, keyed by scene ID.
type MongoStore struct {
	client *mongo.Client
	scenes *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and verifies the connection
// with a ping. An empty database name means DefaultMongoDatabase.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		scenes: client.Database(database).Collection("scenes"),
	}, nil
}

// Put saves a scene, overwriting any scene with the same ID (upsert).
func (s *MongoStore) Put(ctx context.Context, sc *scene.Scene) error {
	if sc.ID == "" {
		return errors.New(errors.ErrCodeInvalidScene, "scene has no id")
	}
	_, err := s.scenes.ReplaceOne(ctx,
		bson.M{"_id": sc.ID}, sc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save scene %s", sc.ID)
	}
	return nil
}

// Get loads a scene. Returns ErrNotFound when absent.
func (s *MongoStore) Get(ctx context.Context, id string) (*scene.Scene, error) {
	var sc scene.Scene
	err := s.scenes.FindOne(ctx, bson.M{"_id": id}).Decode(&sc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load scene %s", id)
	}
	return &sc, nil
}

// List returns identity info for every stored scene, sorted by ID.
func (s *MongoStore) List(ctx context.Context) ([]SceneInfo, error) {
	cursor, err := s.scenes.Find(ctx, bson.M{},
		options.Find().
			SetProjection(bson.M{"_id": 1, "name": 1}).
			SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list scenes")
	}
	defer cursor.Close(ctx)

	var infos []SceneInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode scene listing")
	}
	return infos, nil
}

// Delete removes a scene. Returns ErrNotFound when absent.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.scenes.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete scene %s", id)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
