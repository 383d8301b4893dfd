package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// defaultTimeout bounds every store call whose caller did not set a
// deadline of its own.
const defaultTimeout = 30 * time.Second

var (
	client   *mongo.Client
	database *mongo.Database
)

func Connect(ctx context.Context) error {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "hospital"
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cl, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := cl.Ping(ctx, nil); err != nil {
		return err
	}
	client = cl
	database = cl.Database(dbName)
	log.Println("Connected to MongoDB:", dbName)
	return nil
}

func Disconnect(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Println("Error disconnecting MongoDB:", err)
	}
}

func OpenCollection(name string) *mongo.Collection {
	return database.Collection(name)
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultTimeout)
}

func FindOne(ctx context.Context, coll *mongo.Collection, filter interface{}, result interface{}) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return coll.FindOne(ctx, filter).Decode(result)
}

func FindAll(ctx context.Context, coll *mongo.Collection, filter interface{}, opts *options.FindOptions, results interface{}) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, results)
}

func CreateOne(ctx context.Context, coll *mongo.Collection, doc interface{}) (*mongo.InsertOneResult, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return coll.InsertOne(ctx, doc)
}

func UpdateOne(ctx context.Context, coll *mongo.Collection, filter, update interface{}) (*mongo.UpdateResult, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return coll.UpdateOne(ctx, filter, update)
}

// FindOneAndUpdate applies update and decodes the post-update document
// into result. Returns mongo.ErrNoDocuments when the filter matches
// nothing.
func FindOneAndUpdate(ctx context.Context, coll *mongo.Collection, filter, update interface{}, result interface{}) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(result)
}

func DeleteOne(ctx context.Context, coll *mongo.Collection, filter interface{}) (*mongo.DeleteResult, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return coll.DeleteOne(ctx, filter)
}

func CountDocuments(ctx context.Context, coll *mongo.Collection, filter interface{}) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return coll.CountDocuments(ctx, filter)
}

func Aggregate(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, results interface{}) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cursor.All(ctx, results)
}

// WithTransaction runs fn inside a single mongo session; any error from
// fn aborts the transaction so partial writes are never visible.
func WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	session, err := client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
