package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	// DefaultMongoDatabase is used when the URI names no database.
	DefaultMongoDatabase = "program2mass"
	mongoCollection      = "runs"
	mongoTimeout         = 10 * time.Second
)

// runDoc is the stored document. The run is kept as its JSON encoding so
// the room and stats types need no BSON mapping.
type runDoc struct {
	ID        string    `bson:"_id"`
	CreatedAt time.Time `bson:"created_at"`
	Strategy  string    `bson:"strategy"`
	Rooms     int       `bson:"rooms"`
	Data      string    `bson:"data"`
}

// Mongo stores runs in a MongoDB collection.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongo connects to uri and verifies the connection.
func OpenMongo(ctx context.Context, uri string) (*Mongo, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, err
	}
	db := cs.Database
	if db == "" {
		db = DefaultMongoDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	coll := client.Database(db).Collection(mongoCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "created_at", Value: -1}}})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &Mongo{client: client, coll: coll}, nil
}

func (m *Mongo) Save(ctx context.Context, run *Run) error {
	if err := prepare(run); err != nil {
		return err
	}
	data, err := jsonRun(run)
	if err != nil {
		return err
	}
	doc := runDoc{
		ID:        run.ID,
		CreatedAt: run.CreatedAt,
		Strategy:  run.Strategy(),
		Data:      data,
	}
	if run.Result != nil {
		doc.Rooms = len(run.Result.Rooms)
	}
	_, err = m.coll.ReplaceOne(ctx, bson.M{"_id": run.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (m *Mongo) Get(ctx context.Context, id string) (*Run, error) {
	var doc runDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeRun([]byte(doc.Data))
}

func (m *Mongo) List(ctx context.Context, limit int) ([]*Run, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(listLimit(limit)))
	cur, err := m.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*Run
	for cur.Next(ctx) {
		var doc runDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		run, err := decodeRun([]byte(doc.Data))
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, cur.Err()
}

func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	return m.client.Disconnect(ctx)
}
