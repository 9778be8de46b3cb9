package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/taskboard/taskboard/internal/server/repositories/projects"
	"github.com/taskboard/taskboard/internal/server/repositories/tasks"
	"github.com/taskboard/taskboard/internal/server/repositories/users"
)

const connectTimeout = 10 * time.Second

// MongoStore is the production Store over a MongoDB database.
type MongoStore struct {
	client   *mongo.Client
	users    *users.MongoRepository
	projects *projects.MongoRepository
	tasks    *tasks.MongoRepository
}

// NewMongoStore connects to the database named by uri and dbName and
// verifies the connection with a ping.
func NewMongoStore(ctx context.Context, uri string, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect error: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping error: %w", err)
	}

	db := client.Database(dbName)
	return &MongoStore{
		client:   client,
		users:    users.NewMongoRepository(db),
		projects: projects.NewMongoRepository(db),
		tasks:    tasks.NewMongoRepository(db),
	}, nil
}

func (s *MongoStore) Users() users.Repository       { return s.users }
func (s *MongoStore) Projects() projects.Repository { return s.projects }
func (s *MongoStore) Tasks() tasks.Repository       { return s.tasks }

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
