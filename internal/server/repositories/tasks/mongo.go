package tasks

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/taskboard/internal/common"
	"github.com/taskboard/taskboard/internal/server/models"
)

// MongoRepository stores tasks in the "tasks" collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection("tasks")}
}

func (r *MongoRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	res, err := r.coll.InsertOne(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	task.ID = res.InsertedID.(primitive.ObjectID)
	return task, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	task := &models.Task{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

func (r *MongoRepository) GetAll(ctx context.Context) ([]*models.Task, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRepository) GetByProject(ctx context.Context, projectID primitive.ObjectID) ([]*models.Task, error) {
	return r.find(ctx, bson.M{"project": projectID})
}

func (r *MongoRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, common.ErrorNotFound
	}
	return task, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) ([]*models.Task, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	var tasks []*models.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tasks, nil
}
