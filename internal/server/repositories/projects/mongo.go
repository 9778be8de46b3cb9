package projects

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

// MongoRepository stores projects in the "projects" collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection("projects")}
}

func (r *MongoRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	res, err := r.coll.InsertOne(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	project.ID = res.InsertedID.(primitive.ObjectID)
	return project, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	project := &models.Project{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return project, nil
}

func (r *MongoRepository) GetAll(ctx context.Context) ([]*models.Project, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	var projects []*models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return projects, nil
}

func (r *MongoRepository) Update(ctx context.Context, project *models.Project) (*models.Project, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": project.ID}, project)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, common.ErrorNotFound
	}
	return project, nil
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

func (r *MongoRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.DeletedCount, nil
}
