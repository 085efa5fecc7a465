package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carecircleapp/carecircle-api/internal/models"
)

// MongoTaskStore implements TaskStore against the "tasks" collection.
type MongoTaskStore struct {
	c *mongo.Collection
}

func NewMongoTaskStore(db *mongo.Database) *MongoTaskStore {
	return &MongoTaskStore{c: db.Collection("tasks")}
}

func (s *MongoTaskStore) ListByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "deadline", Value: 1}})
	cursor, err := s.c.Find(ctx, bson.M{"assignedTo": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = make([]models.Task, 0)
	}
	return tasks, nil
}
