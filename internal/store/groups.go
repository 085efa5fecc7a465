package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carecircleapp/carecircle-api/internal/models"
)

// MongoGroupStore implements GroupStore against the "groups" collection.
type MongoGroupStore struct {
	c *mongo.Collection
}

func NewMongoGroupStore(db *mongo.Database) *MongoGroupStore {
	return &MongoGroupStore{c: db.Collection("groups")}
}

func (s *MongoGroupStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (s *MongoGroupStore) GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Group, error) {
	if len(ids) == 0 {
		return []models.Group{}, nil
	}
	cursor, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *MongoGroupStore) Save(ctx context.Context, g *models.Group) error {
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": g.ID}, g)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
