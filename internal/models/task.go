package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	AssignedTo  primitive.ObjectID `bson:"assignedTo" json:"assignedTo"`
	AssignedBy  primitive.ObjectID `bson:"assignedBy,omitempty" json:"assignedBy,omitempty"`
	Deadline    time.Time          `bson:"deadline" json:"deadline"`
	Status      string             `bson:"status" json:"status"`
}
