package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Training groups exercises into a reusable routine. Categories are derived
// from the exercises' categories and are never set by clients directly.
type Training struct {
	ID         primitive.ObjectID   `json:"id" bson:"_id"`
	Name       *string              `json:"name" validate:"required,min=2,max=100"`
	Exercises  []primitive.ObjectID `json:"exercises" bson:"exercises"`
	Categories []primitive.ObjectID `json:"categories" bson:"categories"`
	CreatedAt  time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at" bson:"updated_at"`
}
