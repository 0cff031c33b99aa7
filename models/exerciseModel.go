package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ExerciseTypeIsometric = "isometric"
	ExerciseTypeIsotonic  = "isotonic"
	ExerciseTypeRead      = "read"
	ExerciseTypeCustom    = "custom"
)

func ExerciseTypes() []string {
	return []string{ExerciseTypeIsometric, ExerciseTypeIsotonic, ExerciseTypeRead, ExerciseTypeCustom}
}

func IsValidExerciseType(t string) bool {
	switch t {
	case ExerciseTypeIsometric, ExerciseTypeIsotonic, ExerciseTypeRead, ExerciseTypeCustom:
		return true
	}
	return false
}

type Exercise struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id"`
	Name        *string              `json:"name" validate:"required,min=2,max=100"`
	Type        *string              `json:"type" validate:"required"`
	Link        string               `json:"link,omitempty" bson:"link,omitempty"`
	Description string               `json:"description,omitempty" bson:"description,omitempty"`
	Categories  []primitive.ObjectID `json:"categories" bson:"categories"`
	CreatedAt   time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" bson:"updated_at"`
}
