package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TrainingStatusIncompleted = "incompleted"
	TrainingStatusCompleted   = "completed"
)

func IsValidTrainingStatus(s string) bool {
	return s == TrainingStatusIncompleted || s == TrainingStatusCompleted
}

type PatientTraining struct {
	ID            primitive.ObjectID `json:"id" bson:"_id"`
	PatientID     primitive.ObjectID `json:"patient_id" bson:"patient_id"`
	TrainingID    primitive.ObjectID `json:"training_id" bson:"training_id"`
	AssignedDate  time.Time          `json:"assigned_date" bson:"assigned_date"`
	ScheduledDate time.Time          `json:"scheduled_date" bson:"scheduled_date"`
	Status        string             `json:"status" bson:"status"`
	CompletedDate *time.Time         `json:"completed_date,omitempty" bson:"completed_date,omitempty"`
	Recording     string             `json:"recording,omitempty" bson:"recording,omitempty"`
	WrappedKey    string             `json:"-" bson:"wrapped_key,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}
