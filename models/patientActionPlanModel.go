package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ActionPlanStatusInProgress = "in_progress"
	ActionPlanStatusCompleted  = "completed"
)

func IsValidActionPlanStatus(s string) bool {
	return s == ActionPlanStatusInProgress || s == ActionPlanStatusCompleted
}

// PatientActionPlan is a treatment plan over a date range. Trainings holds the
// patient trainings completed inside the range, captured once when the plan
// transitions to completed.
type PatientActionPlan struct {
	ID              primitive.ObjectID   `json:"id" bson:"_id"`
	PatientID       primitive.ObjectID   `json:"patient_id" bson:"patient_id"`
	StartDate       time.Time            `json:"start_date" bson:"start_date"`
	EndDate         time.Time            `json:"end_date" bson:"end_date"`
	Diagnosis       *string              `json:"diagnosis" validate:"required"`
	PlanDescription *string              `json:"plan_description" bson:"plan_description" validate:"required"`
	Status          string               `json:"status" bson:"status"`
	Trainings       []primitive.ObjectID `json:"trainings" bson:"trainings"`
	CreatedAt       time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at" bson:"updated_at"`
}
