package services

import (
	"context"
	"time"

	"golang-physiobackend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompletedTrainingQuery finds the ids of a patient's completed trainings
// whose completedDate falls inside [start, end] inclusive.
type CompletedTrainingQuery interface {
	FindCompletedTrainingIDs(ctx context.Context, patientID primitive.ObjectID, start, end time.Time) ([]primitive.ObjectID, error)
}

// ValidateActionPlanDates enforces endDate strictly after startDate.
func ValidateActionPlanDates(start, end time.Time) error {
	if !end.After(start) {
		return NewValidationError("end date must be after start date")
	}
	return nil
}

// ApplyActionPlanStatus moves a plan to the requested status. The
// in_progress -> completed transition is one way, and it is the single
// moment the plan's trainings list is captured: the patient's completed
// trainings inside the plan window replace whatever was stored. Trainings
// completed after the plan is already marked completed never appear.
func ApplyActionPlanStatus(ctx context.Context, trainings CompletedTrainingQuery, plan *models.PatientActionPlan, status string) error {
	if !models.IsValidActionPlanStatus(status) {
		return NewValidationError("invalid status %q, allowed values: in_progress, completed", status)
	}
	if plan.Status == models.ActionPlanStatusCompleted && status == models.ActionPlanStatusInProgress {
		return ErrIllegalTransition
	}

	if status == models.ActionPlanStatusCompleted && plan.Status != models.ActionPlanStatusCompleted {
		ids, err := trainings.FindCompletedTrainingIDs(ctx, plan.PatientID, plan.StartDate, plan.EndDate)
		if err != nil {
			return err
		}
		if ids == nil {
			ids = []primitive.ObjectID{}
		}
		plan.Trainings = ids
	}

	plan.Status = status
	return nil
}
