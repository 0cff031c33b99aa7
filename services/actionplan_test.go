package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang-physiobackend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTrainingQuery struct {
	trainings []models.PatientTraining
	calls     int
}

func (f *fakeTrainingQuery) FindCompletedTrainingIDs(_ context.Context, patientID primitive.ObjectID, start, end time.Time) ([]primitive.ObjectID, error) {
	f.calls++
	var ids []primitive.ObjectID
	for _, training := range f.trainings {
		if training.PatientID != patientID || training.Status != models.TrainingStatusCompleted {
			continue
		}
		if training.CompletedDate == nil {
			continue
		}
		completed := *training.CompletedDate
		if completed.Before(start) || completed.After(end) {
			continue
		}
		ids = append(ids, training.ID)
	}
	return ids, nil
}

func TestApplyActionPlanStatusLinksCompletedTrainings(t *testing.T) {
	patientID := primitive.NewObjectID()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	inWindow := start.Add(10 * 24 * time.Hour)
	onEnd := end
	outside := end.Add(24 * time.Hour)

	completedInWindow := models.PatientTraining{ID: primitive.NewObjectID(), PatientID: patientID, Status: models.TrainingStatusCompleted, CompletedDate: &inWindow}
	completedOnBoundary := models.PatientTraining{ID: primitive.NewObjectID(), PatientID: patientID, Status: models.TrainingStatusCompleted, CompletedDate: &onEnd}
	completedOutside := models.PatientTraining{ID: primitive.NewObjectID(), PatientID: patientID, Status: models.TrainingStatusCompleted, CompletedDate: &outside}
	incompleted := models.PatientTraining{ID: primitive.NewObjectID(), PatientID: patientID, Status: models.TrainingStatusIncompleted}
	otherPatient := models.PatientTraining{ID: primitive.NewObjectID(), PatientID: primitive.NewObjectID(), Status: models.TrainingStatusCompleted, CompletedDate: &inWindow}

	query := &fakeTrainingQuery{trainings: []models.PatientTraining{
		completedInWindow, completedOnBoundary, completedOutside, incompleted, otherPatient,
	}}

	plan := models.PatientActionPlan{
		PatientID: patientID,
		StartDate: start,
		EndDate:   end,
		Status:    models.ActionPlanStatusInProgress,
	}

	if err := ApplyActionPlanStatus(context.Background(), query, &plan, models.ActionPlanStatusCompleted); err != nil {
		t.Fatalf("ApplyActionPlanStatus: %v", err)
	}

	if plan.Status != models.ActionPlanStatusCompleted {
		t.Errorf("status = %q", plan.Status)
	}
	if len(plan.Trainings) != 2 {
		t.Fatalf("trainings = %v, want the two completions inside the window", plan.Trainings)
	}
	got := map[primitive.ObjectID]bool{plan.Trainings[0]: true, plan.Trainings[1]: true}
	if !got[completedInWindow.ID] || !got[completedOnBoundary.ID] {
		t.Errorf("trainings = %v, want %v and %v", plan.Trainings, completedInWindow.ID, completedOnBoundary.ID)
	}
}

func TestApplyActionPlanStatusSnapshotDoesNotRerun(t *testing.T) {
	patientID := primitive.NewObjectID()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	query := &fakeTrainingQuery{}
	plan := models.PatientActionPlan{
		PatientID: patientID,
		StartDate: start,
		EndDate:   end,
		Status:    models.ActionPlanStatusInProgress,
	}

	if err := ApplyActionPlanStatus(context.Background(), query, &plan, models.ActionPlanStatusCompleted); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if len(plan.Trainings) != 0 {
		t.Fatalf("trainings = %v, want empty", plan.Trainings)
	}

	// A training completed inside the window after the plan is already
	// completed must not retroactively appear.
	inWindow := start.Add(5 * 24 * time.Hour)
	query.trainings = append(query.trainings, models.PatientTraining{
		ID: primitive.NewObjectID(), PatientID: patientID,
		Status: models.TrainingStatusCompleted, CompletedDate: &inWindow,
	})

	if err := ApplyActionPlanStatus(context.Background(), query, &plan, models.ActionPlanStatusCompleted); err != nil {
		t.Fatalf("second completion: %v", err)
	}
	if len(plan.Trainings) != 0 {
		t.Errorf("trainings = %v, linker re-ran after completion", plan.Trainings)
	}
	if query.calls != 1 {
		t.Errorf("query called %d times, want 1", query.calls)
	}
}

func TestApplyActionPlanStatusLatch(t *testing.T) {
	plan := models.PatientActionPlan{
		PatientID: primitive.NewObjectID(),
		Status:    models.ActionPlanStatusCompleted,
		Trainings: []primitive.ObjectID{primitive.NewObjectID()},
	}

	err := ApplyActionPlanStatus(context.Background(), &fakeTrainingQuery{}, &plan, models.ActionPlanStatusInProgress)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("err = %v, want ErrIllegalTransition", err)
	}
	if plan.Status != models.ActionPlanStatusCompleted || len(plan.Trainings) != 1 {
		t.Error("plan changed after rejected transition")
	}
}

func TestApplyActionPlanStatusInvalidValue(t *testing.T) {
	plan := models.PatientActionPlan{Status: models.ActionPlanStatusInProgress}

	err := ApplyActionPlanStatus(context.Background(), &fakeTrainingQuery{}, &plan, "paused")
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestValidateActionPlanDates(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := ValidateActionPlanDates(start, start.Add(24*time.Hour)); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
	if err := ValidateActionPlanDates(start, start); err == nil {
		t.Error("equal dates accepted")
	}
	if err := ValidateActionPlanDates(start, start.Add(-time.Hour)); err == nil {
		t.Error("inverted range accepted")
	}
}
