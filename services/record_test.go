package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"golang-physiobackend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func twoFieldSnapshot() models.TemplateSnapshot {
	return models.TemplateSnapshot{
		TemplateName: "Initial anamnesis",
		Fields: []models.TemplateField{
			{Label: "pain_level", Type: models.FieldTypeText, Order: 1},
			{Label: "notes", Type: models.FieldTypeTextarea, Order: 2},
		},
	}
}

func TestNewFilledRecordDefaultsToDraft(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	record, err := NewFilledRecord(primitive.NewObjectID(), primitive.NewObjectID(), twoFieldSnapshot(), nil, "", nil, now)
	if err != nil {
		t.Fatalf("NewFilledRecord: %v", err)
	}
	if record.Status != models.RecordStatusDraft {
		t.Errorf("status = %q, want draft", record.Status)
	}
	if !record.FilledDate.Equal(now) {
		t.Errorf("filledDate = %v, want %v", record.FilledDate, now)
	}
	if record.CompletedDate != nil {
		t.Errorf("completedDate = %v, want nil", record.CompletedDate)
	}
	if record.Answers == nil {
		t.Error("answers should be an empty list, not nil")
	}
}

func TestNewFilledRecordCompletedNeedsAllAnswers(t *testing.T) {
	now := time.Now()
	answers := []models.Answer{{FieldLabel: "pain_level", Value: "5"}}

	_, err := NewFilledRecord(primitive.NewObjectID(), primitive.NewObjectID(), twoFieldSnapshot(), answers, models.RecordStatusCompleted, nil, now)

	var incomplete *IncompleteSubmissionError
	if !errors.As(err, &incomplete) {
		t.Fatalf("err = %v, want IncompleteSubmissionError", err)
	}
	if !reflect.DeepEqual(incomplete.MissingFields, []string{"notes"}) {
		t.Errorf("missing fields = %v, want [notes]", incomplete.MissingFields)
	}
}

func TestNewFilledRecordCompletedSetsCompletedDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	answers := []models.Answer{
		{FieldLabel: "pain_level", Value: "5"},
		{FieldLabel: "notes", Value: "none"},
	}

	record, err := NewFilledRecord(primitive.NewObjectID(), primitive.NewObjectID(), twoFieldSnapshot(), answers, models.RecordStatusCompleted, nil, now)
	if err != nil {
		t.Fatalf("NewFilledRecord: %v", err)
	}
	if record.CompletedDate == nil || !record.CompletedDate.Equal(now) {
		t.Errorf("completedDate = %v, want %v", record.CompletedDate, now)
	}
}

func TestNewFilledRecordRejectsUnknownLabel(t *testing.T) {
	answers := []models.Answer{{FieldLabel: "mood", Value: "fine"}}

	_, err := NewFilledRecord(primitive.NewObjectID(), primitive.NewObjectID(), twoFieldSnapshot(), answers, "", nil, time.Now())

	var unknown *UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownFieldError", err)
	}
	if unknown.Label != "mood" {
		t.Errorf("label = %q, want mood", unknown.Label)
	}
}

func TestApplyRecordUpdateCompletedLatch(t *testing.T) {
	completed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := models.FilledRecord{
		TemplateSnapshot: twoFieldSnapshot(),
		Answers: []models.Answer{
			{FieldLabel: "pain_level", Value: "5"},
			{FieldLabel: "notes", Value: "none"},
		},
		Status:        models.RecordStatusCompleted,
		CompletedDate: &completed,
	}
	before := record

	draft := models.RecordStatusDraft
	err := ApplyRecordUpdate(&record, RecordUpdate{Status: &draft}, time.Now())
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("err = %v, want ErrIllegalTransition", err)
	}
	if !reflect.DeepEqual(record, before) {
		t.Error("record changed after rejected transition")
	}
}

func TestApplyRecordUpdateCompletedDateIdempotent(t *testing.T) {
	firstNow := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := models.FilledRecord{
		TemplateSnapshot: twoFieldSnapshot(),
		Answers: []models.Answer{
			{FieldLabel: "pain_level", Value: "5"},
			{FieldLabel: "notes", Value: "none"},
		},
		Status: models.RecordStatusDraft,
	}

	completedStatus := models.RecordStatusCompleted
	if err := ApplyRecordUpdate(&record, RecordUpdate{Status: &completedStatus}, firstNow); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if record.CompletedDate == nil || !record.CompletedDate.Equal(firstNow) {
		t.Fatalf("completedDate = %v, want %v", record.CompletedDate, firstNow)
	}

	// Re-submitting completed must not move the date.
	laterNow := firstNow.Add(48 * time.Hour)
	if err := ApplyRecordUpdate(&record, RecordUpdate{Status: &completedStatus}, laterNow); err != nil {
		t.Fatalf("second completion: %v", err)
	}
	if !record.CompletedDate.Equal(firstNow) {
		t.Errorf("completedDate moved to %v", record.CompletedDate)
	}

	// An explicitly supplied date wins.
	explicit := firstNow.Add(-24 * time.Hour)
	if err := ApplyRecordUpdate(&record, RecordUpdate{CompletedDate: &explicit}, laterNow); err != nil {
		t.Fatalf("explicit date update: %v", err)
	}
	if !record.CompletedDate.Equal(explicit) {
		t.Errorf("completedDate = %v, want explicit %v", record.CompletedDate, explicit)
	}
}

func TestApplyRecordUpdateReplacesAnswersWholesale(t *testing.T) {
	record := models.FilledRecord{
		TemplateSnapshot: twoFieldSnapshot(),
		Answers: []models.Answer{
			{FieldLabel: "pain_level", Value: "5"},
			{FieldLabel: "notes", Value: "none"},
		},
		Status: models.RecordStatusDraft,
	}

	update := RecordUpdate{Answers: []models.Answer{{FieldLabel: "notes", Value: "updated"}}}
	if err := ApplyRecordUpdate(&record, update, time.Now()); err != nil {
		t.Fatalf("ApplyRecordUpdate: %v", err)
	}
	if len(record.Answers) != 1 || record.Answers[0].FieldLabel != "notes" {
		t.Errorf("answers = %v, want wholesale replacement", record.Answers)
	}
}

func TestApplyRecordUpdateUnknownFieldLeavesRecordUnchanged(t *testing.T) {
	record := models.FilledRecord{
		TemplateSnapshot: twoFieldSnapshot(),
		Answers:          []models.Answer{{FieldLabel: "pain_level", Value: "5"}},
		Status:           models.RecordStatusDraft,
	}
	before := record

	update := RecordUpdate{Answers: []models.Answer{{FieldLabel: "mood", Value: "fine"}}}
	err := ApplyRecordUpdate(&record, update, time.Now())

	var unknown *UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownFieldError", err)
	}
	if !reflect.DeepEqual(record, before) {
		t.Error("record changed after rejected update")
	}
}

func TestApplyRecordUpdateCompletionUsesIncomingAnswers(t *testing.T) {
	record := models.FilledRecord{
		TemplateSnapshot: twoFieldSnapshot(),
		Answers: []models.Answer{
			{FieldLabel: "pain_level", Value: "5"},
			{FieldLabel: "notes", Value: "none"},
		},
		Status: models.RecordStatusDraft,
	}
	before := record

	// New answers drop "notes", so completing in the same request must fail.
	completedStatus := models.RecordStatusCompleted
	update := RecordUpdate{
		Answers: []models.Answer{{FieldLabel: "pain_level", Value: "4"}},
		Status:  &completedStatus,
	}
	err := ApplyRecordUpdate(&record, update, time.Now())

	var incomplete *IncompleteSubmissionError
	if !errors.As(err, &incomplete) {
		t.Fatalf("err = %v, want IncompleteSubmissionError", err)
	}
	if !reflect.DeepEqual(incomplete.MissingFields, []string{"notes"}) {
		t.Errorf("missing fields = %v", incomplete.MissingFields)
	}
	if !reflect.DeepEqual(record, before) {
		t.Error("record changed after rejected update")
	}
}

// Full walkthrough: create a two-field template, fill one answer, try to
// complete, add the second answer, complete.
func TestAnamnesisLifecycle(t *testing.T) {
	templateID := primitive.NewObjectID()
	template := &models.Template{
		ID:   templateID,
		Name: strPtr("Pain intake"),
		Fields: []models.TemplateField{
			{Label: "pain_level", Type: models.FieldTypeText},
			{Label: "notes", Type: models.FieldTypeTextarea},
		},
		IsActive: true,
	}
	if err := NormalizeTemplateFields(template.Fields); err != nil {
		t.Fatalf("NormalizeTemplateFields: %v", err)
	}

	store := &fakeTemplateStore{templates: map[primitive.ObjectID]*models.Template{templateID: template}}
	snapshot, err := BuildSnapshot(context.Background(), store, templateID)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}

	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	record, err := NewFilledRecord(primitive.NewObjectID(), templateID, snapshot,
		[]models.Answer{{FieldLabel: "pain_level", Value: "5"}}, "", nil, now)
	if err != nil {
		t.Fatalf("NewFilledRecord: %v", err)
	}

	completedStatus := models.RecordStatusCompleted
	err = ApplyRecordUpdate(&record, RecordUpdate{Status: &completedStatus}, now)
	var incomplete *IncompleteSubmissionError
	if !errors.As(err, &incomplete) {
		t.Fatalf("err = %v, want IncompleteSubmissionError", err)
	}
	if !reflect.DeepEqual(incomplete.MissingFields, []string{"notes"}) {
		t.Fatalf("missing fields = %v, want [notes]", incomplete.MissingFields)
	}

	update := RecordUpdate{
		Answers: []models.Answer{
			{FieldLabel: "pain_level", Value: "5"},
			{FieldLabel: "notes", Value: "none"},
		},
		Status: &completedStatus,
	}
	if err := ApplyRecordUpdate(&record, update, now); err != nil {
		t.Fatalf("completing record: %v", err)
	}
	if record.Status != models.RecordStatusCompleted {
		t.Errorf("status = %q", record.Status)
	}
	if record.CompletedDate == nil || !record.CompletedDate.Equal(now) {
		t.Errorf("completedDate = %v, want %v", record.CompletedDate, now)
	}
}
