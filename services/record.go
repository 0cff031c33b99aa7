package services

import (
	"time"

	"golang-physiobackend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidateAnswers checks that every answer names a label present in the
// record's own snapshot. The live template is never consulted.
func ValidateAnswers(snapshot models.TemplateSnapshot, answers []models.Answer) error {
	labels := snapshotLabels(snapshot)
	for _, answer := range answers {
		if _, ok := labels[answer.FieldLabel]; !ok {
			return &UnknownFieldError{Label: answer.FieldLabel}
		}
	}
	return nil
}

// MissingFieldLabels returns the snapshot field labels without a matching
// answer, in the snapshot's field order.
func MissingFieldLabels(snapshot models.TemplateSnapshot, answers []models.Answer) []string {
	answered := make(map[string]struct{}, len(answers))
	for _, answer := range answers {
		answered[answer.FieldLabel] = struct{}{}
	}

	var missing []string
	for _, field := range snapshot.Fields {
		if _, ok := answered[field.Label]; !ok {
			missing = append(missing, field.Label)
		}
	}
	return missing
}

// NewFilledRecord builds a filled record in its initial state. Status
// defaults to draft; creating directly in completed state requires every
// snapshot field answered and stamps completedDate with now.
func NewFilledRecord(patientID, templateID primitive.ObjectID, snapshot models.TemplateSnapshot,
	answers []models.Answer, status string, filledDate *time.Time, now time.Time) (models.FilledRecord, error) {

	if status == "" {
		status = models.RecordStatusDraft
	}
	if !models.IsValidRecordStatus(status) {
		return models.FilledRecord{}, NewValidationError("invalid status %q, allowed values: draft, completed", status)
	}

	if err := ValidateAnswers(snapshot, answers); err != nil {
		return models.FilledRecord{}, err
	}

	record := models.FilledRecord{
		PatientID:        patientID,
		TemplateID:       templateID,
		TemplateSnapshot: snapshot,
		Answers:          answers,
		FilledDate:       now,
		Status:           status,
	}
	if record.Answers == nil {
		record.Answers = []models.Answer{}
	}
	if filledDate != nil {
		record.FilledDate = *filledDate
	}

	if status == models.RecordStatusCompleted {
		if missing := MissingFieldLabels(snapshot, answers); len(missing) > 0 {
			return models.FilledRecord{}, &IncompleteSubmissionError{MissingFields: missing}
		}
		completed := now
		record.CompletedDate = &completed
	}

	return record, nil
}

// RecordUpdate carries the mutable parts of a filled record update. Nil
// pointers (and a nil Answers slice) mean "not supplied". Supplied answers
// replace the stored list wholesale.
type RecordUpdate struct {
	Answers       []models.Answer
	Status        *string
	CompletedDate *time.Time
}

// ApplyRecordUpdate mutates record according to update, enforcing the
// draft -> completed one-way latch. On any error the record is left
// unchanged. completedDate is stamped the first time the record enters
// completed and is otherwise only changed when supplied explicitly.
func ApplyRecordUpdate(record *models.FilledRecord, update RecordUpdate, now time.Time) error {
	if update.Status != nil {
		if !models.IsValidRecordStatus(*update.Status) {
			return NewValidationError("invalid status %q, allowed values: draft, completed", *update.Status)
		}
		if record.Status == models.RecordStatusCompleted && *update.Status == models.RecordStatusDraft {
			return ErrIllegalTransition
		}
	}

	if update.Answers != nil {
		if err := ValidateAnswers(record.TemplateSnapshot, update.Answers); err != nil {
			return err
		}
	}

	// The completion guard runs against the answers that will be in effect.
	effectiveAnswers := record.Answers
	if update.Answers != nil {
		effectiveAnswers = update.Answers
	}
	if update.Status != nil && *update.Status == models.RecordStatusCompleted {
		if missing := MissingFieldLabels(record.TemplateSnapshot, effectiveAnswers); len(missing) > 0 {
			return &IncompleteSubmissionError{MissingFields: missing}
		}
	}

	if update.Answers != nil {
		record.Answers = update.Answers
	}
	if update.Status != nil {
		if *update.Status == models.RecordStatusCompleted && record.CompletedDate == nil {
			completed := now
			record.CompletedDate = &completed
		}
		record.Status = *update.Status
	}
	if update.CompletedDate != nil {
		record.CompletedDate = update.CompletedDate
	}

	return nil
}

func snapshotLabels(snapshot models.TemplateSnapshot) map[string]struct{} {
	labels := make(map[string]struct{}, len(snapshot.Fields))
	for _, field := range snapshot.Fields {
		labels[field.Label] = struct{}{}
	}
	return labels
}
