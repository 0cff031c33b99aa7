package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RecordStatusDraft     = "draft"
	RecordStatusCompleted = "completed"
)

func IsValidRecordStatus(s string) bool {
	return s == RecordStatusDraft || s == RecordStatusCompleted
}

// TemplateSnapshot is the copy of a template embedded into a filled record at
// creation time. It is never re-synced with the live template, so historical
// answers stay interpretable after the template changes or is deleted.
type TemplateSnapshot struct {
	TemplateName        string               `json:"template_name" bson:"template_name"`
	TemplateDescription string               `json:"template_description,omitempty" bson:"template_description,omitempty"`
	Fields              []TemplateField      `json:"fields" bson:"fields"`
	Categories          []primitive.ObjectID `json:"categories,omitempty" bson:"categories,omitempty"`
}

type Answer struct {
	FieldLabel string `json:"field_label" bson:"field_label"`
	Value      string `json:"value" bson:"value"`
}

// FilledRecord is a patient's submission against a snapshotted template,
// either an anamnesis or an evaluation depending on the collection it lives
// in. TemplateID is kept for traceability only; all answer validation runs
// against the embedded snapshot.
type FilledRecord struct {
	ID               primitive.ObjectID `json:"id" bson:"_id"`
	PatientID        primitive.ObjectID `json:"patient_id" bson:"patient_id"`
	TemplateID       primitive.ObjectID `json:"template_id" bson:"template_id"`
	TemplateSnapshot TemplateSnapshot   `json:"template_snapshot" bson:"template_snapshot"`
	Answers          []Answer           `json:"answers" bson:"answers"`
	FilledDate       time.Time          `json:"filled_date" bson:"filled_date"`
	Status           string             `json:"status" bson:"status"`
	CompletedDate    *time.Time         `json:"completed_date,omitempty" bson:"completed_date,omitempty"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}
