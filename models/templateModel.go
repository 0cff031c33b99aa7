package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateKind selects which of the two template collections a handler works
// against. Anamnesis and evaluation templates share the same structure; only
// evaluation templates carry category references.
type TemplateKind string

const (
	KindAnamnesis  TemplateKind = "anamnesis"
	KindEvaluation TemplateKind = "evaluation"
)

const (
	FieldTypeText     = "text"
	FieldTypeTextarea = "textarea"
	FieldTypeCheckbox = "checkbox"
	FieldTypeRadio    = "radio"
	FieldTypeSelect   = "select"
	FieldTypeDate     = "date"
	FieldTypeTime     = "time"
)

func FieldTypes() []string {
	return []string{
		FieldTypeText, FieldTypeTextarea, FieldTypeCheckbox,
		FieldTypeRadio, FieldTypeSelect, FieldTypeDate, FieldTypeTime,
	}
}

func IsValidFieldType(t string) bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeCheckbox,
		FieldTypeRadio, FieldTypeSelect, FieldTypeDate, FieldTypeTime:
		return true
	}
	return false
}

// FieldRequiresOptions reports whether the field type needs a non-empty
// options list.
func FieldRequiresOptions(t string) bool {
	switch t {
	case FieldTypeCheckbox, FieldTypeRadio, FieldTypeSelect:
		return true
	}
	return false
}

type TemplateField struct {
	Label       string   `json:"label" bson:"label"`
	Type        string   `json:"type" bson:"type"`
	Placeholder string   `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty" bson:"options,omitempty"`
	Order       int      `json:"order" bson:"order"`
}

type Template struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id"`
	Name        *string              `json:"name" validate:"required,min=2,max=200"`
	Description string               `json:"description,omitempty" bson:"description,omitempty"`
	Fields      []TemplateField      `json:"fields" bson:"fields"`
	Categories  []primitive.ObjectID `json:"categories,omitempty" bson:"categories,omitempty"`
	IsActive    bool                 `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" bson:"updated_at"`
}
