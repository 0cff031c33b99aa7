package services

import (
	"strings"

	"golang-physiobackend/models"
)

// NormalizeTemplateFields validates a template's field list in place and
// auto-assigns display order (position based) where it is missing. A template
// must have at least one field, every field a known type, choice fields a
// non-empty options list, and labels must be unique within the template since
// answers are keyed by label.
func NormalizeTemplateFields(fields []models.TemplateField) error {
	if len(fields) == 0 {
		return NewValidationError("template must have at least one field")
	}

	seen := make(map[string]struct{}, len(fields))
	for i := range fields {
		field := &fields[i]

		label := strings.TrimSpace(field.Label)
		if label == "" {
			return NewValidationError("field %d: label is required", i+1)
		}
		field.Label = label

		if _, dup := seen[label]; dup {
			return NewValidationError("field %d: duplicate label %q", i+1, label)
		}
		seen[label] = struct{}{}

		if field.Type == "" {
			return NewValidationError("field %d: type is required", i+1)
		}
		if !models.IsValidFieldType(field.Type) {
			return NewValidationError("field %d: invalid field type %q, allowed values: %s",
				i+1, field.Type, strings.Join(models.FieldTypes(), ", "))
		}

		if models.FieldRequiresOptions(field.Type) && len(field.Options) == 0 {
			return NewValidationError("field %d: type %s requires a non-empty options list", i+1, field.Type)
		}

		if field.Order == 0 {
			field.Order = i + 1
		}
	}

	return nil
}
