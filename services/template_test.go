package services

import (
	"errors"
	"testing"

	"golang-physiobackend/models"
)

func TestNormalizeTemplateFields(t *testing.T) {
	tests := []struct {
		name    string
		fields  []models.TemplateField
		wantErr bool
	}{
		{
			name:    "empty field list",
			fields:  nil,
			wantErr: true,
		},
		{
			name: "valid mixed fields",
			fields: []models.TemplateField{
				{Label: "pain_level", Type: models.FieldTypeSelect, Options: []string{"1", "2", "3"}},
				{Label: "notes", Type: models.FieldTypeTextarea},
				{Label: "visit_date", Type: models.FieldTypeDate},
			},
		},
		{
			name:    "missing label",
			fields:  []models.TemplateField{{Label: "  ", Type: models.FieldTypeText}},
			wantErr: true,
		},
		{
			name:    "missing type",
			fields:  []models.TemplateField{{Label: "notes"}},
			wantErr: true,
		},
		{
			name:    "unknown type",
			fields:  []models.TemplateField{{Label: "notes", Type: "slider"}},
			wantErr: true,
		},
		{
			name:    "select without options",
			fields:  []models.TemplateField{{Label: "pain_level", Type: models.FieldTypeSelect}},
			wantErr: true,
		},
		{
			name:    "radio without options",
			fields:  []models.TemplateField{{Label: "side", Type: models.FieldTypeRadio}},
			wantErr: true,
		},
		{
			name: "duplicate labels",
			fields: []models.TemplateField{
				{Label: "notes", Type: models.FieldTypeText},
				{Label: "notes", Type: models.FieldTypeTextarea},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NormalizeTemplateFields(tt.fields)
			if tt.wantErr {
				var validation *ValidationError
				if !errors.As(err, &validation) {
					t.Fatalf("err = %v, want ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeTemplateFields: %v", err)
			}
		})
	}
}

func TestNormalizeTemplateFieldsAssignsOrder(t *testing.T) {
	fields := []models.TemplateField{
		{Label: "first", Type: models.FieldTypeText},
		{Label: "second", Type: models.FieldTypeText, Order: 7},
		{Label: "third", Type: models.FieldTypeText},
	}

	if err := NormalizeTemplateFields(fields); err != nil {
		t.Fatalf("NormalizeTemplateFields: %v", err)
	}

	if fields[0].Order != 1 {
		t.Errorf("first order = %d, want 1", fields[0].Order)
	}
	if fields[1].Order != 7 {
		t.Errorf("second order = %d, want explicit 7 kept", fields[1].Order)
	}
	if fields[2].Order != 3 {
		t.Errorf("third order = %d, want 3", fields[2].Order)
	}
}

func TestNormalizeTemplateFieldsTrimsLabels(t *testing.T) {
	fields := []models.TemplateField{{Label: " pain_level ", Type: models.FieldTypeText}}

	if err := NormalizeTemplateFields(fields); err != nil {
		t.Fatalf("NormalizeTemplateFields: %v", err)
	}
	if fields[0].Label != "pain_level" {
		t.Errorf("label = %q, want trimmed", fields[0].Label)
	}
}
