package services

import (
	"context"
	"errors"
	"testing"

	"golang-physiobackend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTemplateStore struct {
	templates map[primitive.ObjectID]*models.Template
}

func (s *fakeTemplateStore) GetTemplate(_ context.Context, id primitive.ObjectID) (*models.Template, error) {
	template, ok := s.templates[id]
	if !ok {
		return nil, ErrNotFound
	}
	return template, nil
}

func strPtr(s string) *string { return &s }

func newTestTemplate(id primitive.ObjectID, active bool) *models.Template {
	return &models.Template{
		ID:          id,
		Name:        strPtr("Initial assessment"),
		Description: "First visit questionnaire",
		Fields: []models.TemplateField{
			{Label: "pain_level", Type: models.FieldTypeSelect, Options: []string{"1", "2", "3", "4", "5"}, Order: 1},
			{Label: "notes", Type: models.FieldTypeTextarea, Order: 2},
		},
		Categories: []primitive.ObjectID{primitive.NewObjectID()},
		IsActive:   active,
	}
}

func TestBuildSnapshotCopiesTemplate(t *testing.T) {
	id := primitive.NewObjectID()
	template := newTestTemplate(id, true)
	store := &fakeTemplateStore{templates: map[primitive.ObjectID]*models.Template{id: template}}

	snapshot, err := BuildSnapshot(context.Background(), store, id)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}

	if snapshot.TemplateName != "Initial assessment" {
		t.Errorf("template name = %q, want %q", snapshot.TemplateName, "Initial assessment")
	}
	if snapshot.TemplateDescription != "First visit questionnaire" {
		t.Errorf("template description = %q", snapshot.TemplateDescription)
	}
	if len(snapshot.Fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(snapshot.Fields))
	}
	if snapshot.Fields[0].Label != "pain_level" || snapshot.Fields[0].Order != 1 {
		t.Errorf("first field = %+v", snapshot.Fields[0])
	}
	if len(snapshot.Fields[0].Options) != 5 {
		t.Errorf("options = %v", snapshot.Fields[0].Options)
	}
	if len(snapshot.Categories) != 1 || snapshot.Categories[0] != template.Categories[0] {
		t.Errorf("categories = %v", snapshot.Categories)
	}
}

func TestBuildSnapshotIsImmutable(t *testing.T) {
	id := primitive.NewObjectID()
	template := newTestTemplate(id, true)
	store := &fakeTemplateStore{templates: map[primitive.ObjectID]*models.Template{id: template}}

	snapshot, err := BuildSnapshot(context.Background(), store, id)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}

	// Mutate the live template after the snapshot is taken.
	template.Name = strPtr("Renamed")
	template.Fields[0].Label = "renamed_field"
	template.Fields[0].Options[0] = "changed"
	template.Categories[0] = primitive.NewObjectID()

	if snapshot.TemplateName != "Initial assessment" {
		t.Errorf("snapshot name changed to %q", snapshot.TemplateName)
	}
	if snapshot.Fields[0].Label != "pain_level" {
		t.Errorf("snapshot field label changed to %q", snapshot.Fields[0].Label)
	}
	if snapshot.Fields[0].Options[0] != "1" {
		t.Errorf("snapshot option changed to %q", snapshot.Fields[0].Options[0])
	}
	if snapshot.Categories[0] == template.Categories[0] {
		t.Error("snapshot categories share memory with template")
	}
}

func TestBuildSnapshotMissingTemplate(t *testing.T) {
	store := &fakeTemplateStore{templates: map[primitive.ObjectID]*models.Template{}}

	_, err := BuildSnapshot(context.Background(), store, primitive.NewObjectID())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestBuildSnapshotInactiveTemplate(t *testing.T) {
	id := primitive.NewObjectID()
	store := &fakeTemplateStore{templates: map[primitive.ObjectID]*models.Template{id: newTestTemplate(id, false)}}

	_, err := BuildSnapshot(context.Background(), store, id)
	if !errors.Is(err, ErrTemplateInactive) {
		t.Fatalf("err = %v, want ErrTemplateInactive", err)
	}
}
