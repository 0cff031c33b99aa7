package services

import (
	"context"

	"golang-physiobackend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateGetter is the read-only template lookup the snapshot builder needs.
// Implementations return ErrNotFound when no template has the given id.
type TemplateGetter interface {
	GetTemplate(ctx context.Context, id primitive.ObjectID) (*models.Template, error)
}

// BuildSnapshot fetches the live template and deep-copies it into a snapshot
// for embedding in a new filled record. Inactive templates cannot be
// snapshotted. The returned snapshot shares no memory with the template, so
// later template edits never leak into existing records.
func BuildSnapshot(ctx context.Context, templates TemplateGetter, templateID primitive.ObjectID) (models.TemplateSnapshot, error) {
	template, err := templates.GetTemplate(ctx, templateID)
	if err != nil {
		return models.TemplateSnapshot{}, err
	}
	if !template.IsActive {
		return models.TemplateSnapshot{}, ErrTemplateInactive
	}

	snapshot := models.TemplateSnapshot{
		TemplateDescription: template.Description,
	}
	if template.Name != nil {
		snapshot.TemplateName = *template.Name
	}

	snapshot.Fields = make([]models.TemplateField, len(template.Fields))
	for i, field := range template.Fields {
		copied := field
		if len(field.Options) > 0 {
			copied.Options = append([]string(nil), field.Options...)
		}
		snapshot.Fields[i] = copied
	}

	if len(template.Categories) > 0 {
		snapshot.Categories = append([]primitive.ObjectID(nil), template.Categories...)
	}

	return snapshot, nil
}
