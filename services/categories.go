package services

import (
	"context"

	"golang-physiobackend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseFinder is the read-only exercise lookup the category aggregator
// needs.
type ExerciseFinder interface {
	FindExercisesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Exercise, error)
}

// ComputeTrainingCategories derives a training's category set as the
// deduplicated union of its exercises' categories. Callers overwrite the
// stored categories with the result whenever the exercise list changes;
// categories are never edited directly.
func ComputeTrainingCategories(ctx context.Context, exercises ExerciseFinder, exerciseIDs []primitive.ObjectID) ([]primitive.ObjectID, error) {
	categories := []primitive.ObjectID{}
	if len(exerciseIDs) == 0 {
		return categories, nil
	}

	found, err := exercises.FindExercisesByIDs(ctx, exerciseIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[primitive.ObjectID]struct{})
	for _, exercise := range found {
		for _, categoryID := range exercise.Categories {
			if _, ok := seen[categoryID]; ok {
				continue
			}
			seen[categoryID] = struct{}{}
			categories = append(categories, categoryID)
		}
	}

	return categories, nil
}
