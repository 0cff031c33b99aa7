package services

import (
	"context"
	"testing"

	"golang-physiobackend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeExerciseFinder struct {
	exercises map[primitive.ObjectID]models.Exercise
}

func (f *fakeExerciseFinder) FindExercisesByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Exercise, error) {
	var result []models.Exercise
	for _, id := range ids {
		if exercise, ok := f.exercises[id]; ok {
			result = append(result, exercise)
		}
	}
	return result, nil
}

func TestComputeTrainingCategoriesUnion(t *testing.T) {
	catA := primitive.NewObjectID()
	catB := primitive.NewObjectID()
	catC := primitive.NewObjectID()

	e1 := primitive.NewObjectID()
	e2 := primitive.NewObjectID()
	finder := &fakeExerciseFinder{exercises: map[primitive.ObjectID]models.Exercise{
		e1: {ID: e1, Categories: []primitive.ObjectID{catA, catB}},
		e2: {ID: e2, Categories: []primitive.ObjectID{catB, catC}},
	}}

	categories, err := ComputeTrainingCategories(context.Background(), finder, []primitive.ObjectID{e1, e2})
	if err != nil {
		t.Fatalf("ComputeTrainingCategories: %v", err)
	}

	if len(categories) != 3 {
		t.Fatalf("categories = %v, want 3 unique entries", categories)
	}
	want := map[primitive.ObjectID]bool{catA: true, catB: true, catC: true}
	for _, id := range categories {
		if !want[id] {
			t.Errorf("unexpected category %v", id)
		}
		delete(want, id)
	}
	if len(want) != 0 {
		t.Errorf("missing categories: %v", want)
	}
}

func TestComputeTrainingCategoriesEmptyExerciseList(t *testing.T) {
	finder := &fakeExerciseFinder{exercises: map[primitive.ObjectID]models.Exercise{}}

	categories, err := ComputeTrainingCategories(context.Background(), finder, nil)
	if err != nil {
		t.Fatalf("ComputeTrainingCategories: %v", err)
	}
	if categories == nil || len(categories) != 0 {
		t.Errorf("categories = %v, want empty non-nil slice", categories)
	}
}
