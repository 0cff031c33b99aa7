package controllers

import (
	"context"
	"net/http"
	"time"

	"golang-physiobackend/database"
	"golang-physiobackend/models"
	"golang-physiobackend/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var trainingCollection *mongo.Collection = database.OpenCollection(database.Client, "training")

// exerciseStore adapts the exercise collection to the category aggregator.
type exerciseStore struct{}

func (exerciseStore) FindExercisesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Exercise, error) {
	cursor, err := exerciseCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []models.Exercise
	if err := cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func validateExerciseIDs(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}

	unique := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	uniqueIDs := make([]primitive.ObjectID, 0, len(unique))
	for id := range unique {
		uniqueIDs = append(uniqueIDs, id)
	}

	count, err := exerciseCollection.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": uniqueIDs}})
	if err != nil {
		return err
	}
	if count != int64(len(uniqueIDs)) {
		return services.NewValidationError("one or more exercises do not exist")
	}
	return nil
}

func trainingLookupStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "exercise"},
			{Key: "localField", Value: "exercises"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "exercises"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "exercise_category"},
			{Key: "localField", Value: "categories"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "categories"},
		}}},
	}
}

func GetTrainings() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: bson.D{}}}}
		pipeline = append(pipeline, trainingLookupStages()...)

		result, err := trainingCollection.Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching trainings"})
			return
		}

		var trainings []bson.M
		if err = result.All(ctx, &trainings); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching trainings"})
			return
		}

		c.JSON(http.StatusOK, trainings)
	}
}

func GetTraining() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		objID, err := primitive.ObjectIDFromHex(c.Param("training_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid training ID"})
			return
		}

		pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: bson.M{"_id": objID}}}}
		pipeline = append(pipeline, trainingLookupStages()...)

		result, err := trainingCollection.Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching training"})
			return
		}

		var trainings []bson.M
		if err = result.All(ctx, &trainings); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching training"})
			return
		}
		if len(trainings) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Training not found"})
			return
		}

		c.JSON(http.StatusOK, trainings[0])
	}
}

func CreateTraining() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var training models.Training
		if err := c.BindJSON(&training); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if validationErr := validate.Struct(training); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		if err := validateExerciseIDs(ctx, training.Exercises); err != nil {
			respondServiceError(c, err, "Error while validating exercises")
			return
		}
		if training.Exercises == nil {
			training.Exercises = []primitive.ObjectID{}
		}

		// Categories are derived from the exercises, never taken from the body.
		categories, err := services.ComputeTrainingCategories(ctx, exerciseStore{}, training.Exercises)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while computing training categories"})
			return
		}
		training.Categories = categories

		training.ID = primitive.NewObjectID()
		training.CreatedAt = time.Now()
		training.UpdatedAt = time.Now()

		if _, insertErr := trainingCollection.InsertOne(ctx, training); insertErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while creating training"})
			return
		}

		c.JSON(http.StatusCreated, training)
	}
}

func UpdateTraining() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		objID, err := primitive.ObjectIDFromHex(c.Param("training_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid training ID"})
			return
		}

		var training models.Training
		if err := c.BindJSON(&training); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D

		if training.Name != nil {
			if *training.Name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Name cannot be empty"})
				return
			}
			updateObj = append(updateObj, bson.E{Key: "name", Value: training.Name})
		}

		if training.Exercises != nil {
			if err := validateExerciseIDs(ctx, training.Exercises); err != nil {
				respondServiceError(c, err, "Error while validating exercises")
				return
			}

			// The exercise list changed, so the derived category set is
			// recomputed before the save.
			categories, err := services.ComputeTrainingCategories(ctx, exerciseStore{}, training.Exercises)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while computing training categories"})
				return
			}
			updateObj = append(updateObj, bson.E{Key: "exercises", Value: training.Exercises})
			updateObj = append(updateObj, bson.E{Key: "categories", Value: categories})
		}

		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

		result, err := trainingCollection.UpdateOne(
			ctx,
			bson.M{"_id": objID},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Training update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Training not found"})
			return
		}

		var updated models.Training
		if err := trainingCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching training"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteTraining() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		objID, err := primitive.ObjectIDFromHex(c.Param("training_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid training ID"})
			return
		}

		result, err := trainingCollection.DeleteOne(ctx, bson.M{"_id": objID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while deleting training"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Training not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Training deleted successfully"})
	}
}
