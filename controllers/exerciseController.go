package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"golang-physiobackend/database"
	"golang-physiobackend/models"
	"golang-physiobackend/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var exerciseCollection *mongo.Collection = database.OpenCollection(database.Client, "exercise")

// validateCategoryIDs checks that every referenced category exists.
func validateCategoryIDs(ctx context.Context, ids []primitive.ObjectID) error {
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

	count, err := exerciseCategoryCollection.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": uniqueIDs}})
	if err != nil {
		return err
	}
	if count != int64(len(uniqueIDs)) {
		return services.NewValidationError("one or more categories do not exist")
	}
	return nil
}

func GetExerciseTypes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.ExerciseTypes())
	}
}

func GetExercises() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		recordPerPage, err := strconv.Atoi(c.Query("recordPerPage"))
		if err != nil || recordPerPage < 1 {
			recordPerPage = 10
		}

		page, err := strconv.Atoi(c.Query("page"))
		if err != nil || page < 1 {
			page = 1
		}

		startIndex := (page - 1) * recordPerPage

		matchStage := bson.D{{Key: "$match", Value: bson.D{}}}
		countStage := bson.D{{Key: "$count", Value: "total"}}
		skipStage := bson.D{{Key: "$skip", Value: startIndex}}
		limitStage := bson.D{{Key: "$limit", Value: recordPerPage}}
		lookupStage := bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "exercise_category"},
			{Key: "localField", Value: "categories"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "categories"},
		}}}

		countResult, err := exerciseCollection.Aggregate(ctx, mongo.Pipeline{matchStage, countStage})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while counting exercises"})
			return
		}
		var countData []bson.M
		if err = countResult.All(ctx, &countData); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while counting exercises"})
			return
		}
		totalCount := 0
		if len(countData) > 0 {
			totalCount = int(countData[0]["total"].(int32))
		}

		result, err := exerciseCollection.Aggregate(ctx, mongo.Pipeline{matchStage, skipStage, limitStage, lookupStage})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching exercises"})
			return
		}

		var exercises []bson.M
		if err = result.All(ctx, &exercises); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching exercises"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total":     totalCount,
			"exercises": exercises,
		})
	}
}

func GetExercise() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		objID, err := primitive.ObjectIDFromHex(c.Param("exercise_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exercise ID"})
			return
		}

		matchStage := bson.D{{Key: "$match", Value: bson.M{"_id": objID}}}
		lookupStage := bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "exercise_category"},
			{Key: "localField", Value: "categories"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "categories"},
		}}}

		result, err := exerciseCollection.Aggregate(ctx, mongo.Pipeline{matchStage, lookupStage})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching exercise"})
			return
		}

		var exercises []bson.M
		if err = result.All(ctx, &exercises); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching exercise"})
			return
		}
		if len(exercises) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
			return
		}

		c.JSON(http.StatusOK, exercises[0])
	}
}

func CreateExercise() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var exercise models.Exercise
		if err := c.BindJSON(&exercise); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if validationErr := validate.Struct(exercise); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		if !models.IsValidExerciseType(*exercise.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type. Allowed values: isometric, isotonic, read, custom"})
			return
		}

		if err := validateCategoryIDs(ctx, exercise.Categories); err != nil {
			respondServiceError(c, err, "Error while validating categories")
			return
		}

		if exercise.Categories == nil {
			exercise.Categories = []primitive.ObjectID{}
		}
		exercise.ID = primitive.NewObjectID()
		exercise.CreatedAt = time.Now()
		exercise.UpdatedAt = time.Now()

		if _, insertErr := exerciseCollection.InsertOne(ctx, exercise); insertErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while creating exercise"})
			return
		}

		c.JSON(http.StatusCreated, exercise)
	}
}

func UpdateExercise() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		objID, err := primitive.ObjectIDFromHex(c.Param("exercise_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exercise ID"})
			return
		}

		var exercise models.Exercise
		if err := c.BindJSON(&exercise); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D

		if exercise.Name != nil {
			if *exercise.Name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Name cannot be empty"})
				return
			}
			updateObj = append(updateObj, bson.E{Key: "name", Value: exercise.Name})
		}
		if exercise.Type != nil {
			if !models.IsValidExerciseType(*exercise.Type) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type. Allowed values: isometric, isotonic, read, custom"})
				return
			}
			updateObj = append(updateObj, bson.E{Key: "type", Value: exercise.Type})
		}
		if exercise.Link != "" {
			updateObj = append(updateObj, bson.E{Key: "link", Value: exercise.Link})
		}
		if exercise.Description != "" {
			updateObj = append(updateObj, bson.E{Key: "description", Value: exercise.Description})
		}
		if exercise.Categories != nil {
			if err := validateCategoryIDs(ctx, exercise.Categories); err != nil {
				respondServiceError(c, err, "Error while validating categories")
				return
			}
			updateObj = append(updateObj, bson.E{Key: "categories", Value: exercise.Categories})
		}

		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

		result, err := exerciseCollection.UpdateOne(
			ctx,
			bson.M{"_id": objID},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Exercise update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
			return
		}

		var updated models.Exercise
		if err := exerciseCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching exercise"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteExercise() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		objID, err := primitive.ObjectIDFromHex(c.Param("exercise_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exercise ID"})
			return
		}

		result, err := exerciseCollection.DeleteOne(ctx, bson.M{"_id": objID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while deleting exercise"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Exercise deleted successfully"})
	}
}
