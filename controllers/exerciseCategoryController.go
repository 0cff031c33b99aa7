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

var exerciseCategoryCollection *mongo.Collection = database.OpenCollection(database.Client, "exercise_category")

func GetExerciseCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := exerciseCategoryCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching exercise categories"})
			return
		}
		defer cursor.Close(ctx)

		categories := []models.ExerciseCategory{}
		if err := cursor.All(ctx, &categories); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching exercise categories"})
			return
		}

		c.JSON(http.StatusOK, categories)
	}
}

func GetExerciseCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		objID, err := primitive.ObjectIDFromHex(c.Param("category_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}

		var category models.ExerciseCategory
		err = exerciseCategoryCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&category)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exercise category not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching exercise category"})
			return
		}

		c.JSON(http.StatusOK, category)
	}
}

func CreateExerciseCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var category models.ExerciseCategory
		if err := c.BindJSON(&category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if validationErr := validate.Struct(category); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		// Pre-check plus the unique index as backstop.
		count, err := exerciseCategoryCollection.CountDocuments(ctx, bson.M{"name": category.Name})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if count > 0 {
			respondServiceError(c, services.ErrDuplicateKey, "Category name already exists")
			return
		}

		category.ID = primitive.NewObjectID()
		category.CreatedAt = time.Now()
		category.UpdatedAt = time.Now()

		if _, insertErr := exerciseCategoryCollection.InsertOne(ctx, category); insertErr != nil {
			if mongo.IsDuplicateKeyError(insertErr) {
				respondServiceError(c, services.ErrDuplicateKey, "Category name already exists")
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while creating exercise category"})
			return
		}

		c.JSON(http.StatusCreated, category)
	}
}

func UpdateExerciseCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		objID, err := primitive.ObjectIDFromHex(c.Param("category_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}

		var category models.ExerciseCategory
		if err := c.BindJSON(&category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if category.Name == nil || *category.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}

		count, err := exerciseCategoryCollection.CountDocuments(ctx, bson.M{"name": category.Name, "_id": bson.M{"$ne": objID}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if count > 0 {
			respondServiceError(c, services.ErrDuplicateKey, "Category name already exists")
			return
		}

		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "name", Value: category.Name},
			{Key: "updated_at", Value: time.Now()},
		}}}

		result, err := exerciseCategoryCollection.UpdateOne(ctx, bson.M{"_id": objID}, update)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondServiceError(c, services.ErrDuplicateKey, "Category name already exists")
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while updating exercise category"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exercise category not found"})
			return
		}

		var updated models.ExerciseCategory
		if err := exerciseCategoryCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching exercise category"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteExerciseCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		objID, err := primitive.ObjectIDFromHex(c.Param("category_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}

		result, err := exerciseCategoryCollection.DeleteOne(ctx, bson.M{"_id": objID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while deleting exercise category"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exercise category not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Exercise category deleted successfully"})
	}
}
