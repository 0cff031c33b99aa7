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

var anamnesisTemplateCollection *mongo.Collection = database.OpenCollection(database.Client, "anamnesis_template")
var evaluationTemplateCollection *mongo.Collection = database.OpenCollection(database.Client, "evaluation_template")

func templateCollection(kind models.TemplateKind) *mongo.Collection {
	if kind == models.KindEvaluation {
		return evaluationTemplateCollection
	}
	return anamnesisTemplateCollection
}

func GetFieldTypes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.FieldTypes())
	}
}

func GetTemplates(kind models.TemplateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := bson.M{}

		switch c.Query("is_active") {
		case "true":
			filter["is_active"] = true
		case "false":
			filter["is_active"] = false
		}

		if search := c.Query("search"); search != "" {
			filter["name"] = bson.M{"$regex": search, "$options": "i"}
		}

		// Category filtering only applies to evaluation templates.
		if categoryID := c.Query("category"); categoryID != "" && kind == models.KindEvaluation {
			objID, err := primitive.ObjectIDFromHex(categoryID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
				return
			}
			filter["categories"] = objID
		}

		cursor, err := templateCollection(kind).Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching templates"})
			return
		}
		defer cursor.Close(ctx)

		templates := []models.Template{}
		if err := cursor.All(ctx, &templates); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching templates"})
			return
		}

		c.JSON(http.StatusOK, templates)
	}
}

func GetTemplate(kind models.TemplateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		objID, err := primitive.ObjectIDFromHex(c.Param("template_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
			return
		}

		var template models.Template
		err = templateCollection(kind).FindOne(ctx, bson.M{"_id": objID}).Decode(&template)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching template"})
			return
		}

		c.JSON(http.StatusOK, template)
	}
}

func CreateTemplate(kind models.TemplateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		type RequestBody struct {
			Name        *string                `json:"name"`
			Description string                 `json:"description"`
			Fields      []models.TemplateField `json:"fields"`
			Categories  []primitive.ObjectID   `json:"categories"`
			IsActive    *bool                  `json:"is_active"`
		}

		var body RequestBody
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		template := models.Template{
			Name:        body.Name,
			Description: body.Description,
			Fields:      body.Fields,
		}

		if validationErr := validate.Struct(template); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		if err := services.NormalizeTemplateFields(template.Fields); err != nil {
			respondServiceError(c, err, "Error while validating fields")
			return
		}

		if kind == models.KindEvaluation && len(body.Categories) > 0 {
			if err := validateCategoryIDs(ctx, body.Categories); err != nil {
				respondServiceError(c, err, "Error while validating categories")
				return
			}
			template.Categories = body.Categories
		}

		template.IsActive = true
		if body.IsActive != nil {
			template.IsActive = *body.IsActive
		}
		template.ID = primitive.NewObjectID()
		template.CreatedAt = time.Now()
		template.UpdatedAt = time.Now()

		if _, insertErr := templateCollection(kind).InsertOne(ctx, template); insertErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while creating template"})
			return
		}

		c.JSON(http.StatusCreated, template)
	}
}

func UpdateTemplate(kind models.TemplateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		objID, err := primitive.ObjectIDFromHex(c.Param("template_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
			return
		}

		type RequestBody struct {
			Name        *string                `json:"name"`
			Description *string                `json:"description"`
			Fields      []models.TemplateField `json:"fields"`
			Categories  []primitive.ObjectID   `json:"categories"`
			IsActive    *bool                  `json:"is_active"`
		}

		var body RequestBody
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D

		if body.Name != nil {
			if *body.Name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Name cannot be empty"})
				return
			}
			updateObj = append(updateObj, bson.E{Key: "name", Value: body.Name})
		}
		if body.Description != nil {
			updateObj = append(updateObj, bson.E{Key: "description", Value: body.Description})
		}
		if body.Fields != nil {
			// A replacement field list goes through the same checks as on
			// create. Existing records keep their snapshots regardless.
			if err := services.NormalizeTemplateFields(body.Fields); err != nil {
				respondServiceError(c, err, "Error while validating fields")
				return
			}
			updateObj = append(updateObj, bson.E{Key: "fields", Value: body.Fields})
		}
		if body.Categories != nil && kind == models.KindEvaluation {
			if err := validateCategoryIDs(ctx, body.Categories); err != nil {
				respondServiceError(c, err, "Error while validating categories")
				return
			}
			updateObj = append(updateObj, bson.E{Key: "categories", Value: body.Categories})
		}
		if body.IsActive != nil {
			updateObj = append(updateObj, bson.E{Key: "is_active", Value: body.IsActive})
		}

		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

		result, err := templateCollection(kind).UpdateOne(
			ctx,
			bson.M{"_id": objID},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Template update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}

		var updated models.Template
		if err := templateCollection(kind).FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching template"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteTemplate(kind models.TemplateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		objID, err := primitive.ObjectIDFromHex(c.Param("template_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
			return
		}

		result, err := templateCollection(kind).DeleteOne(ctx, bson.M{"_id": objID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while deleting template"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
	}
}
