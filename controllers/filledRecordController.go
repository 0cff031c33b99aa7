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

var patientAnamnesisCollection *mongo.Collection = database.OpenCollection(database.Client, "patient_anamnesis")
var patientEvaluationCollection *mongo.Collection = database.OpenCollection(database.Client, "patient_evaluation")

func filledRecordCollection(kind models.TemplateKind) *mongo.Collection {
	if kind == models.KindEvaluation {
		return patientEvaluationCollection
	}
	return patientAnamnesisCollection
}

// templateStore adapts a template collection to the snapshot builder.
type templateStore struct {
	kind models.TemplateKind
}

func (s templateStore) GetTemplate(ctx context.Context, id primitive.ObjectID) (*models.Template, error) {
	var template models.Template
	err := templateCollection(s.kind).FindOne(ctx, bson.M{"_id": id}).Decode(&template)
	if err == mongo.ErrNoDocuments {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func filledRecordLookupStages(kind models.TemplateKind) []bson.D {
	templateFrom := "anamnesis_template"
	if kind == models.KindEvaluation {
		templateFrom = "evaluation_template"
	}
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "user"},
			{Key: "localField", Value: "patient_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "patient"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: templateFrom},
			{Key: "localField", Value: "template_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "template"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "patient.password", Value: 0},
			{Key: "patient.refresh_token", Value: 0},
			{Key: "template.fields", Value: 0},
		}}},
	}
}

func GetFilledRecords(kind models.TemplateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		patient, err := findPatient(ctx, c.Param("patient_id"))
		if err != nil {
			respondServiceError(c, err, "Error while fetching patient")
			return
		}

		filter := bson.M{"patient_id": patient.ID}

		if status := c.Query("status"); status != "" {
			if !models.IsValidRecordStatus(status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Allowed values: draft, completed"})
				return
			}
			filter["status"] = status
		}

		if templateID := c.Query("templateId"); templateID != "" {
			objID, err := primitive.ObjectIDFromHex(templateID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
				return
			}
			filter["template_id"] = objID
		}

		dateFilter := bson.M{}
		if from := c.Query("from"); from != "" {
			t, err := time.Parse(time.RFC3339, from)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected RFC3339"})
				return
			}
			dateFilter["$gte"] = t
		}
		if to := c.Query("to"); to != "" {
			t, err := time.Parse(time.RFC3339, to)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected RFC3339"})
				return
			}
			dateFilter["$lte"] = t
		}
		if len(dateFilter) > 0 {
			filter["filled_date"] = dateFilter
		}

		pipeline := mongo.Pipeline{
			bson.D{{Key: "$match", Value: filter}},
			bson.D{{Key: "$sort", Value: bson.D{{Key: "filled_date", Value: -1}}}},
		}
		pipeline = append(pipeline, filledRecordLookupStages(kind)...)

		result, err := filledRecordCollection(kind).Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching records"})
			return
		}

		var records []bson.M
		if err = result.All(ctx, &records); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching records"})
			return
		}

		c.JSON(http.StatusOK, records)
	}
}

func GetFilledRecord(kind models.TemplateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		patient, err := findPatient(ctx, c.Param("patient_id"))
		if err != nil {
			respondServiceError(c, err, "Error while fetching patient")
			return
		}

		objID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
			return
		}

		pipeline := mongo.Pipeline{
			bson.D{{Key: "$match", Value: bson.M{"_id": objID, "patient_id": patient.ID}}},
		}
		pipeline = append(pipeline, filledRecordLookupStages(kind)...)

		result, err := filledRecordCollection(kind).Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching record"})
			return
		}

		var records []bson.M
		if err = result.All(ctx, &records); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching record"})
			return
		}
		if len(records) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}

		c.JSON(http.StatusOK, records[0])
	}
}

// CreateFilledRecord snapshots the referenced template into the new record, so
// later template edits never change what the patient answered against.
func CreateFilledRecord(kind models.TemplateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		patient, err := findPatient(ctx, c.Param("patient_id"))
		if err != nil {
			respondServiceError(c, err, "Error while fetching patient")
			return
		}

		type RequestBody struct {
			TemplateID primitive.ObjectID `json:"template_id"`
			Answers    []models.Answer    `json:"answers"`
			Status     string             `json:"status"`
			FilledDate *time.Time         `json:"filled_date"`
		}

		var body RequestBody
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		if body.TemplateID.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Required field: template_id"})
			return
		}

		snapshot, err := services.BuildSnapshot(ctx, templateStore{kind: kind}, body.TemplateID)
		if err != nil {
			respondServiceError(c, err, "Error while snapshotting template")
			return
		}

		record, err := services.NewFilledRecord(patient.ID, body.TemplateID, snapshot, body.Answers, body.Status, body.FilledDate, time.Now())
		if err != nil {
			respondServiceError(c, err, "Error while creating record")
			return
		}

		record.ID = primitive.NewObjectID()
		record.CreatedAt = time.Now()
		record.UpdatedAt = time.Now()

		if _, insertErr := filledRecordCollection(kind).InsertOne(ctx, record); insertErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while creating record"})
			return
		}

		c.JSON(http.StatusCreated, record)
	}
}

func UpdateFilledRecord(kind models.TemplateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		patient, err := findPatient(ctx, c.Param("patient_id"))
		if err != nil {
			respondServiceError(c, err, "Error while fetching patient")
			return
		}

		objID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
			return
		}

		var record models.FilledRecord
		err = filledRecordCollection(kind).FindOne(ctx, bson.M{"_id": objID, "patient_id": patient.ID}).Decode(&record)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching record"})
			return
		}

		type RequestBody struct {
			Answers       []models.Answer `json:"answers"`
			Status        *string         `json:"status"`
			CompletedDate *time.Time      `json:"completed_date"`
		}

		var body RequestBody
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		update := services.RecordUpdate{
			Answers:       body.Answers,
			Status:        body.Status,
			CompletedDate: body.CompletedDate,
		}
		if err := services.ApplyRecordUpdate(&record, update, time.Now()); err != nil {
			respondServiceError(c, err, "Error while updating record")
			return
		}

		record.UpdatedAt = time.Now()

		set := bson.D{{Key: "$set", Value: bson.D{
			{Key: "answers", Value: record.Answers},
			{Key: "status", Value: record.Status},
			{Key: "completed_date", Value: record.CompletedDate},
			{Key: "updated_at", Value: record.UpdatedAt},
		}}}

		if _, err = filledRecordCollection(kind).UpdateOne(ctx, bson.M{"_id": objID}, set); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Record update failed"})
			return
		}

		c.JSON(http.StatusOK, record)
	}
}

func DeleteFilledRecord(kind models.TemplateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		patient, err := findPatient(ctx, c.Param("patient_id"))
		if err != nil {
			respondServiceError(c, err, "Error while fetching patient")
			return
		}

		objID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
			return
		}

		result, err := filledRecordCollection(kind).DeleteOne(ctx, bson.M{"_id": objID, "patient_id": patient.ID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while deleting record"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully"})
	}
}
