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

var patientActionPlanCollection *mongo.Collection = database.OpenCollection(database.Client, "patient_action_plan")

func actionPlanLookupStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "user"},
			{Key: "localField", Value: "patient_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "patient"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "patient_training"},
			{Key: "localField", Value: "trainings"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "trainings"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "patient.password", Value: 0},
			{Key: "patient.refresh_token", Value: 0},
			{Key: "trainings.wrapped_key", Value: 0},
		}}},
	}
}

func GetPatientActionPlans() gin.HandlerFunc {
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
			if !models.IsValidActionPlanStatus(status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Allowed values: in_progress, completed"})
				return
			}
			filter["status"] = status
		}

		// from/to narrow plans by their start date.
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
			filter["start_date"] = dateFilter
		}

		pipeline := mongo.Pipeline{
			bson.D{{Key: "$match", Value: filter}},
			bson.D{{Key: "$sort", Value: bson.D{{Key: "start_date", Value: -1}}}},
		}
		pipeline = append(pipeline, actionPlanLookupStages()...)

		result, err := patientActionPlanCollection.Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching action plans"})
			return
		}

		var plans []bson.M
		if err = result.All(ctx, &plans); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching action plans"})
			return
		}

		c.JSON(http.StatusOK, plans)
	}
}

func GetPatientActionPlan() gin.HandlerFunc {
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
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action plan ID"})
			return
		}

		pipeline := mongo.Pipeline{
			bson.D{{Key: "$match", Value: bson.M{"_id": objID, "patient_id": patient.ID}}},
		}
		pipeline = append(pipeline, actionPlanLookupStages()...)

		result, err := patientActionPlanCollection.Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching action plan"})
			return
		}

		var plans []bson.M
		if err = result.All(ctx, &plans); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching action plan"})
			return
		}
		if len(plans) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Action plan not found"})
			return
		}

		c.JSON(http.StatusOK, plans[0])
	}
}

func CreatePatientActionPlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		patient, err := findPatient(ctx, c.Param("patient_id"))
		if err != nil {
			respondServiceError(c, err, "Error while fetching patient")
			return
		}

		type RequestBody struct {
			StartDate       *time.Time `json:"start_date"`
			EndDate         *time.Time `json:"end_date"`
			Diagnosis       *string    `json:"diagnosis"`
			PlanDescription *string    `json:"plan_description"`
			Status          string     `json:"status"`
		}

		var body RequestBody
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		if body.StartDate == nil || body.EndDate == nil || body.Diagnosis == nil || body.PlanDescription == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Required fields: start_date, end_date, diagnosis, plan_description"})
			return
		}

		if err := services.ValidateActionPlanDates(*body.StartDate, *body.EndDate); err != nil {
			respondServiceError(c, err, "Invalid dates")
			return
		}

		plan := models.PatientActionPlan{
			ID:              primitive.NewObjectID(),
			PatientID:       patient.ID,
			StartDate:       *body.StartDate,
			EndDate:         *body.EndDate,
			Diagnosis:       body.Diagnosis,
			PlanDescription: body.PlanDescription,
			Status:          models.ActionPlanStatusInProgress,
			Trainings:       []primitive.ObjectID{},
			CreatedAt:       time.Now(),
			UpdatedAt:       time.Now(),
		}

		// A plan created directly as completed links its trainings right away.
		if body.Status != "" && body.Status != models.ActionPlanStatusInProgress {
			if err := services.ApplyActionPlanStatus(ctx, patientTrainingStore{}, &plan, body.Status); err != nil {
				respondServiceError(c, err, "Error while applying status")
				return
			}
		}

		if _, insertErr := patientActionPlanCollection.InsertOne(ctx, plan); insertErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while creating action plan"})
			return
		}

		c.JSON(http.StatusCreated, plan)
	}
}

func UpdatePatientActionPlan() gin.HandlerFunc {
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
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action plan ID"})
			return
		}

		var plan models.PatientActionPlan
		err = patientActionPlanCollection.FindOne(ctx, bson.M{"_id": objID, "patient_id": patient.ID}).Decode(&plan)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Action plan not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching action plan"})
			return
		}

		type RequestBody struct {
			StartDate       *time.Time `json:"start_date"`
			EndDate         *time.Time `json:"end_date"`
			Diagnosis       *string    `json:"diagnosis"`
			PlanDescription *string    `json:"plan_description"`
			Status          *string    `json:"status"`
		}

		var body RequestBody
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		if body.StartDate != nil {
			plan.StartDate = *body.StartDate
		}
		if body.EndDate != nil {
			plan.EndDate = *body.EndDate
		}
		if body.StartDate != nil || body.EndDate != nil {
			if err := services.ValidateActionPlanDates(plan.StartDate, plan.EndDate); err != nil {
				respondServiceError(c, err, "Invalid dates")
				return
			}
		}
		if body.Diagnosis != nil {
			plan.Diagnosis = body.Diagnosis
		}
		if body.PlanDescription != nil {
			plan.PlanDescription = body.PlanDescription
		}

		if body.Status != nil {
			if err := services.ApplyActionPlanStatus(ctx, patientTrainingStore{}, &plan, *body.Status); err != nil {
				respondServiceError(c, err, "Error while applying status")
				return
			}
		}

		plan.UpdatedAt = time.Now()

		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "start_date", Value: plan.StartDate},
			{Key: "end_date", Value: plan.EndDate},
			{Key: "diagnosis", Value: plan.Diagnosis},
			{Key: "plan_description", Value: plan.PlanDescription},
			{Key: "status", Value: plan.Status},
			{Key: "trainings", Value: plan.Trainings},
			{Key: "updated_at", Value: plan.UpdatedAt},
		}}}

		if _, err = patientActionPlanCollection.UpdateOne(ctx, bson.M{"_id": objID}, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Action plan update failed"})
			return
		}

		c.JSON(http.StatusOK, plan)
	}
}

func DeletePatientActionPlan() gin.HandlerFunc {
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
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action plan ID"})
			return
		}

		result, err := patientActionPlanCollection.DeleteOne(ctx, bson.M{"_id": objID, "patient_id": patient.ID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while deleting action plan"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Action plan not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Action plan deleted successfully"})
	}
}
