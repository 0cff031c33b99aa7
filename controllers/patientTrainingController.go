package controllers

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"golang-physiobackend/database"
	"golang-physiobackend/helpers"
	"golang-physiobackend/models"
	"golang-physiobackend/services"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	kmsv2 "github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var patientTrainingCollection *mongo.Collection = database.OpenCollection(database.Client, "patient_training")

// patientTrainingStore adapts the collection to the action-plan linker.
type patientTrainingStore struct{}

func (patientTrainingStore) FindCompletedTrainingIDs(ctx context.Context, patientID primitive.ObjectID, start, end time.Time) ([]primitive.ObjectID, error) {
	filter := bson.M{
		"patient_id": patientID,
		"status":     models.TrainingStatusCompleted,
		"completed_date": bson.M{
			"$gte": start,
			"$lte": end,
		},
	}

	cursor, err := patientTrainingCollection.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}

func patientTrainingLookupStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "user"},
			{Key: "localField", Value: "patient_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "patient"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "training"},
			{Key: "localField", Value: "training_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "training"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "patient.password", Value: 0},
			{Key: "patient.refresh_token", Value: 0},
			{Key: "wrapped_key", Value: 0},
		}}},
	}
}

func GetPatientTrainings() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		patient, err := findPatient(ctx, c.Param("patient_id"))
		if err != nil {
			respondServiceError(c, err, "Error while fetching patient")
			return
		}

		filter := bson.M{"patient_id": patient.ID}

		// period=past|future filters on the scheduled date, local midnight
		// boundary.
		startOfToday := services.StartOfDay(time.Now())
		switch c.Query("period") {
		case "past":
			filter["scheduled_date"] = bson.M{"$lt": startOfToday}
		case "future":
			filter["scheduled_date"] = bson.M{"$gte": startOfToday}
		}

		pipeline := mongo.Pipeline{
			bson.D{{Key: "$match", Value: filter}},
			bson.D{{Key: "$sort", Value: bson.D{{Key: "scheduled_date", Value: 1}}}},
		}
		pipeline = append(pipeline, patientTrainingLookupStages()...)

		result, err := patientTrainingCollection.Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching patient trainings"})
			return
		}

		var trainings []bson.M
		if err = result.All(ctx, &trainings); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching patient trainings"})
			return
		}

		c.JSON(http.StatusOK, trainings)
	}
}

func GetPatientTraining() gin.HandlerFunc {
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
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient training ID"})
			return
		}

		pipeline := mongo.Pipeline{
			bson.D{{Key: "$match", Value: bson.M{"_id": objID, "patient_id": patient.ID}}},
		}
		pipeline = append(pipeline, patientTrainingLookupStages()...)

		result, err := patientTrainingCollection.Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching patient training"})
			return
		}

		var trainings []bson.M
		if err = result.All(ctx, &trainings); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching patient training"})
			return
		}
		if len(trainings) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient training not found"})
			return
		}

		c.JSON(http.StatusOK, trainings[0])
	}
}

// CreatePatientTrainings assigns a training to a patient once per scheduled
// date, in a single request.
func CreatePatientTrainings() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		patient, err := findPatient(ctx, c.Param("patient_id"))
		if err != nil {
			respondServiceError(c, err, "Error while fetching patient")
			return
		}

		type RequestBody struct {
			TrainingID     primitive.ObjectID `json:"training_id"`
			ScheduledDates []time.Time        `json:"scheduled_dates"`
			AssignedDate   *time.Time         `json:"assigned_date"`
			Status         string             `json:"status"`
		}

		var body RequestBody
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		if body.TrainingID.IsZero() || len(body.ScheduledDates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Required fields: training_id, scheduled_dates"})
			return
		}

		count, err := trainingCollection.CountDocuments(ctx, bson.M{"_id": body.TrainingID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Training not found"})
			return
		}

		status := body.Status
		if status == "" {
			status = models.TrainingStatusIncompleted
		}
		if !models.IsValidTrainingStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Allowed values: incompleted, completed"})
			return
		}

		assignedDate := time.Now()
		if body.AssignedDate != nil {
			assignedDate = *body.AssignedDate
		}

		docs := make([]interface{}, 0, len(body.ScheduledDates))
		created := make([]models.PatientTraining, 0, len(body.ScheduledDates))
		for _, scheduledDate := range body.ScheduledDates {
			training := models.PatientTraining{
				ID:            primitive.NewObjectID(),
				PatientID:     patient.ID,
				TrainingID:    body.TrainingID,
				AssignedDate:  assignedDate,
				ScheduledDate: scheduledDate,
				Status:        status,
				CreatedAt:     time.Now(),
				UpdatedAt:     time.Now(),
			}
			docs = append(docs, training)
			created = append(created, training)
		}

		if _, insertErr := patientTrainingCollection.InsertMany(ctx, docs); insertErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while creating patient trainings"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"count":     len(created),
			"trainings": created,
		})
	}
}

func UpdatePatientTraining() gin.HandlerFunc {
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
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient training ID"})
			return
		}

		var existing models.PatientTraining
		err = patientTrainingCollection.FindOne(ctx, bson.M{"_id": objID, "patient_id": patient.ID}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient training not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching patient training"})
			return
		}

		type RequestBody struct {
			ScheduledDate *time.Time `json:"scheduled_date"`
			Status        *string    `json:"status"`
			CompletedDate *time.Time `json:"completed_date"`
		}

		var body RequestBody
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		var updateObj primitive.D

		if body.ScheduledDate != nil {
			updateObj = append(updateObj, bson.E{Key: "scheduled_date", Value: body.ScheduledDate})
		}
		if body.Status != nil {
			if !models.IsValidTrainingStatus(*body.Status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Allowed values: incompleted, completed"})
				return
			}
			updateObj = append(updateObj, bson.E{Key: "status", Value: body.Status})

			// completed_date is stamped the first time the assignment is
			// marked completed; an explicit value below still wins.
			if *body.Status == models.TrainingStatusCompleted && existing.CompletedDate == nil && body.CompletedDate == nil {
				updateObj = append(updateObj, bson.E{Key: "completed_date", Value: time.Now()})
			}
		}
		if body.CompletedDate != nil {
			updateObj = append(updateObj, bson.E{Key: "completed_date", Value: body.CompletedDate})
		}

		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

		_, err = patientTrainingCollection.UpdateOne(
			ctx,
			bson.M{"_id": objID, "patient_id": patient.ID},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Patient training update failed"})
			return
		}

		var updated models.PatientTraining
		if err := patientTrainingCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching patient training"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeletePatientTraining() gin.HandlerFunc {
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
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient training ID"})
			return
		}

		result, err := patientTrainingCollection.DeleteOne(ctx, bson.M{"_id": objID, "patient_id": patient.ID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while deleting patient training"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient training not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Patient training deleted successfully"})
	}
}

func wrapKey(ctx context.Context, key, kmsKeyID string) (string, error) {
	result, err := helpers.GetKMSClient().Encrypt(ctx, &kmsv2.EncryptInput{
		KeyId:     awsv2.String(kmsKeyID),
		Plaintext: []byte(key),
	})
	if err != nil {
		log.Printf("Error encrypting key: %v", err)
		return "", err
	}
	return base64.StdEncoding.EncodeToString(result.CiphertextBlob), nil
}

// RecordingUploadURL hands out a presigned S3 PUT URL for a patient's
// training recording and stores the KMS-wrapped client AES key alongside the
// assignment.
func RecordingUploadURL() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		patient, err := findPatient(ctx, c.Param("patient_id"))
		if err != nil {
			respondServiceError(c, err, "Error while fetching patient")
			return
		}

		objID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient training ID"})
			return
		}

		type RequestBody struct {
			AESKey string `json:"aes_key"`
		}
		var body RequestBody
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		count, err := patientTrainingCollection.CountDocuments(ctx, bson.M{"_id": objID, "patient_id": patient.ID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient training not found"})
			return
		}

		wrappedKey, err := wrapKey(ctx, body.AESKey, os.Getenv("KMS_KEY_ID"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to wrap encryption key"})
			return
		}

		recordingKey := fmt.Sprintf("recordings/%s.mp4", objID.Hex())

		svc := s3.New(helpers.GetS3Session())
		req, _ := svc.PutObjectRequest(&s3.PutObjectInput{
			Bucket: aws.String(os.Getenv("S3_BUCKET")),
			Key:    aws.String(recordingKey),
			ACL:    aws.String("private"),
		})
		signedURL, err := req.Presign(15 * time.Minute)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate signed URL"})
			return
		}

		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "recording", Value: recordingKey},
			{Key: "wrapped_key", Value: wrappedKey},
			{Key: "updated_at", Value: time.Now()},
		}}}
		if _, err = patientTrainingCollection.UpdateOne(ctx, bson.M{"_id": objID}, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store recording metadata"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"upload_url": signedURL})
	}
}

// UploadRecording accepts a multipart recording and uploads it server side,
// for clients that cannot use the presigned flow.
func UploadRecording() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		patient, err := findPatient(ctx, c.Param("patient_id"))
		if err != nil {
			respondServiceError(c, err, "Error while fetching patient")
			return
		}

		objID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient training ID"})
			return
		}

		count, err := patientTrainingCollection.CountDocuments(ctx, bson.M{"_id": objID, "patient_id": patient.ID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient training not found"})
			return
		}

		fileHeader, err := c.FormFile("recording")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Recording file is required"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read recording file"})
			return
		}
		defer file.Close()

		recordingKey := fmt.Sprintf("recordings/%s.mp4", objID.Hex())
		if err := helpers.UploadFileToS3(ctx, helpers.GetS3Client(), os.Getenv("S3_BUCKET"), recordingKey, file); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload recording"})
			return
		}

		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "recording", Value: recordingKey},
			{Key: "updated_at", Value: time.Now()},
		}}}
		if _, err = patientTrainingCollection.UpdateOne(ctx, bson.M{"_id": objID}, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store recording metadata"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"recording": recordingKey})
	}
}

// RecordingDownloadURL returns a presigned GET URL plus the wrapped key so
// the client can decrypt the recording.
func RecordingDownloadURL() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		patient, err := findPatient(ctx, c.Param("patient_id"))
		if err != nil {
			respondServiceError(c, err, "Error while fetching patient")
			return
		}

		objID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient training ID"})
			return
		}

		var training models.PatientTraining
		err = patientTrainingCollection.FindOne(ctx, bson.M{"_id": objID, "patient_id": patient.ID}).Decode(&training)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient training not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching patient training"})
			return
		}
		if training.Recording == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "No recording uploaded for this training"})
			return
		}

		svc := s3.New(helpers.GetS3Session())
		req, _ := svc.GetObjectRequest(&s3.GetObjectInput{
			Bucket: aws.String(os.Getenv("S3_BUCKET")),
			Key:    aws.String(training.Recording),
		})
		signedURL, err := req.Presign(15 * time.Minute)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate signed URL"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"download_url": signedURL,
			"wrapped_key":  training.WrappedKey,
		})
	}
}
