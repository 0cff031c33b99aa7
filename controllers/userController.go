package controllers

import (
	"context"
	"net/http"
	"time"

	"golang-physiobackend/database"
	"golang-physiobackend/helpers"
	"golang-physiobackend/models"
	"golang-physiobackend/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var userCollection *mongo.Collection = database.OpenCollection(database.Client, "user")
var validate = validator.New()

// findPatient loads a user by hex id and checks it is actually a patient.
// Shared by every patient-scoped controller.
func findPatient(ctx context.Context, patientID string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return nil, services.NewValidationError("invalid patient ID")
	}

	var patient models.User
	err = userCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&patient)
	if err == mongo.ErrNoDocuments {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if patient.Role != models.RolePatient {
		return nil, services.NewValidationError("user is not a patient")
	}
	return &patient, nil
}

func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var user models.User
		var foundUser models.User

		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		err := userCollection.FindOne(ctx, bson.M{"email": user.Email}).Decode(&foundUser)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
			return
		}

		passwordIsValid, msg := helpers.VerifyPassword(*user.Password, *foundUser.Password)
		if !passwordIsValid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		token, refreshToken, err := helpers.GenerateAllTokens(*foundUser.Email, *foundUser.FirstName, *foundUser.LastName, foundUser.ID.Hex(), foundUser.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while generating token"})
			return
		}
		helpers.UpdateAllTokens(token, refreshToken, foundUser.ID.Hex())

		foundUser.Password = nil
		foundUser.RefreshToken = nil
		c.JSON(http.StatusOK, gin.H{
			"token":         token,
			"refresh_token": refreshToken,
			"user":          foundUser,
		})
	}
}

func RefreshToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		type RefreshTokenRequest struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}

		var req RefreshTokenRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		claims, msg := helpers.ValidateToken(req.RefreshToken)
		if msg != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		objID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID in token"})
			return
		}

		var user models.User
		err = userCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		token, refreshToken, err := helpers.GenerateAllTokens(*user.Email, *user.FirstName, *user.LastName, user.ID.Hex(), user.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while generating token"})
			return
		}

		helpers.UpdateAllTokens(token, refreshToken, user.ID.Hex())

		c.JSON(http.StatusOK, gin.H{"token": token, "refresh_token": refreshToken})
	}
}

func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		objID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		var user models.User
		err = userCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		user.Password = nil
		user.RefreshToken = nil
		c.JSON(http.StatusOK, user)
	}
}

func GetPatients() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		cursor, err := userCollection.Find(ctx, bson.M{"role": models.RolePatient})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching patients"})
			return
		}
		defer cursor.Close(ctx)

		patients := []models.User{}
		for cursor.Next(ctx) {
			var patient models.User
			if err := cursor.Decode(&patient); err != nil {
				continue
			}
			patient.Password = nil
			patient.RefreshToken = nil
			patients = append(patients, patient)
		}

		c.JSON(http.StatusOK, patients)
	}
}

func GetPatient() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		patient, err := findPatient(ctx, c.Param("patient_id"))
		if err != nil {
			respondServiceError(c, err, "Error while fetching patient")
			return
		}

		patient.Password = nil
		patient.RefreshToken = nil
		c.JSON(http.StatusOK, patient)
	}
}

func CreatePatient() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var patient models.User
		if err := c.BindJSON(&patient); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		// Password is optional for patients; generate one when absent and
		// return it once in the response.
		generatedPassword := ""
		if patient.Password == nil || *patient.Password == "" {
			generatedPassword = helpers.GenerateRandomPassword(12)
			patient.Password = &generatedPassword
		}

		// Role is always patient on this route, whatever the body says.
		patient.Role = models.RolePatient

		if validationErr := validate.Struct(patient); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		count, err := userCollection.CountDocuments(ctx, bson.M{"email": patient.Email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if count > 0 {
			respondServiceError(c, services.ErrDuplicateKey, "Email already registered")
			return
		}

		hashed := helpers.HashPassword(*patient.Password)
		patient.Password = &hashed
		patient.ID = primitive.NewObjectID()
		patient.CreatedAt = time.Now()
		patient.UpdatedAt = time.Now()

		if _, insertErr := userCollection.InsertOne(ctx, patient); insertErr != nil {
			if mongo.IsDuplicateKeyError(insertErr) {
				respondServiceError(c, services.ErrDuplicateKey, "Email already registered")
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Patient could not be created"})
			return
		}

		patient.Password = nil
		response := gin.H{"patient": patient}
		if generatedPassword != "" {
			response["generated_password"] = generatedPassword
		}
		c.JSON(http.StatusCreated, response)
	}
}

func UpdatePatient() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		patient, err := findPatient(ctx, c.Param("patient_id"))
		if err != nil {
			respondServiceError(c, err, "Error while fetching patient")
			return
		}

		var body models.User
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		var updateObj primitive.D
		if body.FirstName != nil {
			updateObj = append(updateObj, bson.E{Key: "first_name", Value: body.FirstName})
		}
		if body.LastName != nil {
			updateObj = append(updateObj, bson.E{Key: "last_name", Value: body.LastName})
		}
		if body.Email != nil {
			count, err := userCollection.CountDocuments(ctx, bson.M{"email": body.Email, "_id": bson.M{"$ne": patient.ID}})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
				return
			}
			if count > 0 {
				respondServiceError(c, services.ErrDuplicateKey, "Email already registered")
				return
			}
			updateObj = append(updateObj, bson.E{Key: "email", Value: body.Email})
		}
		if body.Password != nil {
			hashed := helpers.HashPassword(*body.Password)
			updateObj = append(updateObj, bson.E{Key: "password", Value: hashed})
		}
		if body.Birth != nil {
			updateObj = append(updateObj, bson.E{Key: "birth", Value: body.Birth})
		}
		if body.Phone != "" {
			updateObj = append(updateObj, bson.E{Key: "phone", Value: body.Phone})
		}
		if body.EmergencyPhone != "" {
			updateObj = append(updateObj, bson.E{Key: "emergency_phone", Value: body.EmergencyPhone})
		}
		if body.CPF != "" {
			updateObj = append(updateObj, bson.E{Key: "cpf", Value: body.CPF})
		}
		if body.HomeAddress != nil {
			updateObj = append(updateObj, bson.E{Key: "home_address", Value: body.HomeAddress})
		}

		// Role can never change through this route.
		updateObj = append(updateObj, bson.E{Key: "role", Value: models.RolePatient})
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

		_, err = userCollection.UpdateOne(
			ctx,
			bson.M{"_id": patient.ID},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Patient update failed"})
			return
		}

		var updated models.User
		if err := userCollection.FindOne(ctx, bson.M{"_id": patient.ID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching patient"})
			return
		}
		updated.Password = nil
		updated.RefreshToken = nil
		c.JSON(http.StatusOK, updated)
	}
}

func DeletePatient() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		patient, err := findPatient(ctx, c.Param("patient_id"))
		if err != nil {
			respondServiceError(c, err, "Error while fetching patient")
			return
		}

		if _, err := userCollection.DeleteOne(ctx, bson.M{"_id": patient.ID}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error occurred while deleting the patient"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Patient deleted successfully",
			"patient": gin.H{
				"id":         patient.ID,
				"first_name": patient.FirstName,
				"last_name":  patient.LastName,
				"email":      patient.Email,
			},
		})
	}
}
