package main

import (
	"context"
	controller "golang-physiobackend/controllers"
	database "golang-physiobackend/database"
	middleware "golang-physiobackend/middleware"
	routes "golang-physiobackend/routes"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Print("No .env file found, relying on environment")
	}
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx, database.Client); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	// Public routes
	publicRoutes := router.Group("/")
	{
		publicRoutes.POST("/auth/login", controller.Login())
		publicRoutes.POST("/auth/refresh", controller.RefreshToken())
	}

	// Private routes
	privateRoutes := router.Group("/")
	privateRoutes.Use(middleware.Authentication())
	{
		routes.UserRoutes(privateRoutes)
		routes.ExerciseCategoryRoutes(privateRoutes)
		routes.ExerciseRoutes(privateRoutes)
		routes.TrainingRoutes(privateRoutes)
		routes.PatientTrainingRoutes(privateRoutes)
		routes.PatientActionPlanRoutes(privateRoutes)
		routes.TemplateRoutes(privateRoutes)
		routes.FilledRecordRoutes(privateRoutes)
	}

	router.Run(":" + port)
}
