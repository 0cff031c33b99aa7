package routes

import (
	controller "golang-physiobackend/controllers"
	middleware "golang-physiobackend/middleware"
	"golang-physiobackend/models"

	"github.com/gin-gonic/gin"
)

func TrainingRoutes(incomingRoutes *gin.RouterGroup) {
	incomingRoutes.GET("/trainings", controller.GetTrainings())
	incomingRoutes.GET("/trainings/:training_id", controller.GetTraining())

	superadmin := incomingRoutes.Group("/", middleware.RequireRole(models.RoleSuperadmin))
	superadmin.POST("/trainings", controller.CreateTraining())
	superadmin.PUT("/trainings/:training_id", controller.UpdateTraining())
	superadmin.DELETE("/trainings/:training_id", controller.DeleteTraining())
}
