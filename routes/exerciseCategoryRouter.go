package routes

import (
	controller "golang-physiobackend/controllers"
	middleware "golang-physiobackend/middleware"
	"golang-physiobackend/models"

	"github.com/gin-gonic/gin"
)

func ExerciseCategoryRoutes(incomingRoutes *gin.RouterGroup) {
	incomingRoutes.GET("/exercise-categories", controller.GetExerciseCategories())
	incomingRoutes.GET("/exercise-categories/:category_id", controller.GetExerciseCategory())

	superadmin := incomingRoutes.Group("/", middleware.RequireRole(models.RoleSuperadmin))
	superadmin.POST("/exercise-categories", controller.CreateExerciseCategory())
	superadmin.PUT("/exercise-categories/:category_id", controller.UpdateExerciseCategory())
	superadmin.DELETE("/exercise-categories/:category_id", controller.DeleteExerciseCategory())
}
