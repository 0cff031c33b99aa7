package routes

import (
	controller "golang-physiobackend/controllers"
	middleware "golang-physiobackend/middleware"
	"golang-physiobackend/models"

	"github.com/gin-gonic/gin"
)

func ExerciseRoutes(incomingRoutes *gin.RouterGroup) {
	// Patients can browse the exercise catalog; only superadmins change it.
	incomingRoutes.GET("/exercises", controller.GetExercises())
	incomingRoutes.GET("/exercises/types", controller.GetExerciseTypes())
	incomingRoutes.GET("/exercises/:exercise_id", controller.GetExercise())

	superadmin := incomingRoutes.Group("/", middleware.RequireRole(models.RoleSuperadmin))
	superadmin.POST("/exercises", controller.CreateExercise())
	superadmin.PUT("/exercises/:exercise_id", controller.UpdateExercise())
	superadmin.DELETE("/exercises/:exercise_id", controller.DeleteExercise())
}
