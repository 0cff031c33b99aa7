package routes

import (
	controller "golang-physiobackend/controllers"
	middleware "golang-physiobackend/middleware"
	"golang-physiobackend/models"

	"github.com/gin-gonic/gin"
)

func PatientTrainingRoutes(incomingRoutes *gin.RouterGroup) {
	// Patients see and complete only their own assignments; assignment
	// management is a superadmin concern.
	owner := incomingRoutes.Group("/", middleware.RequireSelfOrRole(models.RoleSuperadmin))
	owner.GET("/patients/:patient_id/trainings", controller.GetPatientTrainings())
	owner.GET("/patients/:patient_id/trainings/:id", controller.GetPatientTraining())
	owner.PUT("/patients/:patient_id/trainings/:id", controller.UpdatePatientTraining())
	owner.POST("/patients/:patient_id/trainings/:id/upload-url", controller.RecordingUploadURL())
	owner.POST("/patients/:patient_id/trainings/:id/recording", controller.UploadRecording())
	owner.GET("/patients/:patient_id/trainings/:id/download-url", controller.RecordingDownloadURL())

	superadmin := incomingRoutes.Group("/", middleware.RequireRole(models.RoleSuperadmin))
	superadmin.POST("/patients/:patient_id/trainings", controller.CreatePatientTrainings())
	superadmin.DELETE("/patients/:patient_id/trainings/:id", controller.DeletePatientTraining())
}
