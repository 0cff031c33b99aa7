package routes

import (
	controller "golang-physiobackend/controllers"
	middleware "golang-physiobackend/middleware"
	"golang-physiobackend/models"

	"github.com/gin-gonic/gin"
)

func UserRoutes(incomingRoutes *gin.RouterGroup) {
	incomingRoutes.GET("/users/me", controller.Me())

	superadmin := incomingRoutes.Group("/", middleware.RequireRole(models.RoleSuperadmin))
	superadmin.GET("/patients", controller.GetPatients())
	superadmin.GET("/patients/:patient_id", controller.GetPatient())
	superadmin.POST("/patients", controller.CreatePatient())
	superadmin.PUT("/patients/:patient_id", controller.UpdatePatient())
	superadmin.DELETE("/patients/:patient_id", controller.DeletePatient())
}
