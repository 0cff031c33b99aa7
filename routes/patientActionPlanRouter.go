package routes

import (
	controller "golang-physiobackend/controllers"
	middleware "golang-physiobackend/middleware"
	"golang-physiobackend/models"

	"github.com/gin-gonic/gin"
)

func PatientActionPlanRoutes(incomingRoutes *gin.RouterGroup) {
	// Patients read only their own plans; plan management is superadmin-only.
	owner := incomingRoutes.Group("/", middleware.RequireSelfOrRole(models.RoleSuperadmin))
	owner.GET("/patients/:patient_id/action-plans", controller.GetPatientActionPlans())
	owner.GET("/patients/:patient_id/action-plans/:id", controller.GetPatientActionPlan())

	superadmin := incomingRoutes.Group("/", middleware.RequireRole(models.RoleSuperadmin))
	superadmin.POST("/patients/:patient_id/action-plans", controller.CreatePatientActionPlan())
	superadmin.PUT("/patients/:patient_id/action-plans/:id", controller.UpdatePatientActionPlan())
	superadmin.DELETE("/patients/:patient_id/action-plans/:id", controller.DeletePatientActionPlan())
}
