package routes

import (
	controller "golang-physiobackend/controllers"
	middleware "golang-physiobackend/middleware"
	"golang-physiobackend/models"

	"github.com/gin-gonic/gin"
)

func FilledRecordRoutes(incomingRoutes *gin.RouterGroup) {
	registerFilledRecordRoutes(incomingRoutes, "/patients/:patient_id/anamnesis", models.KindAnamnesis)
	registerFilledRecordRoutes(incomingRoutes, "/patients/:patient_id/evaluations", models.KindEvaluation)
}

func registerFilledRecordRoutes(incomingRoutes *gin.RouterGroup, prefix string, kind models.TemplateKind) {
	// Patients read only their own records; filling is superadmin-only.
	owner := incomingRoutes.Group("/", middleware.RequireSelfOrRole(models.RoleSuperadmin))
	owner.GET(prefix, controller.GetFilledRecords(kind))
	owner.GET(prefix+"/:id", controller.GetFilledRecord(kind))

	superadmin := incomingRoutes.Group("/", middleware.RequireRole(models.RoleSuperadmin))
	superadmin.POST(prefix, controller.CreateFilledRecord(kind))
	superadmin.PUT(prefix+"/:id", controller.UpdateFilledRecord(kind))
	superadmin.DELETE(prefix+"/:id", controller.DeleteFilledRecord(kind))
}
