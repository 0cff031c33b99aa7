package routes

import (
	controller "golang-physiobackend/controllers"
	middleware "golang-physiobackend/middleware"
	"golang-physiobackend/models"

	"github.com/gin-gonic/gin"
)

func TemplateRoutes(incomingRoutes *gin.RouterGroup) {
	incomingRoutes.GET("/field-types", controller.GetFieldTypes())

	registerTemplateRoutes(incomingRoutes, "/anamnesis-templates", models.KindAnamnesis)
	registerTemplateRoutes(incomingRoutes, "/evaluation-templates", models.KindEvaluation)
}

func registerTemplateRoutes(incomingRoutes *gin.RouterGroup, prefix string, kind models.TemplateKind) {
	incomingRoutes.GET(prefix, controller.GetTemplates(kind))
	incomingRoutes.GET(prefix+"/:template_id", controller.GetTemplate(kind))

	superadmin := incomingRoutes.Group("/", middleware.RequireRole(models.RoleSuperadmin))
	superadmin.POST(prefix, controller.CreateTemplate(kind))
	superadmin.PUT(prefix+"/:template_id", controller.UpdateTemplate(kind))
	superadmin.DELETE(prefix+"/:template_id", controller.DeleteTemplate(kind))
}
