package server

import (
	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/internal/server/middleware"
	"github.com/profilenet/backend/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Project routes
	apiRoutes.GET("/projects", routes.GetProjectsHandler)
	apiRoutes.POST("/projects", routes.CreateProjectHandler)
	apiRoutes.GET("/projects/:id", routes.GetProjectHandler)
	apiRoutes.PATCH("/projects/:id", routes.EditProjectHandler)
	apiRoutes.DELETE("/projects/:id", routes.DeleteProjectHandler)
	apiRoutes.POST("/projects/:id/save", routes.SaveProjectHandler)

	// Subject routes
	apiRoutes.POST("/projects/:id/subjects", routes.AddSubjectHandler)
	apiRoutes.PATCH("/projects/:id/subjects/:subject_id", routes.EditSubjectHandler)
	apiRoutes.DELETE("/projects/:id/subjects/:subject_id", routes.DeleteSubjectHandler)

	// Relation routes
	apiRoutes.POST("/projects/:id/subjects/:subject_id/relations", routes.AddRelationHandler)
	apiRoutes.PATCH("/projects/:id/subjects/:subject_id/relations/:relation_id", routes.EditRelationHandler)
	apiRoutes.DELETE("/projects/:id/subjects/:subject_id/relations/:relation_id", routes.DeleteRelationHandler)

	// Expression routes, attached to either a subject or a relation
	apiRoutes.POST("/projects/:id/subjects/:subject_id/analyses", routes.AddAnalysisHandler)
	apiRoutes.PATCH("/projects/:id/subjects/:subject_id/analyses/:analysis_id", routes.EditAnalysisHandler)
	apiRoutes.DELETE("/projects/:id/subjects/:subject_id/analyses/:analysis_id", routes.DeleteAnalysisHandler)
	apiRoutes.POST("/projects/:id/subjects/:subject_id/relations/:relation_id/analyses", routes.AddAnalysisHandler)
	apiRoutes.PATCH("/projects/:id/subjects/:subject_id/relations/:relation_id/analyses/:analysis_id", routes.EditAnalysisHandler)
	apiRoutes.DELETE("/projects/:id/subjects/:subject_id/relations/:relation_id/analyses/:analysis_id", routes.DeleteAnalysisHandler)

	// Keyword routes, attached to either a subject or a relation
	apiRoutes.POST("/projects/:id/subjects/:subject_id/keywords", routes.AddKeywordHandler)
	apiRoutes.PATCH("/projects/:id/subjects/:subject_id/keywords/:keyword_id", routes.EditKeywordHandler)
	apiRoutes.DELETE("/projects/:id/subjects/:subject_id/keywords/:keyword_id", routes.DeleteKeywordHandler)
	apiRoutes.POST("/projects/:id/subjects/:subject_id/relations/:relation_id/keywords", routes.AddKeywordHandler)
	apiRoutes.PATCH("/projects/:id/subjects/:subject_id/relations/:relation_id/keywords/:keyword_id", routes.EditKeywordHandler)
	apiRoutes.DELETE("/projects/:id/subjects/:subject_id/relations/:relation_id/keywords/:keyword_id", routes.DeleteKeywordHandler)

	// Analysis run routes
	apiRoutes.POST("/projects/:id/start", routes.StartAnalysisHandler)
	apiRoutes.POST("/projects/:id/stop", routes.StopAnalysisHandler)
	apiRoutes.GET("/projects/:id/monitoring", routes.GetMonitoringHandler)
	apiRoutes.GET("/projects/:id/results", routes.GetResultsHandler)
	apiRoutes.GET("/projects/:id/requests", routes.GetRequestsHandler)
	apiRoutes.POST("/projects/:id/node-detail", routes.GetNodeDetailHandler)

	// Run log routes
	apiRoutes.GET("/logs", routes.GetLogsHandler)
	apiRoutes.GET("/projects/:id/logs", routes.GetLogsHandler)
}
