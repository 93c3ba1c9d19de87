package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the routes onto a gin engine. CORS is permissive on
// origins because the frontend is served from arbitrary school domains.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "X-Requested-With"},
	}))

	router.GET("/healthz", h.Health)

	router.POST("/extract_assignments", h.ExtractAssignments)
	router.POST("/json_to_ics", h.JSONToICS)
	router.POST("/pdf_to_ics", h.PDFToICS)
	router.POST("/generate_study_plan", h.GenerateStudyPlan)
	router.POST("/export_schedule", h.ExportSchedule)

	return router
}
