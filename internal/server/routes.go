package server

import (
	"net/http"

	_ "symtriage/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"io/fs"

	"symtriage/cmd/web"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"}, // Add your frontend URL
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))

	r.GET("/", s.serviceInfoHandler)

	r.GET("/health", s.healthHandler)
	r.POST("/api/predict", s.predictHandler)
	r.GET("/api/predictions", s.listPredictionsHandler)
	r.GET("/api/predictions/summary", s.predictionSummaryHandler)
	r.GET("/api/model/info", s.modelInfoHandler)
	r.POST("/api/model/retrain", s.retrainModelHandler)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	staticFiles, _ := fs.Sub(web.Files, "assets")
	r.StaticFS("/assets", http.FS(staticFiles))

	r.GET("/web", func(c *gin.Context) {
		web.DashboardHandler(c.Writer, c.Request)
	})

	return r
}

func (s *Server) serviceInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "symtriage",
		"message": "symptom triage prediction service",
	})
}

// healthHandler godoc
// @Summary Health check
// @Description Returns current service, model, and database health details.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"model_loaded": s.models.Ready(),
		"database":     s.db.Health(),
		"timestamp":    isoTimestamp(),
	})
}
