package server

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"pdfqa-backend/internal/documents"
	"pdfqa-backend/internal/questions"
	"pdfqa-backend/internal/shared/config"
	"pdfqa-backend/internal/shared/server/middleware"
	"pdfqa-backend/internal/shared/server/respond"
)

const serviceVersion = "1.1.0"

// RouterDeps bundles the handlers the router needs.
type RouterDeps struct {
	Config           config.Config
	DocumentsHandler *documents.Handler
	QuestionsHandler *questions.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/", health(deps.Config))

	root := &r.RouterGroup
	deps.DocumentsHandler.RegisterRoutes(root)
	deps.QuestionsHandler.RegisterRoutes(root)

	return r
}

func health(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"status":             "OK",
			"message":            "PDF QA System API is running",
			"version":            serviceVersion,
			"api_key_configured": cfg.AnthropicAPIKey != "",
			"upload_dir_exists":  dirExists(cfg.UploadDir),
			"database_exists":    fileExists(cfg.DBPath),
		})
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
