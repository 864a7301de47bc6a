// api/router.go
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type RouterConfig struct {
	CORSOrigins    []string
	RateLimitRPS   int
	RateLimitBurst int
}

func NewRouter(svc *Service, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(svc.Log))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", HealthHandler())
		apiGroup.GET("/templates", TemplateListHandler(svc))
		apiGroup.GET("/templates/:name", TemplateHandler(svc))

		limited := apiGroup.Group("", RateLimit(svc.Log, cfg.RateLimitRPS, cfg.RateLimitBurst))
		limited.POST("/parse", ParseHandler(svc))
		limited.POST("/generate", GenerateHandler(svc))
		limited.POST("/convert", ConvertHandler(svc))
		limited.POST("/lint", LintHandler(svc))
	}
	return r
}

// NewHandler оборачивает роутер в CORS для внешнего редактора.
func NewHandler(svc *Service, cfg RouterConfig) http.Handler {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", HeaderRequestID},
		ExposedHeaders: []string{HeaderRequestID},
		MaxAge:         600,
	})
	return c.Handler(NewRouter(svc, cfg))
}
