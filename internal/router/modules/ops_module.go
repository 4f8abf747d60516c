package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	handlers "github.com/oksasatya/recipe-api/internal/interface/http"
)

// OpsModule mounts health, metrics and API docs at the root.
type OpsModule struct {
	Health   *handlers.HealthHandler
	DocTitle string
}

func NewOpsModule(health *handlers.HealthHandler, docTitle string) *OpsModule {
	return &OpsModule{Health: health, DocTitle: docTitle}
}

func (m *OpsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Health.Check)
	rg.GET("/metrics", gin.WrapH(promhttp.Handler()))
	rg.GET(handlers.OpenAPIPath, handlers.OpenAPIDocument)
	rg.GET(handlers.DocsPath+"*any", handlers.SwaggerUI(m.DocTitle))
}
