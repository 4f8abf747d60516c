package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/recipe-api/pkg/response"
)

// Registry collects modules and mounts them on the engine. API modules are
// mounted under /api; root modules on the engine itself.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	modules     []Module
	rootModules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api}
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) AddRoot(mod Module) {
	r.rootModules = append(r.rootModules, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.API)
	}
	for _, m := range r.rootModules {
		m.Register(&r.Engine.RouterGroup)
	}
	r.Engine.NoRoute(func(c *gin.Context) {
		response.Error[any](c, http.StatusNotFound, "Not Found", gin.H{"code": "NOT_FOUND"})
	})
}
