package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/recipe-api/internal/interface/http"
)

// RecipeModule serves GET /api/recipes and GET /api/recipes/:id.
type RecipeModule struct {
	Handler *handlers.RecipeHandler
}

func NewRecipeModule(h *handlers.RecipeHandler) *RecipeModule { return &RecipeModule{Handler: h} }

func (m *RecipeModule) Register(rg *gin.RouterGroup) {
	rg.GET("/recipes", m.Handler.List)
	rg.GET("/recipes/:id", m.Handler.Get)
}

// CategoryModule serves GET /api/categories and GET /api/categories/:id.
type CategoryModule struct {
	Handler *handlers.CategoryHandler
}

func NewCategoryModule(h *handlers.CategoryHandler) *CategoryModule {
	return &CategoryModule{Handler: h}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	rg.GET("/categories", m.Handler.List)
	rg.GET("/categories/:id", m.Handler.Get)
}
