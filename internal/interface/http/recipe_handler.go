package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/recipe-api/internal/application"
	"github.com/oksasatya/recipe-api/internal/domain/entity"
	"github.com/oksasatya/recipe-api/pkg/apperr"
	"github.com/oksasatya/recipe-api/pkg/response"
)

type RecipeHandler struct {
	Catalog *application.CatalogService
	Errors  ErrorWriter
}

func NewRecipeHandler(catalog *application.CatalogService, errs ErrorWriter) *RecipeHandler {
	return &RecipeHandler{Catalog: catalog, Errors: errs}
}

// List GET /api/recipes?categoryId=&keyword=
func (h *RecipeHandler) List(c *gin.Context) {
	list := h.Catalog.ListRecipes(entity.RecipeFilters{
		CategoryID: c.Query("categoryId"),
		Keyword:    c.Query("keyword"),
	})
	response.Success(c, http.StatusOK, list, "Recipes retrieved successfully", gin.H{"count": len(list)})
}

// Get GET /api/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.Errors.Write(c, apperr.Wrap(apperr.ErrInvalidInput, err, "Invalid recipe ID"))
		return
	}
	r, ok := h.Catalog.GetRecipeByID(id)
	if !ok {
		h.Errors.Write(c, apperr.With(apperr.ErrNotFound, "Recipe not found"))
		return
	}
	response.Success(c, http.StatusOK, r, "Recipe retrieved successfully", nil)
}
