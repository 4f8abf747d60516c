package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/recipe-api/internal/application"
	"github.com/oksasatya/recipe-api/pkg/apperr"
	"github.com/oksasatya/recipe-api/pkg/response"
)

type CategoryHandler struct {
	Catalog *application.CatalogService
	Errors  ErrorWriter
}

func NewCategoryHandler(catalog *application.CatalogService, errs ErrorWriter) *CategoryHandler {
	return &CategoryHandler{Catalog: catalog, Errors: errs}
}

// List GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	list := h.Catalog.ListCategories()
	response.Success(c, http.StatusOK, list, "Categories retrieved successfully", gin.H{"count": len(list)})
}

// Get GET /api/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	cat, ok := h.Catalog.GetCategory(c.Param("id"))
	if !ok {
		h.Errors.Write(c, apperr.With(apperr.ErrNotFound, "Category not found"))
		return
	}
	response.Success(c, http.StatusOK, cat, "Category retrieved successfully", nil)
}
