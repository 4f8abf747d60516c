package repository

import "github.com/oksasatya/recipe-api/internal/domain/entity"

// CatalogSource supplies the static recipe and category collections.
type CatalogSource interface {
	Categories() ([]entity.Category, error)
	Recipes() ([]entity.Recipe, error)
}
