package application

import (
	"fmt"
	"strings"

	"github.com/oksasatya/recipe-api/internal/domain/entity"
	repo "github.com/oksasatya/recipe-api/internal/domain/repository"
)

// UnknownCategory is the name reported for a category id with no match.
const UnknownCategory = "Unknown Category"

// CatalogService answers read-only queries over the recipe catalog. Data is
// loaded once by NewCatalogService and never mutated afterwards, so a single
// instance is safe for concurrent use.
type CatalogService struct {
	categories []entity.Category
	recipes    []entity.Recipe
	byCategory map[string]int
	byRecipe   map[int]int
}

func NewCatalogService(src repo.CatalogSource) (*CatalogService, error) {
	categories, err := src.Categories()
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	recipes, err := src.Recipes()
	if err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}

	s := &CatalogService{
		categories: categories,
		recipes:    recipes,
		byCategory: make(map[string]int, len(categories)),
		byRecipe:   make(map[int]int, len(recipes)),
	}
	for i, c := range categories {
		if _, dup := s.byCategory[c.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %q", c.ID)
		}
		s.byCategory[c.ID] = i
	}
	for i, r := range recipes {
		if _, dup := s.byRecipe[r.ID]; dup {
			return nil, fmt.Errorf("duplicate recipe id %d", r.ID)
		}
		s.byRecipe[r.ID] = i
	}
	return s, nil
}

func (s *CatalogService) ListCategories() []entity.Category {
	out := make([]entity.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *CatalogService) GetCategory(id string) (*entity.Category, bool) {
	i, ok := s.byCategory[id]
	if !ok {
		return nil, false
	}
	c := s.categories[i]
	return &c, true
}

// GetCategoryName never fails; dangling references get UnknownCategory.
func (s *CatalogService) GetCategoryName(id string) string {
	if c, ok := s.GetCategory(id); ok {
		return c.Name
	}
	return UnknownCategory
}

// ListRecipes returns summaries of the recipes matching every non-empty
// filter, in load order. The result is never nil.
func (s *CatalogService) ListRecipes(f entity.RecipeFilters) []entity.RecipeSummary {
	keyword := strings.ToLower(f.Keyword)
	out := make([]entity.RecipeSummary, 0, len(s.recipes))
	for i := range s.recipes {
		r := &s.recipes[i]
		if f.CategoryID != "" && r.CategoryID != f.CategoryID {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(r.Name), keyword) &&
			!strings.Contains(strings.ToLower(r.Description), keyword) {
			continue
		}
		out = append(out, s.summarize(r))
	}
	return out
}

func (s *CatalogService) summarize(r *entity.Recipe) entity.RecipeSummary {
	return entity.RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Category:    s.GetCategoryName(r.CategoryID),
		CookTime:    r.CookTime,
		Calories:    r.Calories,
		Image:       r.Image,
	}
}

func (s *CatalogService) GetRecipeByID(id int) (*entity.Recipe, bool) {
	i, ok := s.byRecipe[id]
	if !ok {
		return nil, false
	}
	r := s.recipes[i]
	return &r, true
}
