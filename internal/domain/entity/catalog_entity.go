package entity

// Category groups recipes. Loaded once from static data and never mutated.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type Nutrition struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
}

// Recipe references its Category by ID only; the category may not exist.
type Recipe struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	CategoryID   string       `json:"categoryId"`
	CookTime     int          `json:"cookTime"`
	Calories     int          `json:"calories"`
	Image        string       `json:"image"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	Nutrition    Nutrition    `json:"nutrition"`
}

// RecipeSummary is the list view of a Recipe with the category name resolved.
type RecipeSummary struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  string `json:"categoryId"`
	Category    string `json:"category"`
	CookTime    int    `json:"cookTime"`
	Calories    int    `json:"calories"`
	Image       string `json:"image"`
}

// RecipeFilters narrows ListRecipes. Empty fields do not filter.
type RecipeFilters struct {
	CategoryID string
	Keyword    string
}
