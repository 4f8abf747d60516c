// Package catalog loads the static recipe and category collections.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/oksasatya/recipe-api/internal/domain/entity"
	"github.com/oksasatya/recipe-api/internal/domain/repository"
)

const (
	categoriesFile = "categories.json"
	recipesFile    = "recipes.json"
)

//go:embed data/*.json
var embedded embed.FS

// Source reads catalog JSON files from a filesystem.
type Source struct {
	fsys fs.FS
}

func NewSource(fsys fs.FS) *Source {
	return &Source{fsys: fsys}
}

// Embedded returns the data bundled into the binary.
func Embedded() *Source {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded data missing: %v", err))
	}
	return NewSource(sub)
}

// FromDir returns a Source over dir, or the embedded data when dir is empty.
func FromDir(dir string) *Source {
	if dir == "" {
		return Embedded()
	}
	return NewSource(os.DirFS(dir))
}

func (s *Source) Categories() ([]entity.Category, error) {
	var out []entity.Category
	if err := s.decode(categoriesFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Source) Recipes() ([]entity.Recipe, error) {
	var out []entity.Recipe
	if err := s.decode(recipesFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Source) decode(name string, v any) error {
	b, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

var _ repository.CatalogSource = (*Source)(nil)
