package router

import (
	"github.com/oksasatya/recipe-api/internal/container"
	handlers "github.com/oksasatya/recipe-api/internal/interface/http"
	"github.com/oksasatya/recipe-api/internal/router/modules"
)

// InitModules builds handlers from the container and registers every module.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config
	userHandler := handlers.NewUserHandler(
		c.UserService,
		c.JWT,
		c.Logger,
		cfg.CookieDomain,
		cfg.CookieSecure,
		cfg.IsDevelopment(),
	)
	errs := userHandler.Errors

	r.Add(modules.NewAuthModule(userHandler, c.JWT, c.Redis, c.Logger))
	r.Add(modules.NewRecipeModule(handlers.NewRecipeHandler(c.Catalog, errs)))
	r.Add(modules.NewCategoryModule(handlers.NewCategoryHandler(c.Catalog, errs)))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis, c.Logger))
	}

	r.AddRoot(modules.NewOpsModule(handlers.NewHealthHandler(c.Users, c.Redis, c.Logger), cfg.AppName+" API"))
}
