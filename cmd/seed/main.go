package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/recipe-api/config"
	"github.com/oksasatya/recipe-api/internal/application"
	"github.com/oksasatya/recipe-api/internal/container"
	"github.com/oksasatya/recipe-api/pkg/apperr"
	"github.com/oksasatya/recipe-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	email := flag.String("email", "demo@example.com", "demo account email")
	password := flag.String("password", "password123", "demo account password")
	name := flag.String("name", "Demo User", "demo account name")
	birthday := flag.String("birthday", "", "optional birthday (YYYY-MM-DD)")
	flag.Parse()

	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	store, err := container.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open user store: %v", err)
	}
	defer func() { _ = store.Close() }()

	svc := application.NewUserService(store, logger)
	p, err := svc.Register(ctx, application.RegisterInput{
		Email:    *email,
		Password: *password,
		Name:     *name,
		Birthday: birthday,
	})
	switch {
	case errors.Is(err, apperr.ErrConflict):
		fmt.Printf("user %s already exists, nothing to do\n", *email)
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	default:
		fmt.Printf("seeded user: id=%s email=%s name=%s\n", p.ID, p.Email, p.Name)
	}
}
