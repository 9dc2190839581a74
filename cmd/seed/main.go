package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/karanshah229/taskapp/config"
	"github.com/karanshah229/taskapp/internal/application"
	"github.com/karanshah229/taskapp/internal/container"
	pginfra "github.com/karanshah229/taskapp/internal/infrastructure/postgres"
	"github.com/karanshah229/taskapp/internal/router"
	"github.com/karanshah229/taskapp/pkg/helpers"
)

// seed creates a demo user with a few tasks through the application services,
// so the same validation and hashing apply as for API clients.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	cfg.MailSendEnabled = false
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	if cfg.StorageDriver == "postgres" {
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		container.SetPGPool(pool)
	}
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL))

	app := router.BuildApp()

	const (
		email    = "demo@example.com"
		password = "red12345"
	)
	u, err := app.Users.Register(ctx, application.RegisterInput{Name: "Demo User", Age: 30, Email: email, Password: password})
	switch {
	case errors.Is(err, application.ErrEmailTaken):
		u, err = app.Users.VerifyCredentials(ctx, email, password)
		if err != nil {
			log.Fatalf("demo user exists with a different password: %v", err)
		}
		fmt.Printf("demo user already present: id=%s\n", u.ID)
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	default:
		fmt.Printf("seeded user: id=%s email=%s password=%s\n", u.ID, email, password)
	}

	for i, d := range []string{"Buy groceries", "Read a book", "Call the bank"} {
		t, err := app.Tasks.Create(ctx, u, application.CreateTaskInput{Description: d, Status: i == 1})
		if err != nil {
			log.Fatalf("failed to seed task: %v", err)
		}
		fmt.Printf("seeded task: id=%s description=%q\n", t.ID, t.Description)
	}

	token, err := app.Tokens.Issue(ctx, u)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}
	fmt.Printf("bearer token: %s\n", token)
}
