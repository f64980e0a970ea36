// Command create-admin seeds an administrator account directly in the configured store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/startupathon-api/internal/bootstrap"
	"github.com/noah-isme/startupathon-api/internal/models"
	"github.com/noah-isme/startupathon-api/internal/service"
	"github.com/noah-isme/startupathon-api/pkg/config"
	"github.com/noah-isme/startupathon-api/pkg/logger"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (defaults to $ADMIN_PASSWORD)")
	name := flag.String("name", "", "display name")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, err := bootstrap.OpenStore(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to open store", zap.Error(err))
	}
	if cfg.Database.Driver == config.DriverMemory {
		logr.Warn("memory store selected, the account will not outlive this process")
	}

	auth := service.NewAuthService(store.Users, service.NewValidator(), logr.Named("auth"), service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	}, nil)

	user, err := auth.CreateAdmin(ctx, models.RegisterRequest{Email: *email, Password: *password, Name: *name})
	if store.Close != nil {
		_ = store.Close(context.Background())
	}
	if err != nil {
		logr.Fatal("create admin failed", zap.Error(err))
	}
	fmt.Printf("admin %s created (id %s)\n", user.Email, user.ID)
}
