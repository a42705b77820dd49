// Command createstaff creates a staff account that can review travel requests
// and use the chat assistant.
//
//	createstaff -username alice -email alice@example.com -password s3cret [-admin]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/traveldesk/travel-requests/internal/core/domain"
	"github.com/traveldesk/travel-requests/internal/core/service"
	"github.com/traveldesk/travel-requests/internal/infrastructure/config"
	"github.com/traveldesk/travel-requests/internal/infrastructure/db/postgres"
	"github.com/traveldesk/travel-requests/pkg/logger"
)

func main() {
	username := flag.String("username", "", "username of the new account")
	email := flag.String("email", "", "login email of the new account")
	password := flag.String("password", os.Getenv("STAFF_PASSWORD"), "password (defaults to $STAFF_PASSWORD)")
	admin := flag.Bool("admin", false, "also mark the account as admin")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "createstaff"})

	db, err := postgres.Connect(postgres.Config{DSN: cfg.Postgres.DSN, MaxOpenConns: 2, MaxIdleConns: 1}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	if err := postgres.Migrate(db, log); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	auth := service.NewAuthService(postgres.NewUserRepository(db), tokens, log)

	user, err := auth.CreateStaff(ctx, *username, *email, *password, *admin)
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		for field, msgs := range verr.Fields {
			for _, msg := range msgs {
				fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
			}
		}
		os.Exit(2)
	case err != nil:
		log.Fatal().Err(err).Msg("create staff user")
	}

	log.Info().
		Int64("id", user.ID).
		Str("email", user.Email).
		Bool("is_admin", user.IsAdmin).
		Msg("staff user created")
}
