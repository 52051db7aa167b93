// createtable creates the gateway's own tables (api_tokens, sms_sent_logs)
// in the configured database.
package main

import (
	"context"
	"log"

	"laundrydesk.com/app/internal/auth"
	"laundrydesk.com/app/internal/config"
	"laundrydesk.com/app/internal/database"
	"laundrydesk.com/app/internal/logging"
	"laundrydesk.com/app/internal/sms"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Logging.Level, "")

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	if err := auth.NewDBStore(db).Migrate(ctx); err != nil {
		log.Fatalf("Failed to create api_tokens: %v", err)
	}
	if err := sms.NewService(db, nil, logger).Migrate(ctx); err != nil {
		log.Fatalf("Failed to create sms_sent_logs: %v", err)
	}
	log.Println("Tables are up to date: api_tokens, sms_sent_logs")
}
