// resolvecustomer finds or creates a customer by phone against the API,
// the same way the order wizard does.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"laundrydesk.com/app/internal/auth"
	"laundrydesk.com/app/internal/config"
	"laundrydesk.com/app/internal/database"
	"laundrydesk.com/app/internal/logging"
	"laundrydesk.com/app/internal/modules/customers"
	"laundrydesk.com/app/internal/remote"
)

func main() {
	phone := flag.String("phone", "", "Phone number (0712345678, 712345678, 254712345678 or +254712345678)")
	name := flag.String("name", "", "Customer name, used only when the phone is unknown")
	token := flag.String("token", "", "API access token (default API_TOKEN)")
	saveToken := flag.Bool("save-token", false, "Store -token in api_tokens for later runs (TOKEN_STORE=db)")
	normalizeOnly := flag.Bool("normalize", false, "Only print the normalized phone, don't call the API")
	flag.Parse()

	if *phone == "" {
		fmt.Fprintln(os.Stderr, "Error: -phone is required")
		os.Exit(2)
	}

	normalized, err := customers.NormalizePhone(*phone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *normalizeOnly {
		fmt.Println(normalized)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging.Level, "")
	if *token == "" {
		*token = cfg.API.Token
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var fallback auth.TokenStore = auth.NewMemoryStore()
	if cfg.TokenStore == "db" {
		db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fallback = auth.NewDBStore(db)
	}
	tokens := auth.NewRequestStore(fallback)
	switch {
	case *token != "" && (*saveToken || cfg.TokenStore != "db"):
		if err := tokens.Set(ctx, auth.Tokens{Access: *token}); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving token: %v\n", err)
			os.Exit(1)
		}
	case *token != "":
		ctx = auth.WithTokens(ctx, auth.Tokens{Access: *token})
	}

	client, err := remote.New(cfg.API.BaseURL, tokens, remote.WithTimeout(cfg.API.Timeout), remote.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	c, outcome, err := customers.NewResolver(client, logger).Resolve(ctx, *phone, *name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(map[string]any{"customer": c, "outcome": outcome}, "", "  ")
	fmt.Println(string(out))
}
