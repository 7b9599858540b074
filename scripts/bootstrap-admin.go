// Command bootstrap-admin seeds (or promotes) an admin user directly in
// the document store. Use it once per environment to create the first
// admin, since promotion over HTTP requires an existing admin.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bistroboss/bistroboss/internal/model"
	"github.com/bistroboss/bistroboss/internal/repository"
)

type output struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func main() {
	var (
		mongoURI = flag.String("mongo-uri", os.Getenv("MONGO_URI"), "MongoDB connection string")
		database = flag.String("database", envOr("MONGO_DATABASE", "bistroBossDB"), "Database name")
		email    = flag.String("email", "", "Email of the user to promote")
		name     = flag.String("name", "bootstrap admin", "Display name used if the user does not exist yet")
		format   = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *mongoURI == "" {
		fmt.Fprintln(os.Stderr, "MONGO_URI is required")
		os.Exit(1)
	}
	if *email == "" {
		fmt.Fprintln(os.Stderr, "-email is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *mongoURI, *database)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect store:", err)
		os.Exit(1)
	}
	defer repo.Close(ctx)

	user := &model.User{Email: *email, Name: *name, Role: model.RoleDefault}
	if err := repo.UpsertUser(ctx, user); err != nil {
		fmt.Fprintln(os.Stderr, "upsert user:", err)
		os.Exit(1)
	}

	// Upsert never overwrites an existing record, so re-read for the ID.
	existing, err := repo.GetUserByEmail(ctx, *email)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load user:", err)
		os.Exit(1)
	}

	if err := repo.SetUserRole(ctx, existing.ID.Hex(), model.RoleAdmin); err != nil {
		fmt.Fprintln(os.Stderr, "set role:", err)
		os.Exit(1)
	}

	out := output{
		UserID: existing.ID.Hex(),
		Email:  existing.Email,
		Role:   string(model.RoleAdmin),
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Printf("%s is now %s\n", out.Email, out.Role)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
