//go:build ignore

// prints a JWT for an existing user: go run scripts/gen_test_token.go <email>
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/internal/storage"
	"codeberg.org/skillsage/server/skillsage/users"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/gen_test_token.go <email>")
		os.Exit(1)
	}

	// load environment
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	dbConnString := os.Getenv("DATABASE_URL")
	if dbConnString == "" {
		log.Fatal("DATABASE_URL not set")
	}

	ctx := context.Background()

	db, err := storage.NewPostgres(ctx, dbConnString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	user, err := users.NewRepository(db).FindByEmail(ctx, os.Args[1])
	if err != nil {
		log.Fatalf("Failed to find user: %v", err)
	}

	token, err := auth.GenerateJWT(user.ID, user.Email, string(user.Role))
	if err != nil {
		log.Fatalf("Failed to generate JWT: %v", err)
	}

	fmt.Printf("User %s (%s, ID: %s)\n\n", user.Email, user.Role, user.ID)
	fmt.Printf("Export this token for testing:\nexport TEST_TOKEN=\"%s\"\n", token)
}
