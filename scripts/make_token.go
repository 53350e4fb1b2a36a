package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"mockmate/interview-api/internal/auth"
	"mockmate/interview-api/internal/config"
)

// Mints a bearer token for local API testing.
//
// Usage: go run scripts/make_token.go [user-id]
// A random user id is generated when none is given.
func main() {
	cfg := config.Load()
	if cfg.JWT.Secret == "" {
		log.Fatal("❌ JWT_SECRET is not set")
	}

	userID := uuid.New()
	if len(os.Args) > 1 {
		parsed, err := uuid.Parse(os.Args[1])
		if err != nil {
			log.Fatalf("❌ Invalid user id %q: %v", os.Args[1], err)
		}
		userID = parsed
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHours)
	token, err := jwtService.GenerateToken(userID)
	if err != nil {
		log.Fatalf("❌ Failed to generate token: %v", err)
	}

	fmt.Printf("User ID: %s\n", userID)
	fmt.Printf("Token:   %s\n", token)
}
