// Package main generates festdraft access tokens for manual API testing.
// Tokens are signed with the dev key and will NOT work in production.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	jwttoken "festdraft/internal/jwt_token"
	id "festdraft/pkg/domain"
)

const (
	// matches config.FromEnv when JWT_SIGNING_KEY is not set
	devSigningKey   = "dev-secret-key-change-in-production"
	defaultTokenTTL = 15 * time.Minute
)

type tokenOutput struct {
	Token     string            `json:"token"`
	ExpiresIn string            `json:"expires_in,omitempty"`
	Claims    map[string]any    `json:"claims,omitempty"`
	Usage     map[string]string `json:"usage,omitempty"`
}

func main() {
	accessCmd := flag.NewFlagSet("access", flag.ExitOnError)
	accessRole := accessCmd.String("role", "admin", "Role: admin or team-manager")
	accessUserID := accessCmd.String("user-id", "", "User ID (UUID). Generated if empty.")
	accessSessionID := accessCmd.String("session-id", "", "Session ID (UUID) of a live server session. Generated if empty.")
	accessTeam := accessCmd.String("team", "", "Team name carried in the token")
	accessTTL := accessCmd.Duration("ttl", defaultTokenTTL, "Token time-to-live")
	accessKey := accessCmd.String("key", envOr("JWT_SIGNING_KEY", devSigningKey), "Signing key")
	accessJSON := accessCmd.Bool("json", false, "Output as JSON")

	inspectCmd := flag.NewFlagSet("inspect", flag.ExitOnError)
	inspectKey := inspectCmd.String("key", envOr("JWT_SIGNING_KEY", devSigningKey), "Signing key")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "access":
		_ = accessCmd.Parse(os.Args[2:]) //nolint:errcheck // ExitOnError
		generateAccessToken(*accessKey, *accessRole, *accessUserID, *accessSessionID, *accessTeam, *accessTTL, *accessJSON)
	case "inspect":
		_ = inspectCmd.Parse(os.Args[2:]) //nolint:errcheck // ExitOnError
		if inspectCmd.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "usage: tokengen inspect [-key K] <token>")
			os.Exit(1)
		}
		inspectToken(*inspectKey, inspectCmd.Arg(0))
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokengen - Generate test tokens for the festdraft API

WARNING: Tokens use the dev signing key unless -key or JWT_SIGNING_KEY is set.
         The server also checks that the session behind a token is live, so
         pass -session-id from a real login to get past the auth middleware.

Usage:
  tokengen <command> [flags]

Commands:
  access    Generate an access token (JWT)
  inspect   Validate a token and print its claims

Examples:
  tokengen access -role team-manager -team Axis
  tokengen access -session-id "550e8400-e29b-41d4-a716-446655440000" -json
  tokengen inspect eyJhbGciOi...`)
}

func generateAccessToken(key, roleName, userID, sessionID, team string, ttl time.Duration, jsonOutput bool) {
	role, err := id.ParseRole(roleName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid role: %s\n", roleName)
		os.Exit(1)
	}
	sub := jwttoken.Subject{
		UserID:    id.UserID(parseOrGenerateUUID(userID, "user-id")),
		SessionID: id.SessionID(parseOrGenerateUUID(sessionID, "session-id")),
		Role:      role,
		TeamName:  team,
	}

	svc := jwttoken.NewJWTService(key, jwttoken.DefaultIssuer, jwttoken.DefaultAudience, ttl)
	svc.SetEnv("dev")
	token, err := svc.GenerateAccessToken(context.Background(), sub)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(tokenOutput{
			Token:     token,
			ExpiresIn: ttl.String(),
			Claims: map[string]any{
				"user_id":    sub.UserID.String(),
				"session_id": sub.SessionID.String(),
				"role":       sub.Role.String(),
				"team":       sub.TeamName,
			},
			Usage: map[string]string{"header": "Authorization: Bearer <token>"},
		})
		return
	}

	fmt.Println("Access Token (JWT)")
	fmt.Println("==================")
	fmt.Printf("Expires In:  %s\n", ttl)
	fmt.Printf("Role:        %s\n", sub.Role)
	fmt.Printf("User ID:     %s\n", sub.UserID)
	fmt.Printf("Session ID:  %s\n", sub.SessionID)
	if team != "" {
		fmt.Printf("Team:        %s\n", team)
	}
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"Authorization: Bearer <token>\" http://localhost:8080/api/teams")
}

func inspectToken(key, token string) {
	svc := jwttoken.NewJWTService(key, jwttoken.DefaultIssuer, jwttoken.DefaultAudience, defaultTokenTTL)
	claims, err := svc.ValidateToken(token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid token: %v\n", err)
		os.Exit(1)
	}
	printJSON(claims)
}

func parseOrGenerateUUID(input, fieldName string) uuid.UUID {
	if input == "" {
		return uuid.New()
	}
	parsed, err := uuid.Parse(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid %s UUID: %s\n", fieldName, input)
		os.Exit(1)
	}
	return parsed
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
