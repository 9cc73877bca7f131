// Command token prints a bearer token for the configured auth secret.
package main

import (
	"fmt"
	"os"

	"attendance-bot/internal/config"
	"attendance-bot/internal/lib/jwt"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()

	if cfg.Auth.Secret == "" {
		fmt.Fprintln(os.Stderr, "auth secret is empty, nothing to sign")
		os.Exit(1)
	}

	subject := os.Getenv("TOKEN_SUBJECT")
	if subject == "" {
		subject = "operator"
	}

	token, err := jwt.NewToken(subject, cfg.Auth.TokenTTL, cfg.Auth.Secret)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to sign token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
