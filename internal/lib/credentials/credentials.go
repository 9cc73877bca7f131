package credentials

import (
	"errors"
	"fmt"

	"attendance-bot/internal/domain/models"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrMissing = errors.New("missing credentials in environment variables")

// FromEnv reads LOGIN_USERNAME and LOGIN_PASSWORD. Variables that are
// set but empty count as missing.
func FromEnv() (models.Credentials, error) {
	const op = "credentials.FromEnv"

	var creds models.Credentials
	if err := cleanenv.ReadEnv(&creds); err != nil {
		return models.Credentials{}, fmt.Errorf("%s: %w: %v", op, ErrMissing, err)
	}

	if creds.Username == "" || creds.Password == "" {
		return models.Credentials{}, fmt.Errorf("%s: %w", op, ErrMissing)
	}

	return creds, nil
}
