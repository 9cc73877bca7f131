package models

// Credentials is the portal login pair. It is read from the environment
// for every punch and never persisted.
type Credentials struct {
	Username string `env:"LOGIN_USERNAME" env-required:"true"`
	Password string `env:"LOGIN_PASSWORD" env-required:"true"`
}
