package main

import (
	"github.com/caarlos0/env/v11"
)

// Config is the agent's own configuration, read from the environment. The
// game databases are normally auto-discovered; setting DB_HOST switches to
// manual mode and disables discovery entirely.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	JWTSecret string `env:"JWT_SECRET"`

	DBHost     string `env:"DB_HOST"`
	DBPort     int    `env:"DB_PORT" envDefault:"3306"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`

	AccountDBName string `env:"DB_ACCOUNT_NAME" envDefault:"account"`
	PlayerDBName  string `env:"DB_PLAYER_NAME" envDefault:"player"`
	CommonDBName  string `env:"DB_COMMON_NAME" envDefault:"common"`
	LogDBName     string `env:"DB_LOG_NAME" envDefault:"log"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// manualCredentials builds a credential set from the environment, or nil when
// DB_HOST is unset and discovery should run.
func (c Config) manualCredentials() CredentialSet {
	if c.DBHost == "" {
		return nil
	}

	names := map[string]string{
		"account": c.AccountDBName,
		"player":  c.PlayerDBName,
		"common":  c.CommonDBName,
		"log":     c.LogDBName,
	}

	creds := CredentialSet{}
	for _, logical := range logicalDatabases {
		creds[logical] = &Credential{
			Host:     c.DBHost,
			Port:     c.DBPort,
			User:     c.DBUser,
			Password: c.DBPassword,
			Database: names[logical],
		}
	}
	return creds
}
