package config

import (
	"log"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	DBDSN    string `env:"DB_DSN" envDefault:"casaferro.db"`
	MediaDir string `env:"MEDIA_DIR" envDefault:"./web/media"`
	LogFile  string `env:"LOG_FILE" envDefault:"./casaferro.log"`

	// Transactional email. With an empty key the mail sink degrades to
	// log-only, which is fine for local runs and tests.
	ResendAPIKey  string `env:"RESEND_API_KEY"`
	MailFrom      string `env:"MAIL_FROM" envDefault:"CasaFerro <onboarding@resend.dev>"`
	OperatorEmail string `env:"OPERATOR_EMAIL" envDefault:"orders@casaferro.test"`
}

func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("[config] parse env: %v", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile)
	return cfg
}
