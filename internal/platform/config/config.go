package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config agrupa lo que la app host tiene que pasarle a la lib.
type Config struct {
	APIBaseURL  string        `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`

	// StoragePath: archivo sqlite para el store local. Vacío = in-memory.
	StoragePath string `env:"STORAGE_PATH"`

	AppName string `env:"APP_NAME" envDefault:"pet-community-client"`
}

// FromEnv carga configuración desde variables de entorno.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
