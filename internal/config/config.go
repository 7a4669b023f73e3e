// Package config carga la configuración del servicio desde un YAML
// opcional y variables de entorno; el entorno siempre pisa al archivo.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:""`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`

	// Directorio de los archivos de colecciones (propietarios.json,
	// mascotas.json, atenciones.json). Ignorado si hay DSN.
	DataDir string `yaml:"data_dir" env:"DATA_DIR" env-default:"data"`

	// Si está presente se usa Postgres en lugar de archivos JSON.
	DatabaseDSN string `yaml:"-" env:"DB_DSN"`

	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"text"`
	AppName   string `yaml:"app_name" env:"APP_NAME" env-default:"vet-management"`
}

// Load lee el archivo indicado si existe y completa desde el entorno.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: read %s: %w", path, err)
			}
			return cfg, nil
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}
	return cfg, nil
}

// Addr arma la dirección de escucha del servidor HTTP.
func (c Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}
