package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DB holds the shared relational-store settings. All services read the same
// variable names because they share one schema.
type DB struct {
	DBHost     string `envconfig:"DB_HOST" default:"postgres-service"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME" default:"bateau"`
	DBUser     string `envconfig:"DB_USER" default:"root"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"root"`
}

func (d DB) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.DBHost, d.DBPort, d.DBUser, d.DBPassword, d.DBName)
}

// Load fills cfg from the environment, reading .env first when present.
func Load(cfg any) error {
	_ = godotenv.Load(".env")
	return envconfig.Process("", cfg)
}
