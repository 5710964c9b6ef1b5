package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Uploads  *Uploads
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Uploads struct {
	Dir          string `env:"UPLOAD_DIR"`
	MaxSizeBytes int64  `env:"UPLOAD_MAX_SIZE"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var uploads Uploads
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&uploads.Dir, "u", `uploads/receipts`, "Receipt photo directory")
	flag.Int64Var(&uploads.MaxSizeBytes, "s", 5<<20, "Receipt photo size cap in bytes")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&uploads)
	if err != nil {
		return nil, fmt.Errorf("error parsing uploads config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Uploads:  &uploads,
		App:      &app,
	}

	return &config, nil
}
