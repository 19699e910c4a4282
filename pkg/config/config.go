package config

import (
	"time"
)

// Storage backends understood by DB.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type DB struct {
	Driver          string        `envconfig:"DRIVER" default:"memory"`
	Url             string        `envconfig:"URL"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
	MigrationsPath  string        `envconfig:"MIGRATIONS_PATH" default:"internal/migrations"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[bank]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

// Bank tunes the money-movement services.
type Bank struct {
	// OpTimeout bounds every unit of work; expiry rolls back and surfaces a
	// persistence error.
	OpTimeout    time.Duration `envconfig:"OP_TIMEOUT" default:"5s"`
	SummaryLimit int           `envconfig:"SUMMARY_LIMIT" default:"10"`
	ListLimit    int           `envconfig:"LIST_LIMIT" default:"20"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Bank      *Bank      `envconfig:"BANK"`
}

// Defaults returns the configuration used when nothing is set in the environment.
func Defaults() *App {
	return &App{
		Env:       "development",
		Server:    &Server{Scheme: "http", Host: "localhost", Port: 3000},
		Log:       &Log{Format: "text", TimeFormat: "2006-01-02 15:04:05", Prefix: "[bank]"},
		DB:        &DB{Driver: DriverMemory, MaxOpenConns: 25, MaxIdleConns: 25, ConnMaxLifetime: time.Hour, MigrationsPath: "internal/migrations"},
		RateLimit: &RateLimit{MaxRequests: 100, Window: time.Minute},
		Bank:      &Bank{OpTimeout: 5 * time.Second, SummaryLimit: 10, ListLimit: 20},
	}
}
