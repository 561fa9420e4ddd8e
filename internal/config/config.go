// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	FortuneService  = "fortune"
	CustomerService = "customers"
	SeederTool      = "seeder"
	DrawWorker      = "worker"
)

const (
	defaultRegion     = "ap-northeast-2"
	defaultDBPort     = "5432"
	defaultDBName     = "fortune_telling"
	defaultSecretName = "fortune-telling-app-credentials"
	defaultSSLMode    = "require"
	defaultPort       = "8080"
	defaultLogLevel   = "info"
	defaultEnv        = "development"
)

var envFileNames = []string{".env.local", ".env"}

// ErrMissing marks a required variable that is unset.
var ErrMissing = errors.New("required variable is not set")

// Database holds everything needed to reach Postgres except the credentials,
// which come from the secrets store.
type Database struct {
	Host       string
	Port       string
	Name       string
	SecretName string
	SSLMode    string
	// URL bypasses the secrets store entirely when set (seeder and worker only).
	URL string
}

// Runtime is built once in main and handed to constructors. Nothing mutates it afterwards.
type Runtime struct {
	Service   string
	Env       string
	AWSRegion string
	Addr      string
	AMQPURL   string
	LogLevel  string
	Database  Database
}

// BuildError reports which stage of configuration failed and for which key.
type BuildError struct {
	Stage string
	Key   string
	Err   error
}

func (e BuildError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config %s %s: %v", e.Stage, e.Key, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Stage, e.Err)
}

func (e BuildError) Unwrap() error {
	return e.Err
}

// Load reads .env files (best effort) and then the process environment.
func Load(service string) (Runtime, error) {
	loadEnvFiles()
	return FromEnv(service, os.Getenv)
}

// FromEnv builds a Runtime from the given lookup function.
func FromEnv(service string, getenv func(string) string) (Runtime, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	rt := Runtime{
		Service:   service,
		Env:       get("APP_ENV", defaultEnv),
		AWSRegion: get("AWS_REGION", defaultRegion),
		AMQPURL:   get("AMQP_URL", ""),
		LogLevel:  strings.ToLower(get("LOG_LEVEL", defaultLogLevel)),
		Database: Database{
			Host:       get("DB_HOST", ""),
			Port:       get("DB_PORT", defaultDBPort),
			Name:       get("DB_NAME", defaultDBName),
			SecretName: get("DB_SECRET_NAME", defaultSecretName),
			SSLMode:    get("DB_SSLMODE", defaultSSLMode),
		},
	}

	switch service {
	case FortuneService:
		rt.Addr = ":" + get("PORT", defaultPort)
	case CustomerService:
		rt.Addr = ":" + defaultPort
	case SeederTool, DrawWorker:
		rt.Database.URL = get("DATABASE_URL", "")
	}

	if rt.Database.URL == "" && rt.Database.Host == "" {
		return Runtime{}, BuildError{Stage: "validate", Key: "DB_HOST", Err: ErrMissing}
	}
	if service == DrawWorker && rt.AMQPURL == "" {
		return Runtime{}, BuildError{Stage: "validate", Key: "AMQP_URL", Err: ErrMissing}
	}
	return rt, nil
}

// UsesSecretsStore reports whether credentials must be fetched before connecting.
func (rt Runtime) UsesSecretsStore() bool {
	return rt.Database.URL == ""
}

func loadEnvFiles() {
	var files []string
	for _, name := range envFileNames {
		if _, err := os.Stat(name); err == nil {
			files = append(files, name)
		}
	}
	if len(files) == 0 {
		return
	}
	_ = godotenv.Load(files...)
}
