// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// server, the printer agent and the CLI. It is populated by merging values
// from a .env file, environment variables, command-line flags and an
// optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix : prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       : direct environment variable name for scalar fields.
//   - json/yaml : key names in the config file.
type StructuredConfig struct {
	// App holds security and versioning settings.
	App App `envPrefix:"APP_" json:"app" yaml:"app"`

	// Storage holds the database, blob store and lock settings.
	Storage Storage `envPrefix:"STORAGE_" json:"storage" yaml:"storage"`

	// Server holds listener addresses and request limits.
	Server Server `envPrefix:"SERVER_" json:"server" yaml:"server"`

	// Adapter holds the outbound connection settings used by the agent and
	// the CLI to reach the server.
	Adapter Adapter `envPrefix:"ADAPTER_" json:"adapter" yaml:"adapter"`

	// Agent holds printer agent settings.
	Agent Agent `envPrefix:"AGENT_" json:"agent" yaml:"agent"`

	// Workers holds background job intervals.
	Workers Workers `envPrefix:"WORKERS_" json:"workers" yaml:"workers"`

	// FilePath is the optional path to a JSON or YAML configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	FilePath string `env:"CONFIG" json:"-" yaml:"-"`

	// Args are the positional command-line arguments left after flag
	// parsing. The CLI reads its sub-command from here.
	Args []string `json:"-" yaml:"-"`
}

// App holds application-level configuration values that control security,
// token lifecycle and versioning.
type App struct {
	// PasswordIterations is the PBKDF2 round count for new password hashes.
	// Env: APP_PASSWORD_ITERATIONS
	PasswordIterations int `env:"PASSWORD_ITERATIONS" json:"password_iterations" yaml:"password_iterations"`

	// TokenSignKey is the secret used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY" json:"token_sign_key" yaml:"token_sign_key"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER" json:"token_issuer" yaml:"token_issuer"`

	// TokenDuration specifies how long a JWT remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration Duration `env:"TOKEN_DURATION" json:"token_duration" yaml:"token_duration"`

	// PrinterKey, when set, makes printer endpoints require an HMAC-SHA256
	// signature of the printer id in the X-Printer-Signature header.
	// Env: APP_PRINTER_KEY
	PrinterKey string `env:"PRINTER_KEY" json:"printer_key" yaml:"printer_key"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION" json:"version" yaml:"version"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	DB          DB          `envPrefix:"DB_" json:"db" yaml:"db"`
	Files       Files       `envPrefix:"FILES_" json:"files" yaml:"files"`
	ObjectStore ObjectStore `envPrefix:"OBJECT_STORE_" json:"object_store" yaml:"object_store"`
	Lock        Lock        `envPrefix:"LOCK_" json:"lock" yaml:"lock"`
}

// DB holds connection settings for the relational database.
type DB struct {
	// DSN selects the driver: postgres:// or postgresql:// URLs use pgx,
	// anything else is treated as a SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI" json:"dsn" yaml:"dsn"`
}

// Files holds local file-system settings for document blobs.
type Files struct {
	// QueueDir is the directory where {doc_id}.{ext} blobs are written.
	// Env: STORAGE_FILES_QUEUE_DIR
	QueueDir string `env:"QUEUE_DIR" json:"queue_dir" yaml:"queue_dir"`
}

// ObjectStore configures the S3-compatible blob backend. When Endpoint is
// empty, blobs go to Files.QueueDir instead.
type ObjectStore struct {
	Endpoint  string `env:"ENDPOINT" json:"endpoint" yaml:"endpoint"`
	AccessKey string `env:"ACCESS_KEY" json:"access_key" yaml:"access_key"`
	SecretKey string `env:"SECRET_KEY" json:"secret_key" yaml:"secret_key"`
	Bucket    string `env:"BUCKET" json:"bucket" yaml:"bucket"`
	UseSSL    bool   `env:"USE_SSL" json:"use_ssl" yaml:"use_ssl"`
}

// Lock configures the per-printer lock. An empty RedisURL selects the
// in-process locker.
type Lock struct {
	// Env: STORAGE_LOCK_REDIS_URL
	RedisURL string `env:"REDIS_URL" json:"redis_url" yaml:"redis_url"`

	// TTL bounds how long a Redis lock survives a crashed holder.
	// Env: STORAGE_LOCK_TTL
	TTL Duration `env:"TTL" json:"ttl" yaml:"ttl"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" json:"http_address" yaml:"http_address"`

	// GRPCAddress enables the gRPC health endpoint when set.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS" json:"grpc_address" yaml:"grpc_address"`

	// RequestTimeout bounds a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout Duration `env:"REQUEST_TIMEOUT" json:"request_timeout" yaml:"request_timeout"`

	// MaxUploadSize is the largest accepted document in bytes.
	// Env: SERVER_MAX_UPLOAD_SIZE
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" json:"max_upload_size" yaml:"max_upload_size"`
}

// Adapter holds the outbound settings used to reach the server.
type Adapter struct {
	// HTTPAddress is the server base URL or host:port.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS" json:"http_address" yaml:"http_address"`

	// RequestTimeout is the default timeout for outbound requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout Duration `env:"REQUEST_TIMEOUT" json:"request_timeout" yaml:"request_timeout"`
}

// Agent holds printer agent settings.
type Agent struct {
	// PrinterID is the queue this agent drains.
	// Env: AGENT_PRINTER_ID
	PrinterID string `env:"PRINTER_ID" json:"printer_id" yaml:"printer_id"`

	// RefreshInterval is the fixed delay between polls.
	// Env: AGENT_REFRESH_INTERVAL
	RefreshInterval Duration `env:"REFRESH_INTERVAL" json:"refresh_interval" yaml:"refresh_interval"`

	// StageTimeout bounds each of download, print and pop.
	// Env: AGENT_STAGE_TIMEOUT
	StageTimeout Duration `env:"STAGE_TIMEOUT" json:"stage_timeout" yaml:"stage_timeout"`

	// WorkDir is where print.{ext} files are written.
	// Env: AGENT_WORK_DIR
	WorkDir string `env:"WORK_DIR" json:"work_dir" yaml:"work_dir"`

	// PrintCommand is the spooler binary, lp by default.
	// Env: AGENT_PRINT_COMMAND
	PrintCommand string `env:"PRINT_COMMAND" json:"print_command" yaml:"print_command"`

	// LogFile, when set, redirects agent logs to this file.
	// Env: AGENT_LOG_FILE
	LogFile string `env:"LOG_FILE" json:"log_file" yaml:"log_file"`

	// MetricsAddress, when set, serves the agent's /metrics on host:port.
	// Env: AGENT_METRICS_ADDRESS
	MetricsAddress string `env:"METRICS_ADDRESS" json:"metrics_address" yaml:"metrics_address"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// JanitorInterval is how often orphan blobs are swept.
	// Env: WORKERS_JANITOR_INTERVAL
	JanitorInterval Duration `env:"JANITOR_INTERVAL" json:"janitor_interval" yaml:"janitor_interval"`

	// JanitorGrace is the minimum age of a blob before it may be swept.
	// Env: WORKERS_JANITOR_GRACE
	JanitorGrace Duration `env:"JANITOR_GRACE" json:"janitor_grace" yaml:"janitor_grace"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources. Earlier sources win for fields they set:
//  1. Environment variables (after loading .env, if present)
//  2. Command-line flags
//  3. Config file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder(commandLineArgs()).
		withDotEnv().
		withEnv().
		withFlags().
		withFile().
		withDefaults().
		build()
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
