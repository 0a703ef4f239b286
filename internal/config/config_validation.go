// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
	"time"
)

// minRedisLockTTL leaves the lock refresh, which runs every ttl/3, room for
// a slow Redis round trip.
const minRedisLockTTL = time.Second

// validate checks the invariants that hold for every process regardless of
// its role. Role-specific requirements live in validateServer,
// AgentConfig.validate and CLIConfig.validate.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenDuration < 0 || cfg.App.PasswordIterations < 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.RequestTimeout < 0 || cfg.Server.MaxUploadSize < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Agent.RefreshInterval < 0 || cfg.Agent.StageTimeout < 0 {
		return ErrInvalidAgentConfigs
	}

	if cfg.Workers.JanitorInterval < 0 || cfg.Workers.JanitorGrace < 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Storage.Lock.TTL < 0 {
		return fmt.Errorf("%w: negative lock ttl", ErrInvalidStorageConfigs)
	}

	store := cfg.Storage.ObjectStore
	if store.Endpoint != "" && (store.AccessKey == "" || store.SecretKey == "" || store.Bucket == "") {
		return fmt.Errorf("%w: object store endpoint requires access key, secret key and bucket", ErrInvalidStorageConfigs)
	}

	return nil
}

func (cfg *StructuredConfig) validateServer() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration == 0 {
		return fmt.Errorf("%w: token sign key, issuer and duration are required", ErrInvalidAppConfigs)
	}

	if cfg.App.PasswordIterations < 1000 {
		return fmt.Errorf("%w: password iterations must be at least 1000", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, ":memory:") {
		return fmt.Errorf("%w: a persistent database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Storage.ObjectStore.Endpoint == "" && cfg.Storage.Files.QueueDir == "" {
		return fmt.Errorf("%w: queue dir or object store is required", ErrInvalidStorageConfigs)
	}

	if cfg.Storage.Lock.RedisURL != "" && cfg.Storage.Lock.TTL.Std() < minRedisLockTTL {
		return fmt.Errorf("%w: redis lock ttl must be at least %s", ErrInvalidStorageConfigs, minRedisLockTTL)
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.JanitorInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// GetServerConfig builds the merged configuration and checks the settings
// the queue server cannot start without.
func GetServerConfig() (*StructuredConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return cfg, cfg.validateServer()
}
