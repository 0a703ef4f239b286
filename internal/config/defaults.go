package config

import "time"

// Built-in defaults, applied last so every other source wins.
const (
	DefaultPasswordIterations = 29000
	DefaultTokenIssuer        = "printzz"
	DefaultTokenDuration      = 24 * time.Hour
	DefaultHTTPAddress        = "localhost:8080"
	DefaultRequestTimeout     = 30 * time.Second
	DefaultMaxUploadSize      = 32 << 20
	DefaultDSN                = "printzz.db"
	DefaultQueueDir           = "queue"
	DefaultBucket             = "printzz"
	DefaultLockTTL            = 30 * time.Second
	DefaultRefreshInterval    = 2 * time.Second
	DefaultStageTimeout       = 30 * time.Second
	DefaultWorkDir            = "."
	DefaultPrintCommand       = "lp"
	DefaultJanitorInterval    = 10 * time.Minute
	DefaultJanitorGrace       = time.Hour
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			PasswordIterations: DefaultPasswordIterations,
			TokenIssuer:        DefaultTokenIssuer,
			TokenDuration:      Duration(DefaultTokenDuration),
			Version:            "dev",
		},
		Storage: Storage{
			DB:          DB{DSN: DefaultDSN},
			Files:       Files{QueueDir: DefaultQueueDir},
			ObjectStore: ObjectStore{Bucket: DefaultBucket},
			Lock:        Lock{TTL: Duration(DefaultLockTTL)},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: Duration(DefaultRequestTimeout),
			MaxUploadSize:  DefaultMaxUploadSize,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: Duration(DefaultRequestTimeout),
		},
		Agent: Agent{
			RefreshInterval: Duration(DefaultRefreshInterval),
			StageTimeout:    Duration(DefaultStageTimeout),
			WorkDir:         DefaultWorkDir,
			PrintCommand:    DefaultPrintCommand,
		},
		Workers: Workers{
			JanitorInterval: Duration(DefaultJanitorInterval),
			JanitorGrace:    Duration(DefaultJanitorGrace),
		},
	}
}
