package config

import (
	"fmt"
	"time"
)

// AgentAdapter holds the settings the agent and the CLI use to reach the
// server.
type AgentAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	PrinterKey     string
}

// AgentSettings holds the polling loop settings.
type AgentSettings struct {
	PrinterID       string
	RefreshInterval time.Duration
	StageTimeout    time.Duration
	WorkDir         string
	PrintCommand    string
	LogFile         string
	MetricsAddress  string
}

// AgentConfig is the printer agent view of [StructuredConfig].
type AgentConfig struct {
	Adapter AgentAdapter
	Agent   AgentSettings
}

// CLIConfig is the command-line client view of [StructuredConfig].
type CLIConfig struct {
	Adapter AgentAdapter
	// Args holds the sub-command and its arguments.
	Args []string
}

// GetAgentConfig builds and validates the printer agent configuration.
func GetAgentConfig() (*AgentConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	agentCfg := newAgentConfig(cfg)
	return agentCfg, agentCfg.validate()
}

// GetCLIConfig builds and validates the CLI configuration.
func GetCLIConfig() (*CLIConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	cliCfg := &CLIConfig{
		Adapter: newAgentAdapter(cfg),
		Args:    cfg.Args,
	}
	return cliCfg, cliCfg.validate()
}

func newAgentAdapter(cfg *StructuredConfig) AgentAdapter {
	return AgentAdapter{
		HTTPAddress:    cfg.Adapter.HTTPAddress,
		RequestTimeout: cfg.Adapter.RequestTimeout.Std(),
		PrinterKey:     cfg.App.PrinterKey,
	}
}

func newAgentConfig(cfg *StructuredConfig) *AgentConfig {
	return &AgentConfig{
		Adapter: newAgentAdapter(cfg),
		Agent: AgentSettings{
			PrinterID:       cfg.Agent.PrinterID,
			RefreshInterval: cfg.Agent.RefreshInterval.Std(),
			StageTimeout:    cfg.Agent.StageTimeout.Std(),
			WorkDir:         cfg.Agent.WorkDir,
			PrintCommand:    cfg.Agent.PrintCommand,
			LogFile:         cfg.Agent.LogFile,
			MetricsAddress:  cfg.Agent.MetricsAddress,
		},
	}
}

func (cfg *AgentConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Agent.PrinterID == "" || cfg.Agent.RefreshInterval == 0 || cfg.Agent.StageTimeout == 0 {
		return ErrInvalidAgentConfigs
	}

	if cfg.Agent.WorkDir == "" || cfg.Agent.PrintCommand == "" {
		return ErrInvalidAgentConfigs
	}

	return nil
}

func (cfg *CLIConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
