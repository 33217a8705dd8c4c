// Package config loads the advisor's application configuration from HCL.
// A missing file yields the defaults; a file that exists but fails to parse
// or validate is fatal.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete application configuration.
type Config struct {
	Game     GameSettings     `hcl:"game,block"`
	Strategy StrategySettings `hcl:"strategy,block"`
	Server   ServerSettings   `hcl:"server,block"`
	Logging  LoggingSettings  `hcl:"logging,block"`
}

// GameSettings describe the table being played.
type GameSettings struct {
	BigBlind        float64 `hcl:"big_blind"`
	SmallBlind      float64 `hcl:"small_blind"`
	TournamentLevel int     `hcl:"tournament_level,optional"`
}

// StrategySettings tune the decision policies.
type StrategySettings struct {
	PreflopAggression        float64 `hcl:"preflop_aggression,optional"`
	PostflopAggression       float64 `hcl:"postflop_aggression,optional"`
	BluffFrequency           float64 `hcl:"bluff_frequency,optional"`
	SemiBluffFrequency       float64 `hcl:"semi_bluff_frequency,optional"`
	ContinuationBetFrequency float64 `hcl:"continuation_bet_frequency,optional"`
	EquitySimulations        int     `hcl:"equity_simulations,optional"`
	EquitySeed               int64   `hcl:"equity_seed,optional"`
}

// ServerSettings configure the advisory WebSocket endpoint.
type ServerSettings struct {
	Address      string `hcl:"address,optional"`
	Port         int    `hcl:"port,optional"`
	ProfilesFile string `hcl:"profiles_file,optional"`
}

// LoggingSettings control log output.
type LoggingSettings struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// Default returns the configuration used when no file is present: micro
// stakes cash game, balanced strategy.
func Default() *Config {
	return &Config{
		Game: GameSettings{
			BigBlind:   0.02,
			SmallBlind: 0.01,
		},
		Strategy: StrategySettings{
			PreflopAggression:        1.0,
			PostflopAggression:       1.0,
			BluffFrequency:           0.1,
			SemiBluffFrequency:       0.2,
			ContinuationBetFrequency: 0.6,
			EquitySimulations:        1000,
		},
		Server: ServerSettings{
			Address:      "localhost",
			Port:         8090,
			ProfilesFile: "opponent-profiles.json",
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration from filename. A missing file returns the
// defaults; any other failure is an error.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", filename, diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Strategy.PreflopAggression == 0 {
		c.Strategy.PreflopAggression = def.Strategy.PreflopAggression
	}
	if c.Strategy.PostflopAggression == 0 {
		c.Strategy.PostflopAggression = def.Strategy.PostflopAggression
	}
	if c.Strategy.BluffFrequency == 0 {
		c.Strategy.BluffFrequency = def.Strategy.BluffFrequency
	}
	if c.Strategy.SemiBluffFrequency == 0 {
		c.Strategy.SemiBluffFrequency = def.Strategy.SemiBluffFrequency
	}
	if c.Strategy.ContinuationBetFrequency == 0 {
		c.Strategy.ContinuationBetFrequency = def.Strategy.ContinuationBetFrequency
	}
	if c.Strategy.EquitySimulations == 0 {
		c.Strategy.EquitySimulations = def.Strategy.EquitySimulations
	}
	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.ProfilesFile == "" {
		c.Server.ProfilesFile = def.Server.ProfilesFile
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = def.Logging.Format
	}
}

// Validate checks the configuration. Blind errors are fatal: every decision
// depends on them.
func (c *Config) Validate() error {
	if c.Game.BigBlind <= 0 {
		return fmt.Errorf("game: big_blind must be positive, got %v", c.Game.BigBlind)
	}
	if c.Game.SmallBlind <= 0 || c.Game.SmallBlind > c.Game.BigBlind {
		return fmt.Errorf("game: small_blind must be in (0, big_blind], got %v", c.Game.SmallBlind)
	}
	if c.Game.TournamentLevel < 0 || c.Game.TournamentLevel > 3 {
		return fmt.Errorf("game: tournament_level must be 0-3, got %d", c.Game.TournamentLevel)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server: invalid port %d", c.Server.Port)
	}
	if c.Strategy.EquitySimulations < 100 {
		return fmt.Errorf("strategy: equity_simulations must be at least 100, got %d",
			c.Strategy.EquitySimulations)
	}
	return nil
}

// ListenAddress is the host:port the advisory server binds to.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
