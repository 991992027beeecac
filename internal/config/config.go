package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ZygmuntJakub/bridge/internal/engine"
	"github.com/ZygmuntJakub/bridge/internal/player"
)

type SeatConfig struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"` // local or remote
	Bot  string `yaml:"bot"`  // random or points, for local seats
}

type Config struct {
	HTTPPort        string       `yaml:"http_port"`
	DatabasePath    string       `yaml:"database_path"` // empty disables the archive
	Seed            int64        `yaml:"seed"`          // 0 seeds from the clock
	Dealer          string       `yaml:"dealer"`
	RotateDealer    bool         `yaml:"rotate_dealer"`
	LogLevel        string       `yaml:"log_level"`
	SimulationHands int          `yaml:"simulation_hands"`
	Seats           []SeatConfig `yaml:"seats"`
}

func Default() *Config {
	return &Config{
		HTTPPort:        "1337",
		DatabasePath:    "bridge.db",
		Dealer:          "South",
		RotateDealer:    true,
		LogLevel:        "info",
		SimulationHands: 100,
	}
}

// Load reads path (optional), then .env from the working directory, then
// environment overrides.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, ".env")
}

// LoadWithEnv is Load with an explicit dotenv file. Missing files are skipped.
func LoadWithEnv(path, envFile string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
			}
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("HTTP_PORT"); v != "" {
		c.HTTPPort = v
	}
	if v, ok := os.LookupEnv("BRIDGE_DB"); ok {
		c.DatabasePath = v
	}
	if v := os.Getenv("BRIDGE_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("BRIDGE_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate rejects unknown seats, roles, bots and log levels.
func (c *Config) Validate() error {
	if len(c.Seats) > engine.NumSeats {
		return fmt.Errorf("%d seats configured, a table has %d", len(c.Seats), engine.NumSeats)
	}
	if _, err := engine.ParseSeat(c.Dealer); err != nil {
		return fmt.Errorf("dealer: %w", err)
	}
	for i, s := range c.Seats {
		if _, err := engine.ParseRole(s.Role); err != nil {
			return fmt.Errorf("seat %d: %w", i, err)
		}
		if _, err := player.FactoryFor(s.Bot); err != nil {
			return fmt.Errorf("seat %d: %w", i, err)
		}
	}
	if _, err := c.ZapLevel(); err != nil {
		return err
	}
	if c.SimulationHands < 0 {
		return fmt.Errorf("simulation_hands must not be negative")
	}
	return nil
}

// ZapLevel maps log_level to a zap level.
func (c *Config) ZapLevel() (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

// NewLogger builds the process logger: zap's production encoder at
// log_level, writing to stderr.
func (c *Config) NewLogger() (*zap.Logger, error) {
	lvl, err := c.ZapLevel()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Sampling = nil
	return zc.Build()
}

// GameParams builds engine parameters from the seat configuration.
func (c *Config) GameParams() engine.GameParams {
	var p engine.GameParams
	p.Dealer, _ = engine.ParseSeat(c.Dealer)
	p.RotateDealer = c.RotateDealer
	for i, s := range c.Seats {
		p.Names[i] = s.Name
		p.Roles[i], _ = engine.ParseRole(s.Role)
	}
	return p
}

// Bots returns the bot kind of every seat; seats left unconfigured use the
// default kind.
func (c *Config) Bots() [engine.NumSeats]string {
	var kinds [engine.NumSeats]string
	for i, s := range c.Seats {
		kinds[i] = s.Bot
	}
	return kinds
}
