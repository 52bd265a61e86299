// Package config exposes the jupswap command's YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings.
type App struct {
	Name        string `yaml:"name"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"` // console|json
	MetricsAddr string `yaml:"metrics_addr"`
}

// Jupiter points at the swap API deployment and carries passthrough arguments
// forwarded to it unexamined.
type Jupiter struct {
	BaseURL   string            `yaml:"base_url" validate:"required,url"`
	TimeoutMs int               `yaml:"timeout_ms" validate:"gte=0"`
	QuoteArgs map[string]string `yaml:"quote_args"`
	SwapArgs  map[string]string `yaml:"swap_args"`
}

// Timeout is the HTTP client timeout; zero means none.
func (j Jupiter) Timeout() time.Duration {
	return time.Duration(j.TimeoutMs) * time.Millisecond
}

// Quote holds the default quote the command asks for.
type Quote struct {
	InputMint        string `yaml:"input_mint" validate:"required"`
	OutputMint       string `yaml:"output_mint" validate:"required"`
	Amount           uint64 `yaml:"amount" validate:"gt=0"`
	SlippageBps      uint16 `yaml:"slippage_bps" validate:"lte=10000"`
	OnlyDirectRoutes bool   `yaml:"only_direct_routes"`
}

// Swap holds the transaction settings sent with swap and swap-instructions calls.
type Swap struct {
	WrapAndUnwrapSol        *bool   `yaml:"wrap_and_unwrap_sol"`
	DynamicComputeUnitLimit bool    `yaml:"dynamic_compute_unit_limit"`
	PriorityFeeLamports     *uint64 `yaml:"priority_fee_lamports"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App     App     `yaml:"app"`
	Jupiter Jupiter `yaml:"jupiter"`
	Quote   Quote   `yaml:"quote"`
	Swap    Swap    `yaml:"swap"`
}

var validate = validator.New()

// Validate checks the fields the command cannot run without.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load reads a YAML file from disk and hydrates a Config struct.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
