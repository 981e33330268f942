package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig          `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig         `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig           `yaml:"paths" envconfig:"PATHS"`
	County  CountyConfig          `yaml:"county" envconfig:"COUNTY"`
	Years   map[int]YearConfig    `yaml:"years"`
	Plans   map[string]PlanConfig `yaml:"plans"`
}

// ServerConfig contains HTTP report server configuration.
type ServerConfig struct {
	Enabled         bool            `yaml:"enabled" envconfig:"ENABLED"`
	Port            int             `yaml:"port" envconfig:"PORT" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// CountyConfig identifies the county whose commissioner districts are
// analyzed. Defaults describe El Paso County (SOS county number 21).
type CountyConfig struct {
	Name                  string `yaml:"name" envconfig:"NAME" validate:"required"`
	Number                int    `yaml:"number" envconfig:"NUMBER" validate:"gt=0,lte=64"`
	CommissionerDistricts int    `yaml:"commissioner_districts" envconfig:"COMMISSIONER_DISTRICTS" validate:"gt=0"`
}

// YearConfig declares the input files for one general election year.
type YearConfig struct {
	// StatewideResults is the SOS precinct-level results file (.csv or .xlsx).
	StatewideResults string `yaml:"statewide_results" validate:"required"`
	// CommissionerPrecincts is a PRECINCT,COM_DIST table mapping county
	// precincts to the commissioner districts in effect for that year.
	CommissionerPrecincts string `yaml:"commissioner_precincts" validate:"required"`
	// CountywideResults maps race keys (assessor, car, sheriff,
	// county_treasurer) to SOVC result files. Optional.
	CountywideResults map[string]string `yaml:"countywide_results"`
}

// PlanConfig declares the input files for one redistricting plan.
type PlanConfig struct {
	Year int `yaml:"year" validate:"required"`
	// DistrictAssignments maps census blocks to proposed commissioner
	// districts (BLOCK,DISTRICT or GEOID20,District).
	DistrictAssignments string `yaml:"district_assignments" validate:"required"`
	// PrecinctBAF is the precinct block assignment file (BLOCK,PRECINCT),
	// fixed across plans.
	PrecinctBAF string `yaml:"precinct_baf" validate:"required"`
	// CountywideResults maps race keys (assessor, car, sheriff,
	// county_treasurer) to SOVC result files. Optional.
	CountywideResults map[string]string `yaml:"countywide_results"`
}

// Load loads configuration from environment variables and an optional
// YAML config file. Environment variables take precedence.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = *fileConfig
	}

	if err := envconfig.Process("EPC", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills zero values left when a field was absent from both
// the config file and the environment.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.Server.RateLimit.RPS == 0 {
		c.Server.RateLimit.RPS = 50
	}
	if c.Server.RateLimit.Burst == 0 {
		c.Server.RateLimit.Burst = 25
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/epc.log"
	}
	if c.County.Name == "" {
		c.County.Name = "El Paso"
	}
	if c.County.Number == 0 {
		c.County.Number = 21
	}
	if c.County.CommissionerDistricts == 0 {
		c.County.CommissionerDistricts = 5
	}
	c.Paths.applyDefaults()
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	for year, yc := range c.Years {
		if err := validate.Struct(yc); err != nil {
			return fmt.Errorf("year %d: %w", year, err)
		}
	}
	for name, pc := range c.Plans {
		if err := validate.Struct(pc); err != nil {
			return fmt.Errorf("plan %q: %w", name, err)
		}
	}
	return nil
}

// Year returns the input registry for one election year.
func (c *Config) Year(year int) (YearConfig, error) {
	yc, ok := c.Years[year]
	if !ok {
		return YearConfig{}, fmt.Errorf("year %d is not configured", year)
	}
	return yc, nil
}

// Plan returns the definition of one redistricting plan.
func (c *Config) Plan(name string) (PlanConfig, error) {
	pc, ok := c.Plans[name]
	if !ok {
		return PlanConfig{}, fmt.Errorf("plan %q is not configured", name)
	}
	return pc, nil
}
