package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/flock"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchema string

const configSchemaURL = "config.schema.json"

// Config is everything a run needs: the flocking model plus how to show it.
type Config struct {
	flock.Config

	// Rendering
	BoidSize float64 `json:"boidSize" toml:"boidSize"`
	GridStep float64 `json:"gridStep" toml:"gridStep"`

	// Window
	ScreenWidth  int `json:"screenWidth" toml:"screenWidth"`
	ScreenHeight int `json:"screenHeight" toml:"screenHeight"`

	// Pacing of the tick loop
	TicksPerSecond int `json:"ticksPerSecond" toml:"ticksPerSecond"`
}

func DefaultConfig() *Config {
	return &Config{
		Config:         flock.DefaultConfig(),
		BoidSize:       0.2,
		GridStep:       2.0,
		ScreenWidth:    1200,
		ScreenHeight:   800,
		TicksPerSecond: 60,
	}
}

// Validate checks the semantic constraints the schema cannot express.
func (c *Config) Validate() error {
	errs := []error{c.Config.Validate()}
	if !(c.BoidSize > 0) {
		errs = append(errs, fmt.Errorf("boidSize must be > 0, got %v", c.BoidSize))
	}
	if !(c.GridStep > 0) {
		errs = append(errs, fmt.Errorf("gridStep must be > 0, got %v", c.GridStep))
	}
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("screen must be positive, got %dx%d", c.ScreenWidth, c.ScreenHeight))
	}
	if c.TicksPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("ticksPerSecond must be > 0, got %d", c.TicksPerSecond))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a JSON or TOML file (by extension), validates it against the
// embedded schema and overlays it onto DefaultConfig. Keys absent from the file keep
// their default.
func LoadConfig(configFile string) (*Config, error) {
	f, err := os.Open(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var format string
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".json":
		format = "json"
	case ".toml":
		format = "toml"
	default:
		return nil, fmt.Errorf("unsupported config format %q, want .json or .toml", filepath.Ext(configFile))
	}
	return ParseConfig(f, format)
}

// ParseConfig is LoadConfig on an already opened document.
func ParseConfig(r io.Reader, format string) (*Config, error) {
	// 1. Normalise to JSON
	var raw []byte
	switch format {
	case "json":
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		raw = b
	case "toml":
		var doc map[string]any
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode config toml: %w", err)
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert config toml: %w", err)
		}
		raw = b
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	// 2. Validate against the schema
	sch, err := compileSchema()
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 3. Overlay onto the defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// WriteConfig encodes cfg as TOML or JSON.
func WriteConfig(w io.Writer, cfg *Config, format string) error {
	switch format {
	case "toml":
		return toml.NewEncoder(w).Encode(cfg)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	default:
		return fmt.Errorf("unsupported config format %q", format)
	}
}

func compileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(configSchemaURL, bytes.NewReader([]byte(configSchema))); err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	sch, err := c.Compile(configSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return sch, nil
}
