package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the sift run configuration.
type Config struct {
	Engine      EngineConfig      `yaml:"engine"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Output      OutputConfig      `yaml:"output"`
	Metadata    MetadataConfig    `yaml:"metadata"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Logging     LoggingConfig     `yaml:"logging"`
	Interactive InteractiveConfig `yaml:"interactive"`

	// Extra holds -D overrides that do not map to a known field. They are
	// kept so engine drivers can consult them by name.
	Extra map[string]string `yaml:"-"`
}

// EngineConfig selects and parameterizes the retrieval engine driver.
type EngineConfig struct {
	Driver string `yaml:"driver"` // memory (default)
	Corpus string `yaml:"corpus"` // path to a JSONL corpus file
}

// RetrievalConfig holds the default model pair and the retrieval window.
type RetrievalConfig struct {
	MatchingModel    string `yaml:"matching_model"`     // default: daat
	WeightingModel   string `yaml:"weighting_model"`    // default: pl2
	RetrievedSetSize int    `yaml:"retrieved_set_size"` // default: 1000
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	MetaKeys     []string `yaml:"meta_keys"`     // default: [docno]
	MaxDisplayed int      `yaml:"max_displayed"` // default: 1000
}

// MetadataConfig selects the external metadata index backend.
type MetadataConfig struct {
	Driver    string   `yaml:"driver"` // engine (default), redis
	Addrs     []string `yaml:"addrs"`
	Password  string   `yaml:"password"`
	KeyPrefix string   `yaml:"key_prefix"`
}

// MetricsConfig holds the optional prometheus listener address.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty = no listener
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// InteractiveConfig holds interactive-session settings.
type InteractiveConfig struct {
	Lowercase bool `yaml:"lowercase"` // normalize queries to lowercase (default: true)
}

// Load reads configuration from a YAML file by environment name (local, dev,
// prod). A missing config file is not an error: the tool runs on defaults.
func Load(env string) (Config, error) {
	cfg := Config{
		Interactive: InteractiveConfig{Lowercase: true},
		Extra:       map[string]string{},
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	default:
		// Substitute env variables of the form ${VAR}
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from SIFT_ENV, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("SIFT_ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Engine.Driver == "" {
		c.Engine.Driver = "memory"
	}
	if c.Retrieval.MatchingModel == "" {
		c.Retrieval.MatchingModel = "daat"
	}
	if c.Retrieval.WeightingModel == "" {
		c.Retrieval.WeightingModel = "pl2"
	}
	if c.Retrieval.RetrievedSetSize <= 0 {
		c.Retrieval.RetrievedSetSize = 1000
	}
	if len(c.Output.MetaKeys) == 0 {
		c.Output.MetaKeys = []string{"docno"}
	}
	if c.Output.MaxDisplayed <= 0 {
		c.Output.MaxDisplayed = 1000
	}
	if c.Metadata.Driver == "" {
		c.Metadata.Driver = "engine"
	}
	if c.Metadata.KeyPrefix == "" {
		c.Metadata.KeyPrefix = "sift:doc:"
	}
	if c.Extra == nil {
		c.Extra = map[string]string{}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Metadata.Driver {
	case "engine":
		// ok
	case "redis":
		if len(c.Metadata.Addrs) == 0 {
			return fmt.Errorf("metadata.addrs is required for the redis metadata driver")
		}
	default:
		return fmt.Errorf("metadata.driver must be \"engine\" or \"redis\", got %q", c.Metadata.Driver)
	}
	if c.Output.MaxDisplayed <= 0 {
		return fmt.Errorf("output.max_displayed must be positive, got %d", c.Output.MaxDisplayed)
	}
	return nil
}

// Override applies a single -D style property to the configuration. Known
// dotted keys map onto config fields; anything else lands in Extra. Overrides
// must be applied before the engine that reads them is constructed.
func (c *Config) Override(key, value string) error {
	switch key {
	case "engine.driver":
		c.Engine.Driver = value
	case "engine.corpus":
		c.Engine.Corpus = value
	case "retrieval.matching_model":
		c.Retrieval.MatchingModel = value
	case "retrieval.weighting_model":
		c.Retrieval.WeightingModel = value
	case "retrieval.retrieved_set_size":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("retrieval.retrieved_set_size must be a positive integer, got %q", value)
		}
		c.Retrieval.RetrievedSetSize = n
	case "output.meta_keys":
		c.Output.MetaKeys = splitList(value)
	case "output.max_displayed":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("output.max_displayed must be a positive integer, got %q", value)
		}
		c.Output.MaxDisplayed = n
	case "metadata.driver":
		c.Metadata.Driver = value
	case "metadata.addrs":
		c.Metadata.Addrs = splitList(value)
	case "metadata.key_prefix":
		c.Metadata.KeyPrefix = value
	case "metrics.addr":
		c.Metrics.Addr = value
	case "logging.level":
		c.Logging.Level = value
	case "lowercase":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("lowercase must be a boolean, got %q", value)
		}
		c.Interactive.Lowercase = b
	default:
		if c.Extra == nil {
			c.Extra = map[string]string{}
		}
		c.Extra[key] = value
	}
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
