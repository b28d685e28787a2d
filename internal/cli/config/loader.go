package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
)

// findConfigFile finds the config file to use.
// Priority: explicit path > ./sqlsh.yaml > ./sqlsh.yml > ~/.sqlsh/sqlsh.yaml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidates := []string{"sqlsh.yaml", "sqlsh.yml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(homeDir, ".sqlsh", "sqlsh.yaml"),
			filepath.Join(homeDir, ".sqlsh", "sqlsh.yml"),
		)
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"prompt":           DefaultPrompt,
		"history_file":     defaultHistoryPath(),
		"format":           DefaultFormat,
		"smart_completion": true,
		"verbose":          false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (SQLSH_ prefix)
	// Transform: SQLSH_HISTORY_FILE -> history_file
	if err := k.Load(env.Provider("SQLSH_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SQLSH_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			// Transform kebab-case to snake_case for config keys
			key := strings.ReplaceAll(f.Name, "-", "_")

			// The CLI exposes --no-smart-completion for symmetry with the
			// smart default; fold it into the positive config key.
			if key == "no_smart_completion" {
				enabled, _ := flags.GetBool(f.Name)
				return "smart_completion", !enabled
			}

			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Select the named connection, if any
	if cfg.Connection != "" {
		conn, ok := cfg.Connections[cfg.Connection]
		if !ok {
			return nil, &UnknownConnectionError{
				Name:      cfg.Connection,
				Available: connectionNames(cfg.Connections),
			}
		}
		cfg.Target = MergeConnConfig(cfg.Target, conn)
	}

	// Default to an in-memory sqlite session when nothing is configured.
	if cfg.Target == nil {
		cfg.Target = &ConnConfig{Type: "sqlite", Path: ":memory:"}
	}
	if cfg.Target.Type == "" {
		cfg.Target.Type = "sqlite"
	}

	// Expand environment variables in sensitive fields
	expandConnEnvVars(cfg.Target)

	if err := ValidateConn(cfg.Target); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// defaultHistoryPath places the history file in the user's home directory.
func defaultHistoryPath() string {
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, DefaultHistoryFile)
	}
	return DefaultHistoryFile
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

func connectionNames(conns map[string]*ConnConfig) []string {
	names := make([]string, 0, len(conns))
	for name := range conns {
		names = append(names, name)
	}
	return names
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if not found
	})
}

// expandConnEnvVars expands environment variables in sensitive connection fields.
func expandConnEnvVars(c *ConnConfig) {
	if c == nil {
		return
	}
	c.Password = expandEnvVars(c.Password)
	c.User = expandEnvVars(c.User)
	c.Host = expandEnvVars(c.Host)
	c.Database = expandEnvVars(c.Database)
}

// MergeConnConfig merges two connection configs, with override taking precedence.
func MergeConnConfig(base, override *ConnConfig) *ConnConfig {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := &ConnConfig{
		Type:     base.Type,
		Path:     base.Path,
		Host:     base.Host,
		Port:     base.Port,
		Database: base.Database,
		User:     base.User,
		Password: base.Password,
		Options:  make(map[string]any),
	}
	for k, v := range base.Options {
		merged.Options[k] = v
	}

	if override.Type != "" {
		merged.Type = override.Type
	}
	if override.Path != "" {
		merged.Path = override.Path
	}
	if override.Host != "" {
		merged.Host = override.Host
	}
	if override.Port != 0 {
		merged.Port = override.Port
	}
	if override.Database != "" {
		merged.Database = override.Database
	}
	if override.User != "" {
		merged.User = override.User
	}
	if override.Password != "" {
		merged.Password = override.Password
	}
	for k, v := range override.Options {
		merged.Options[k] = v
	}

	return merged
}
