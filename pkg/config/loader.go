package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional YAML file read from the config directory.
const ConfigFileName = "thunder.yaml"

// ThunderYAMLConfig represents the complete thunder.yaml file structure
type ThunderYAMLConfig struct {
	Server        *ServerConfig        `yaml:"server"`
	LLM           *LLMConfig           `yaml:"llm"`
	OrderPlatform *OrderPlatformConfig `yaml:"order_platform"`
	Assistant     *AssistantConfig     `yaml:"assistant"`
	Intent        *IntentConfig        `yaml:"intent"`
}

// Initialize loads, validates, and returns ready-to-use configuration.
//
// Steps performed:
//  1. Load thunder.yaml from configDir if present (with {{.VAR}} expansion)
//  2. Merge it over built-in defaults
//  3. Apply well-known environment variable overrides
//  4. Validate
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("Initializing configuration")

	cfg, err := load(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	stats := cfg.Stats()
	if !stats.OrderLookupConfigured {
		log.Warn("Order platform credentials missing, order lookups will report not configured",
			"store_hash_set", cfg.OrderPlatform.StoreHash != "",
			"access_token_set", cfg.OrderPlatform.AccessToken != "")
	}
	if !stats.LLMConfigured {
		log.Warn("OPENAI_API_KEY not set, completion requests will fail")
	}

	log.Info("Configuration initialized successfully",
		"order_lookup_configured", stats.OrderLookupConfigured,
		"llm_configured", stats.LLMConfigured,
		"intent_strategy", stats.IntentStrategy,
		"model", stats.Model)

	return cfg, nil
}

// load is the internal loader (not exported)
func load(_ context.Context, configDir string) (*Config, error) {
	loader := &configLoader{configDir: configDir}

	fileCfg, err := loader.loadThunderYAML()
	switch {
	case errors.Is(err, ErrConfigNotFound):
		slog.Info("No configuration file found, using defaults", "file", ConfigFileName)
		fileCfg = &ThunderYAMLConfig{}
	case err != nil:
		return nil, NewLoadError(ConfigFileName, err)
	}

	cfg := &Config{
		configDir:     configDir,
		Server:        DefaultServerConfig(),
		LLM:           DefaultLLMConfig(),
		OrderPlatform: DefaultOrderPlatformConfig(),
		Assistant:     DefaultAssistantConfig(),
		Intent:        DefaultIntentConfig(),
	}

	// Merge user-provided sections into defaults (non-zero values override)
	if err := mergeSection(cfg.Server, fileCfg.Server, "server"); err != nil {
		return nil, err
	}
	if err := mergeSection(cfg.LLM, fileCfg.LLM, "llm"); err != nil {
		return nil, err
	}
	if err := mergeSection(cfg.OrderPlatform, fileCfg.OrderPlatform, "order_platform"); err != nil {
		return nil, err
	}
	if err := mergeSection(cfg.Assistant, fileCfg.Assistant, "assistant"); err != nil {
		return nil, err
	}
	if err := mergeSection(cfg.Intent, fileCfg.Intent, "intent"); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

func mergeSection[T any](dst, src *T, name string) error {
	if src == nil {
		return nil
	}
	if err := mergo.Merge(dst, src, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to merge %s config: %w", name, err)
	}
	return nil
}

// applyEnvOverrides lets the deployment environment win over thunder.yaml.
func applyEnvOverrides(cfg *Config) {
	setFromEnv(&cfg.Server.Port, "PORT")

	setFromEnv(&cfg.LLM.APIKey, "OPENAI_API_KEY")
	setFromEnv(&cfg.LLM.Model, "OPENAI_MODEL")
	setFromEnv(&cfg.LLM.BaseURL, "OPENAI_BASE_URL")

	setFromEnv(&cfg.OrderPlatform.StoreHash, "BC_STORE_HASH")
	setFromEnv(&cfg.OrderPlatform.AccessToken, "BC_ACCESS_TOKEN")
	setFromEnv(&cfg.OrderPlatform.ClientID, "BC_CLIENT_ID")
	setFromEnv(&cfg.OrderPlatform.BaseURL, "BC_API_URL")
}

func setFromEnv(target *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*target = v
	}
}

// validate performs validation on loaded configuration
func validate(cfg *Config) error {
	validator := NewValidator(cfg)
	return validator.ValidateAll()
}

type configLoader struct {
	configDir string
}

func (l *configLoader) loadYAML(filename string, target any) error {
	if l.configDir == "" {
		return fmt.Errorf("%w: no config directory", ErrConfigNotFound)
	}
	path := filepath.Join(l.configDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}

	// Expand environment variables using {{.VAR}} template syntax
	data = ExpandEnv(data)

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return nil
}

func (l *configLoader) loadThunderYAML() (*ThunderYAMLConfig, error) {
	var config ThunderYAMLConfig
	if err := l.loadYAML(ConfigFileName, &config); err != nil {
		return nil, err
	}
	return &config, nil
}
