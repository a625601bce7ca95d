package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultConfigFile = ".evaltemplates.yaml"
	EnvPrefix         = "EVALS"
)

// Settings is the full runtime configuration.
type Settings struct {
	Model     ModelSettings     `mapstructure:"model"`
	OpenAI    OpenAISettings    `mapstructure:"openai"`
	Anthropic AnthropicSettings `mapstructure:"anthropic"`
	Ollama    OllamaSettings    `mapstructure:"ollama"`
	Evals     EvalSettings      `mapstructure:"evals"`
	Server    ServerSettings    `mapstructure:"server"`
	Logging   LoggingSettings   `mapstructure:"logging"`
	Templates TemplateSettings  `mapstructure:"templates"`
}

// ModelSettings selects the model, e.g. "openai/gpt-4o-mini", "anthropic/claude-3-5-haiku-latest", "ollama/llama3".
type ModelSettings struct {
	Name             string  `mapstructure:"name"`
	Temperature      float64 `mapstructure:"temperature"`
	MaxTokens        int     `mapstructure:"max_tokens"`
	MaxContextTokens int     `mapstructure:"max_context_tokens"`
}

type OpenAISettings struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type AnthropicSettings struct {
	APIKey string `mapstructure:"api_key"`
}

type OllamaSettings struct {
	URL string `mapstructure:"url"`
}

type EvalSettings struct {
	Concurrency int `mapstructure:"concurrency"`
	MaxRetries  int `mapstructure:"max_retries"`
}

type ServerSettings struct {
	Port string `mapstructure:"port"`
}

type LoggingSettings struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

type TemplateSettings struct {
	Dir string `mapstructure:"dir"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("model.name", "openai/gpt-4o-mini")
	v.SetDefault("model.temperature", 0.0)
	v.SetDefault("model.max_tokens", 256)
	v.SetDefault("model.max_context_tokens", 0)
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("ollama.url", "http://localhost:11434")
	v.SetDefault("evals.concurrency", 20)
	v.SetDefault("evals.max_retries", 3)
	v.SetDefault("server.port", "8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("templates.dir", "")
}

// Load reads .env, the config file (if present) and EVALS_* environment variables into v.
func Load(v *viper.Viper, cfgFile string) (*Settings, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile == "" {
		cfgFile = DefaultConfigFile
	}
	if _, err := os.Stat(cfgFile); err == nil {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error checking config file %s: %w", cfgFile, err)
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	// Provider keys fall back to the conventional variables.
	if settings.OpenAI.APIKey == "" {
		settings.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if settings.Anthropic.APIKey == "" {
		settings.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	return &settings, nil
}
