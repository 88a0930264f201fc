package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// configDir is the configuration directory path
	// Can be set via SetConfigDir before loading config
	configDir     string
	configDirInit bool
)

// SetConfigDir sets a custom configuration directory
// Must be called before any config loading functions
func SetConfigDir(dir string) {
	configDir = dir
	configDirInit = true
}

// GetConfigDir returns the configuration directory
// Priority: 1. Manually set via SetConfigDir, 2. ./config in current directory
func GetConfigDir() string {
	if !configDirInit {
		cwd, err := os.Getwd()
		if err == nil {
			configDir = filepath.Join(cwd, "config")
		}
		configDirInit = true
	}
	return configDir
}

// Config application configuration structure
type Config struct {
	Model        ModelConfig        `yaml:"model"`
	Memory       MemoryConfig       `yaml:"memory"`
	Weather      WeatherConfig      `yaml:"weather"`
	Calendar     CalendarConfig     `yaml:"calendar"`
	Files        FilesConfig        `yaml:"files"`
	Automation   AutomationConfig   `yaml:"automation"`
	Conversation ConversationConfig `yaml:"conversation"`
}

// ModelConfig LLM provider configuration: primary answers first,
// secondary is tried once when the primary fails
type ModelConfig struct {
	Primary        ProviderConfig `yaml:"primary"`
	Secondary      ProviderConfig `yaml:"secondary"`
	EmbeddingModel string         `yaml:"embedding_model"`
	SystemPrompt   string         `yaml:"system_prompt"`
}

// ProviderConfig a single LLM provider endpoint
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// MemoryConfig persistent fact storage configuration
type MemoryConfig struct {
	FilePath     string `yaml:"file_path"`
	VectorDBPath string `yaml:"vector_db_path"`
}

// WeatherConfig weather and geolocation providers
type WeatherConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	GeoURL         string `yaml:"geo_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// CalendarConfig calendar provider endpoint
type CalendarConfig struct {
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// FilesConfig file assistant configuration
type FilesConfig struct {
	SearchRoot string `yaml:"search_root"`
	MaxResults int    `yaml:"max_results"`
}

// AutomationConfig OS automation configuration
type AutomationConfig struct {
	LogPath   string `yaml:"log_path"`
	MusicPath string `yaml:"music_path"`
}

// ConversationConfig rolling history configuration
type ConversationConfig struct {
	MaxHistory int `yaml:"max_history"`
}

// DefaultSystemPrompt is the assistant persona sent ahead of every LLM query.
const DefaultSystemPrompt = `You are A.L.F.R.E.D, an All Knowing Logical Facilitator for Reasoned Execution of Duties.
You are a sophisticated AI assistant inspired by J.A.R.V.I.S. Be helpful, concise, and maintain a professional yet friendly demeanor.
Address the user respectfully and provide accurate, thoughtful responses.`

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".alfred")
	return &Config{
		Model: ModelConfig{
			Primary: ProviderConfig{
				APIKey: "",
				Model:  "gpt-4o-mini",
			},
			Secondary: ProviderConfig{
				APIKey: "",
				Model:  "claude-3-5-sonnet-latest",
			},
			EmbeddingModel: "text-embedding-3-small",
			SystemPrompt:   DefaultSystemPrompt,
		},
		Memory: MemoryConfig{
			FilePath:     filepath.Join(dataDir, "memory.json"),
			VectorDBPath: filepath.Join(dataDir, "embeddings.db"),
		},
		Weather: WeatherConfig{
			APIKey:         "",
			BaseURL:        "http://api.openweathermap.org/data/2.5/weather",
			GeoURL:         "http://ip-api.com/json/",
			TimeoutSeconds: 10,
		},
		Calendar: CalendarConfig{
			Endpoint:       "",
			TimeoutSeconds: 10,
		},
		Files: FilesConfig{
			SearchRoot: homeDir,
			MaxResults: 100,
		},
		Automation: AutomationConfig{
			LogPath:   filepath.Join(dataDir, "command_log.txt"),
			MusicPath: "",
		},
		Conversation: ConversationConfig{
			MaxHistory: 10,
		},
	}
}

// ConfigDir returns the configuration directory path
func ConfigDir() (string, error) {
	dir := GetConfigDir()
	if dir == "" {
		return "", fmt.Errorf("failed to determine config directory")
	}
	return dir, nil
}

// LogDir returns the log directory path
func LogDir() string {
	dir := GetConfigDir()
	if dir == "" {
		return "logs"
	}
	return filepath.Join(dir, "logs")
}

// ConfigPath returns the configuration file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads configuration from file and merges credentials from the environment
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Config file doesn't exist, create default config
		cfg := DefaultConfig()
		cfg.mergeEnv()

		if err := Save(cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse config, using default values as base
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.mergeEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeEnv fills credentials from environment variables when the file left them empty
func (c *Config) mergeEnv() {
	if c.Model.Primary.APIKey == "" {
		c.Model.Primary.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Model.Secondary.APIKey == "" {
		c.Model.Secondary.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if c.Weather.APIKey == "" {
		c.Weather.APIKey = os.Getenv("WEATHER_API_KEY")
	}
}

// Save saves configuration to file
func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	content := "# A.L.F.R.E.D Configuration File\n\n" + string(data)

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Model.Primary.Model == "" {
		return fmt.Errorf("config error: model.primary.model cannot be empty")
	}
	if c.Model.Secondary.Model == "" {
		return fmt.Errorf("config error: model.secondary.model cannot be empty")
	}
	if c.Model.SystemPrompt == "" {
		return fmt.Errorf("config error: model.system_prompt cannot be empty")
	}
	if c.Memory.FilePath == "" {
		return fmt.Errorf("config error: memory.file_path cannot be empty")
	}
	if c.Weather.TimeoutSeconds <= 0 {
		return fmt.Errorf("config error: weather.timeout_seconds must be greater than 0")
	}
	if c.Calendar.TimeoutSeconds <= 0 {
		return fmt.Errorf("config error: calendar.timeout_seconds must be greater than 0")
	}
	if c.Files.MaxResults <= 0 {
		return fmt.Errorf("config error: files.max_results must be greater than 0")
	}
	if c.Conversation.MaxHistory <= 0 {
		return fmt.Errorf("config error: conversation.max_history must be greater than 0")
	}
	return nil
}

// IsPrimaryConfigured checks if the primary provider API key is configured
func (c *Config) IsPrimaryConfigured() bool {
	return c.Model.Primary.APIKey != ""
}

// String returns string representation of config (hides sensitive info)
func (c *Config) String() string {
	return fmt.Sprintf(`A.L.F.R.E.D Configuration:
  Model:
    Primary: %s (key %s)
    Secondary: %s (key %s)
    Embedding Model: %s
  Memory:
    File Path: %s
    Vector DB Path: %s
  Weather:
    API Key: %s
    Timeout Seconds: %d
  Calendar:
    Endpoint: %s
  Files:
    Search Root: %s
    Max Results: %d
  Automation:
    Log Path: %s
  Conversation:
    Max History: %d`,
		c.Model.Primary.Model,
		redactAPIKey(c.Model.Primary.APIKey),
		c.Model.Secondary.Model,
		redactAPIKey(c.Model.Secondary.APIKey),
		c.Model.EmbeddingModel,
		c.Memory.FilePath,
		c.Memory.VectorDBPath,
		redactAPIKey(c.Weather.APIKey),
		c.Weather.TimeoutSeconds,
		c.Calendar.Endpoint,
		c.Files.SearchRoot,
		c.Files.MaxResults,
		c.Automation.LogPath,
		c.Conversation.MaxHistory,
	)
}

func redactAPIKey(value string) string {
	if value == "" {
		return "(not configured)"
	}
	if len(value) > 8 {
		return value[:8] + "..."
	}
	return "***"
}
