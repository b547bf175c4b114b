// cmd/veritas/config.go
package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds application configuration loaded from the environment
type Config struct {
	// Discord
	BotToken      string
	AppID         string
	GuildID       string
	CommandPrefix string

	// Upstream API credentials
	GoogleFactCheckAPIKey string
	OpenAIAPIKey          string
	OpenAIModel           string

	// Permissions
	OwnerIDs       []string
	AdminRoleIDs   []string
	AllowedUserIDs []string // empty means everyone may invoke
	SilentDenial   bool     // drop unauthorized invocations without replying

	// Behavior
	Cooldown           time.Duration
	SessionTTL         time.Duration
	RestrictNavigation bool // only the invoker may page through results
	EnableRelatedNews  bool
	FactCheckQPS       float64

	// Infrastructure
	HealthPort      int
	LogPath         string
	LogLevel        LogLevel
	WatchConfigPath string
}

// LoadConfig builds the configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		BotToken:      GetEnvString("BOT_TOKEN", ""),
		AppID:         GetEnvString("APP_ID", ""),
		GuildID:       GetEnvString("GUILD_ID", ""),
		CommandPrefix: GetEnvString("COMMAND_PREFIX", "!"),

		GoogleFactCheckAPIKey: GetEnvString("GOOGLE_FACT_CHECK_API_KEY", ""),
		OpenAIAPIKey:          GetEnvString("OPENAI_API_KEY", ""),
		OpenAIModel:           GetEnvString("OPENAI_MODEL", "gpt-3.5-turbo"),

		OwnerIDs:       GetEnvStringSlice("OWNER_IDS", []string{}),
		AdminRoleIDs:   GetEnvStringSlice("ADMIN_ROLE_IDS", []string{}),
		AllowedUserIDs: GetEnvStringSlice("ALLOWED_USER_IDS", []string{}),
		SilentDenial:   GetEnvBool("SILENT_DENIAL", false),

		Cooldown:           time.Duration(GetEnvInt("COOLDOWN_SECONDS", int(DefaultCooldown/time.Second))) * time.Second,
		SessionTTL:         time.Duration(GetEnvInt("SESSION_TTL_SECONDS", int(DefaultSessionTTL/time.Second))) * time.Second,
		RestrictNavigation: GetEnvBool("RESTRICT_NAVIGATION", false),
		EnableRelatedNews:  GetEnvBool("ENABLE_RELATED_NEWS", true),
		FactCheckQPS:       GetEnvFloat("FACT_CHECK_QPS", 1.0),

		HealthPort:      GetEnvInt("HEALTH_PORT", 8081),
		LogPath:         GetEnvString("LOG_PATH", "data/logs/veritas.log"),
		LogLevel:        LogLevel(GetEnvInt("LOG_LEVEL", int(LogInfo))),
		WatchConfigPath: GetEnvString("WATCH_CONFIG_PATH", "config/watch.yml"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return NewError(ErrorTypeConfig, ErrCodeConfigLoad, "BOT_TOKEN is required", nil)
	}
	if c.AppID == "" {
		return NewError(ErrorTypeConfig, ErrCodeConfigLoad, "APP_ID is required", nil)
	}
	if c.GoogleFactCheckAPIKey == "" && c.OpenAIAPIKey == "" {
		return NewError(ErrorTypeConfig, ErrCodeConfigLoad,
			"at least one of GOOGLE_FACT_CHECK_API_KEY or OPENAI_API_KEY is required", nil)
	}
	return nil
}

// WatchTarget names a channel and the users monitored within it.
// An empty UserIDs list watches every non-bot author in the channel.
type WatchTarget struct {
	ChannelID string   `yaml:"channel_id"`
	UserIDs   []string `yaml:"user_ids"`
}

// WatchConfig configures the watch-and-alert batcher
type WatchConfig struct {
	AlertChannelIDs []string      `yaml:"alert_channels"`
	Interval        string        `yaml:"interval"` // cron spec, e.g. "@every 10m"
	BufferLimit     int           `yaml:"buffer_limit"`
	Targets         []WatchTarget `yaml:"targets"`
}

// LoadWatchConfig reads the watch-list YAML file. A missing file is not an
// error; watching is simply disabled.
func LoadWatchConfig(path string) (*WatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read watch config: %v", err)
	}

	var wc WatchConfig
	if err := yaml.Unmarshal(data, &wc); err != nil {
		return nil, NewError(ErrorTypeConfig, ErrCodeConfigLoad, "failed to parse watch config", err)
	}

	if wc.Interval == "" {
		wc.Interval = "@every 10m"
	}
	if wc.BufferLimit <= 0 {
		wc.BufferLimit = 5
	}
	return &wc, nil
}

// WatchesUser reports whether the user is monitored in the channel
func (wc *WatchConfig) WatchesUser(channelID, userID string) bool {
	for _, t := range wc.Targets {
		if t.ChannelID != channelID {
			continue
		}
		if len(t.UserIDs) == 0 {
			return true
		}
		for _, id := range t.UserIDs {
			if id == userID {
				return true
			}
		}
	}
	return false
}
