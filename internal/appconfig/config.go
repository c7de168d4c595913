package appconfig

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type ServerConfig struct {
	Port        int      `json:"port"`
	Bind        string   `json:"bind"`
	CORSOrigins []string `json:"cors_origins"`
	// FrontendURL overrides the URL the main window opens. Empty means the
	// local server address.
	FrontendURL string `json:"frontend_url"`
}

type AuthConfig struct {
	SessionSecret string `json:"session_secret"`
	SessionExpire string `json:"session_expire"`
}

type DatabaseConfig struct {
	Driver      string `json:"driver"`
	SQLitePath  string `json:"sqlite_path"`
	PostgresDSN string `json:"postgres_dsn"`
}

type LogConfig struct {
	Level      string `json:"level"`
	Mode       string `json:"mode"`
	FilePath   string `json:"file_path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
	Compress   bool   `json:"compress"`
}

// FSConfig scopes the filesystem plugin. Paths outside Root are rejected.
type FSConfig struct {
	Root string `json:"root"`
}

type NotifyConfig struct {
	Enabled        bool   `json:"enabled"`
	TelegramToken  string `json:"telegram_token"`
	TelegramChatID string `json:"telegram_chat_id"`
	SlackToken     string `json:"slack_token"`
	SlackChannelID string `json:"slack_channel_id"`
	WebhookURL     string `json:"webhook_url"`
}

type Config struct {
	Server   ServerConfig   `json:"server"`
	Auth     AuthConfig     `json:"auth"`
	Database DatabaseConfig `json:"database"`
	Log      LogConfig      `json:"log"`
	FS       FSConfig       `json:"fs"`
	Notify   NotifyConfig   `json:"notify"`
}

// defaultDataDir returns the data directory next to the executable
// (stockadvisors.db/json/log live there).
func defaultDataDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "./data"
	}
	return filepath.Join(filepath.Dir(exe), "data")
}

func Default() Config {
	dataDir := defaultDataDir()
	return Config{
		Server: ServerConfig{
			Port:        17890,
			Bind:        "127.0.0.1",
			CORSOrigins: []string{},
		},
		Auth: AuthConfig{
			SessionSecret: "",
			SessionExpire: "24h",
		},
		Database: DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: filepath.Join(dataDir, "stockadvisors.db"),
		},
		Log: LogConfig{
			Level:      "info",
			Mode:       "production",
			FilePath:   filepath.Join(dataDir, "stockadvisors.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
			Compress:   true,
		},
		FS: FSConfig{
			Root: filepath.Join(dataDir, "files"),
		},
		Notify: NotifyConfig{
			Enabled: false,
		},
	}
}

func ConfigPath() string {
	if custom := strings.TrimSpace(os.Getenv("SA_CONFIG")); custom != "" {
		return custom
	}
	return filepath.Join(defaultDataDir(), "stockadvisors.json")
}

func Load() (Config, error) {
	cfg := Default()

	// Layer 1: config file
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	if err == nil && len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Default(), err
		}
	}

	// Layer 2: generate the session secret on first run and persist it while
	// the config still holds only file-layer values, so transient env
	// overrides never end up in the file.
	if cfg.Auth.SessionSecret == "" {
		secret, err := generateSecret(32)
		if err != nil {
			return cfg, err
		}
		cfg.Auth.SessionSecret = secret
		_ = Save(cfg)
	}

	// Layer 3: environment variables override
	applyEnvOverrides(&cfg)

	return cfg, nil
}

func Save(cfg Config) error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func (c *Config) ListenAddr() string {
	return c.Server.Bind + ":" + strconv.Itoa(c.Server.Port)
}

// FrontendURL returns the URL the main window points at.
func (c *Config) FrontendURL() string {
	if c.Server.FrontendURL != "" {
		return c.Server.FrontendURL
	}
	host := c.Server.Bind
	if host == "0.0.0.0" || host == "" {
		host = "127.0.0.1"
	}
	return "http://" + host + ":" + strconv.Itoa(c.Server.Port)
}

func (c *Config) SessionExpireDuration() time.Duration {
	d, err := time.ParseDuration(c.Auth.SessionExpire)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

func (c *Config) IsDebug() bool {
	return strings.EqualFold(c.Log.Mode, "debug")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SA_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("SA_BIND"); v != "" {
		cfg.Server.Bind = v
	}
	if v := os.Getenv("SA_FRONTEND_URL"); v != "" {
		cfg.Server.FrontendURL = v
	}
	if v := os.Getenv("SA_SESSION_SECRET"); v != "" {
		cfg.Auth.SessionSecret = v
	}
	if v := os.Getenv("SA_SESSION_EXPIRE"); v != "" {
		cfg.Auth.SessionExpire = v
	}
	if v := os.Getenv("SA_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("SA_DB_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SA_DB_DSN"); v != "" {
		cfg.Database.PostgresDSN = v
	}
	if v := os.Getenv("SA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SA_LOG_MODE"); v != "" {
		cfg.Log.Mode = v
	}
	if v := os.Getenv("SA_LOG_FILE"); v != "" {
		cfg.Log.FilePath = v
	}
	if v := os.Getenv("SA_FS_ROOT"); v != "" {
		cfg.FS.Root = v
	}
	if v := os.Getenv("SA_NOTIFY_ENABLED"); v != "" {
		cfg.Notify.Enabled = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("SA_NOTIFY_WEBHOOK_URL"); v != "" {
		cfg.Notify.WebhookURL = v
	}
}

func generateSecret(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
