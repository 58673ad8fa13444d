package app

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"organo/internal/domain"
)

// Config holds runtime options for building the app.
type Config struct {
	Home           string        `mapstructure:"-"`
	ServerURL      string        `mapstructure:"server_url"`
	Passphrase     string        `mapstructure:"passphrase"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RefreshTimeout time.Duration `mapstructure:"refresh_timeout"`
	LogLevel       string        `mapstructure:"log_level"`
	Language       string        `mapstructure:"language"`
	HistoryDB      string        `mapstructure:"history_db"`
	Voice          VoiceConfig   `mapstructure:"voice"`

	HTTP      *http.Client `mapstructure:"-"` // optional; its Transport is wrapped
	LogOutput io.Writer    `mapstructure:"-"` // defaults to os.Stderr
}

// VoiceConfig tunes voice navigation.
type VoiceConfig struct {
	Screens      map[string][]domain.KeywordSet `mapstructure:"screens"`
	RestartDelay time.Duration                  `mapstructure:"restart_delay"`
}

// KeywordSets returns the configured keyword sets keyed by screen.
func (v VoiceConfig) KeywordSets() map[domain.Screen][]domain.KeywordSet {
	out := make(map[domain.Screen][]domain.KeywordSet, len(v.Screens))
	for screen, sets := range v.Screens {
		out[domain.Screen(strings.ToLower(screen))] = sets
	}
	return out
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_url", "http://127.0.0.1:8080")
	v.SetDefault("passphrase", "")
	v.SetDefault("timeout", 15*time.Second)
	v.SetDefault("refresh_timeout", 10*time.Second)
	v.SetDefault("log_level", "warn")
	v.SetDefault("language", "es")
	v.SetDefault("history_db", "history.db")
	v.SetDefault("voice.restart_delay", 250*time.Millisecond)
}

// LoadConfig reads the configuration kept in home, creating home and a
// default config.yaml when they do not exist yet.
func LoadConfig(home string) (Config, error) {
	if err := os.MkdirAll(home, 0o700); err != nil {
		return Config{}, fmt.Errorf("creating %s: %w", home, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(home)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		// Written before env binding so secrets from the environment stay out of the file.
		if err := v.SafeWriteConfig(); err != nil {
			return Config{}, fmt.Errorf("writing default config: %w", err)
		}
	}

	dotEnv := filepath.Join(home, ".env")
	if _, err := os.Stat(dotEnv); err == nil {
		if err := godotenv.Load(dotEnv); err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", dotEnv, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("checking %s: %w", dotEnv, err)
	}
	v.SetEnvPrefix("ORGANO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Home = home
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	if cfg.HistoryDB != "" && !filepath.IsAbs(cfg.HistoryDB) {
		cfg.HistoryDB = filepath.Join(home, cfg.HistoryDB)
	}
	return cfg, nil
}
