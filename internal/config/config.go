// Package config loads answersound settings through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration options for answersound.
type Config struct {
	LogLevel string        `mapstructure:"log_level"`
	Audio    AudioConfig   `mapstructure:"audio"`
	Haptics  HapticsConfig `mapstructure:"haptics"`
	Window   WindowConfig  `mapstructure:"window"`
}

// AudioConfig configures the output session.
type AudioConfig struct {
	SampleRate int     `mapstructure:"sample_rate"`
	Volume     float64 `mapstructure:"volume"` // master volume, 0..1
}

// HapticsConfig toggles vibration on release.
type HapticsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

const (
	// EnvPrefix prefixes environment overrides, e.g. ANSWERSOUND_LOG_LEVEL.
	EnvPrefix = "ANSWERSOUND"
	fileName  = "answersound"
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		LogLevel: "info",
		Audio:    AudioConfig{SampleRate: 44100, Volume: 1},
		Haptics:  HapticsConfig{Enabled: true},
		Window:   WindowConfig{Width: 360, Height: 640},
	}
}

// SetDefaults registers Defaults on v so unset keys resolve.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.volume", d.Audio.Volume)
	v.SetDefault("haptics.enabled", d.Haptics.Enabled)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		errs = append(errs, fmt.Errorf("audio.sample_rate %d out of range [8000, 192000]", c.Audio.SampleRate))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume %v out of range [0, 1]", c.Audio.Volume))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	return errors.Join(errs...)
}

// New returns a viper instance with defaults, env overrides and search paths
// set up. If path is non-empty only that file is read.
func New(path string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		return v
	}
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", fileName))
	}
	return v
}

// Load reads the config file, if any, and decodes v into a validated Config.
// A missing file in the search paths is not an error.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Watch calls onChange with the new Config whenever the config file is
// written. Invalid edits are reported to onError and otherwise ignored.
func Watch(v *viper.Viper, onChange func(Config), onError func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := decode(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("%s: %w", e.Name, err))
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}
