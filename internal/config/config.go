package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths    PathsConfig  `mapstructure:"paths"`
	Text     TextConfig   `mapstructure:"text"`
	Server   ServerConfig `mapstructure:"server"`
	LogLevel string       `mapstructure:"log_level" validate:"required,oneof=debug info warn warning error"`
}

type PathsConfig struct {
	// KanaMapPath points at the pinyin-to-kana JSON table. Empty disables the
	// chinese pipelines.
	KanaMapPath string `mapstructure:"kana_map_path"`
}

type TextConfig struct {
	// Cleaners is a comma-delimited list of cleaner names applied in order.
	Cleaners string `mapstructure:"cleaners" validate:"required"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr" validate:"required"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes" validate:"gt=0"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			KanaMapPath: "",
		},
		Text: TextConfig{
			Cleaners: "english",
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			MaxTextBytes:    4096,
			ShutdownTimeout: 30,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-kana-map-path", defaults.Paths.KanaMapPath, "Path to the pinyin-to-kana JSON map (enables chinese cleaners)")
	fs.String("cleaners", defaults.Text.Cleaners, "Comma-separated cleaner names applied in order")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Maximum request text size in bytes")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown timeout in seconds")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

// flagKeys maps config keys to the flag names registered by RegisterFlags.
var flagKeys = map[string]string{
	"paths.kana_map_path":     "paths-kana-map-path",
	"text.cleaners":           "cleaners",
	"server.listen_addr":      "server-listen-addr",
	"server.max_text_bytes":   "server-max-text-bytes",
	"server.shutdown_timeout": "server-shutdown-timeout",
	"log_level":               "log-level",
}

// Load resolves configuration with precedence flag > env > file > default.
// A missing tacotron.* file in the working directory is not an error; a
// missing file named explicitly by ConfigFile is.
func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("TACOTRON")
	replacer := strings.NewReplacer("-", "_", ".", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("tacotron")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// Validate checks field constraints and that every configured cleaner name
// resolves to a pipeline.
func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := NormalizeCleaners(cfg.Text.Cleaners); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.kana_map_path", c.Paths.KanaMapPath)
	v.SetDefault("text.cleaners", c.Text.Cleaners)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("log_level", c.LogLevel)
}

// bindFlags binds whichever of the registered flags fs carries. Subcommands
// that inherit only part of the flag set still load cleanly.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
