package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Francis-Komizu/Tacotron2/internal/config"
	"github.com/Francis-Komizu/Tacotron2/internal/phoneme"
	"github.com/Francis-Komizu/Tacotron2/internal/pinyin"
	"github.com/Francis-Komizu/Tacotron2/internal/server"
	"github.com/Francis-Komizu/Tacotron2/internal/text"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	activeCfg config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "tacotron-text",
		Short:         "Tacotron text cleaners",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			if err := config.Validate(loaded); err != nil {
				return err
			}
			activeCfg = loaded
			setupLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newCleanCmd())
	cmd.AddCommand(newCleanersCmd())
	cmd.AddCommand(newBenchCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newHealthCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := server.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if activeCfg.Text.Cleaners == "" {
		return config.Config{}, errors.New("configuration not loaded")
	}
	return activeCfg, nil
}

// buildCleaner returns a Cleaner for cfg. The chinese pipelines are wired
// only when a kana map is configured; a configured map that fails to load is
// an error.
func buildCleaner(cfg config.Config) (*text.Cleaner, error) {
	if cfg.Paths.KanaMapPath == "" {
		return text.NewCleaner(), nil
	}

	kana, err := text.LoadKanaMap(cfg.Paths.KanaMapPath)
	if err != nil {
		return nil, err
	}

	transcriber, err := phoneme.NewTranscriber()
	if err != nil {
		return nil, err
	}

	romanizer, err := text.NewRomanizer(kana, pinyin.NewConverter(), transcriber)
	if err != nil {
		return nil, fmt.Errorf("build romanizer: %w", err)
	}

	slog.Debug("chinese cleaners enabled",
		slog.String("kana_map", cfg.Paths.KanaMapPath),
		slog.Int("syllables", len(kana)),
	)

	return text.NewCleaner(text.WithRomanizer(romanizer)), nil
}
