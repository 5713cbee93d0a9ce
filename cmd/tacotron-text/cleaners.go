package main

import (
	"fmt"
	"io"

	"github.com/Francis-Komizu/Tacotron2/internal/config"
	"github.com/Francis-Komizu/Tacotron2/internal/text"
	"github.com/spf13/cobra"
)

func newCleanersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleaners",
		Short: "List the available cleaner pipelines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			return writeCleaners(cmd.OutOrStdout(), cfg)
		},
	}
}

// writeCleaners prints one pipeline per line. The chinese pipelines are
// marked unavailable when no kana map is configured.
func writeCleaners(w io.Writer, cfg config.Config) error {
	for _, p := range text.Pipelines() {
		status := "available"
		if needsKanaMap(p) && cfg.Paths.KanaMapPath == "" {
			status = "needs --paths-kana-map-path"
		}
		if _, err := fmt.Fprintf(w, "%-22s %-31s %s\n", p, p.Alias(), status); err != nil {
			return err
		}
	}
	return nil
}

func needsKanaMap(p text.Pipeline) bool {
	return p == text.PipelineChinese || p == text.PipelineChineseTokenization
}
