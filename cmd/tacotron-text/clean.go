package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Francis-Komizu/Tacotron2/internal/config"
	"github.com/spf13/cobra"
)

// filelistDelimiter separates the columns of a Tacotron filelist line.
const filelistDelimiter = "|"

// maxLineBytes bounds a single filelist line.
const maxLineBytes = 1 << 20

type sequenceCleaner interface {
	CleanSequence(text string, names ...string) (string, error)
}

func newCleanCmd() *cobra.Command {
	var input string
	var filelist bool
	var textIndex int

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Run text through the configured cleaners",
		Example: `  tacotron-text clean --text "Dr. Smith paid $5."
  tacotron-text clean --cleaners chinese_tokenization --paths-kana-map-path kana.json --text 你好
  tacotron-text clean --filelist --cleaners basic < train.txt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			names, err := config.NormalizeCleaners(cfg.Text.Cleaners)
			if err != nil {
				return err
			}

			cleaner, err := buildCleaner(cfg)
			if err != nil {
				return err
			}

			if filelist {
				return cleanFilelist(cleaner, names, textIndex, cmd.InOrStdin(), cmd.OutOrStdout())
			}

			inputText, err := readCleanText(input, cmd.InOrStdin())
			if err != nil {
				return err
			}

			cleaned, err := cleaner.CleanSequence(inputText, names...)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cleaned)
			return err
		},
	}

	cmd.Flags().StringVar(&input, "text", "", "Text to clean (if empty, read from stdin)")
	cmd.Flags().BoolVar(&filelist, "filelist", false, "Read filelist lines (wav|text) from stdin and clean the text column")
	cmd.Flags().IntVar(&textIndex, "text-index", 1, "Zero-based column holding the text in --filelist mode")

	return cmd
}

// readCleanText prefers the --text value. Piped input loses only its final
// line break; other whitespace is left for the cleaners.
func readCleanText(text string, stdin io.Reader) (string, error) {
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	input := strings.TrimSuffix(strings.TrimSuffix(string(b), "\n"), "\r")
	if strings.TrimSpace(input) == "" {
		return "", errors.New("either provide --text or pipe text on stdin")
	}
	return input, nil
}

// cleanFilelist rewrites the text column of every line read from r. Blank
// lines pass through unchanged.
func cleanFilelist(c sequenceCleaner, names []string, textIndex int, r io.Reader, w io.Writer) error {
	if textIndex < 0 {
		return fmt.Errorf("--text-index must be >= 0, got %d", textIndex)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	bw := bufio.NewWriter(w)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")

		if strings.TrimSpace(line) != "" {
			cols := strings.Split(line, filelistDelimiter)
			if textIndex >= len(cols) {
				return fmt.Errorf("line %d: no column %d (have %d)", lineNo, textIndex, len(cols))
			}

			cleaned, err := c.CleanSequence(cols[textIndex], names...)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			cols[textIndex] = cleaned
			line = strings.Join(cols, filelistDelimiter)
		}

		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read filelist: %w", err)
	}

	return bw.Flush()
}
