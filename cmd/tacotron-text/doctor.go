package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Francis-Komizu/Tacotron2/internal/config"
	"github.com/Francis-Komizu/Tacotron2/internal/doctor"
	"github.com/Francis-Komizu/Tacotron2/internal/phoneme"
	"github.com/Francis-Komizu/Tacotron2/internal/pinyin"
	"github.com/Francis-Komizu/Tacotron2/internal/text"
	"github.com/spf13/cobra"
)

const (
	pinyinSample = "中文"
	kanaSample   = "チョンウェン"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run cleaner configuration and dictionary checks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			return runDoctor(doctorConfig(cfg), cmd.OutOrStdout())
		},
	}

	return cmd
}

func doctorConfig(cfg config.Config) doctor.Config {
	return doctor.Config{
		Cleaners:    text.SplitNames(cfg.Text.Cleaners),
		KanaMapPath: cfg.Paths.KanaMapPath,
		LoadKanaMap: countKanaMap,
		Pinyin:      probePinyin,
		Transcriber: probeTranscriber,
	}
}

func runDoctor(dcfg doctor.Config, stdout io.Writer) error {
	result := doctor.Run(dcfg, stdout)

	if result.Failed() {
		for _, f := range result.Failures() {
			// #nosec G705 -- Writes plain diagnostic text to stderr for CLI output, not HTML rendering.
			fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
		}

		return errors.New("doctor checks failed")
	}

	_, _ = fmt.Fprintln(stdout, "doctor checks passed")

	return nil
}

func countKanaMap(path string) (int, error) {
	m, err := text.LoadKanaMap(path)
	if err != nil {
		return 0, err
	}
	return len(m), nil
}

// probePinyin converts a fixed sample and checks one syllable per character.
func probePinyin() (string, error) {
	syllables := pinyin.NewConverter().Convert(pinyinSample)
	if len(syllables) != len([]rune(pinyinSample)) {
		return "", fmt.Errorf("%s converted to %v", pinyinSample, syllables)
	}
	return fmt.Sprintf("%s -> %s", pinyinSample, strings.Join(syllables, " ")), nil
}

// probeTranscriber loads the IPA dictionary and transcribes a fixed sample.
func probeTranscriber() (string, error) {
	t, err := phoneme.NewTranscriber()
	if err != nil {
		return "", err
	}

	phonemes, err := t.Transcribe(kanaSample, false)
	if err != nil {
		return "", err
	}
	if phonemes == "" {
		return "", fmt.Errorf("%s produced no phonemes", kanaSample)
	}
	return fmt.Sprintf("ipa, %s -> %s", kanaSample, phonemes), nil
}
