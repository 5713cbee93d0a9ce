package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Francis-Komizu/Tacotron2/internal/config"
	"github.com/Francis-Komizu/Tacotron2/internal/testutil"
	"github.com/Francis-Komizu/Tacotron2/internal/text"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	orig := activeCfg
	t.Cleanup(func() { activeCfg = orig })

	root := NewRootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"clean", "cleaners", "bench", "serve", "health", "doctor"}
	for _, name := range want {
		found := false

		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}

		if !found {
			t.Errorf("expected subcommand %q not found in root", name)
		}
	}
}

func TestNewRootCmd_HasPersistentFlags(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"config", "cleaners", "paths-kana-map-path", "log-level"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected --%s persistent flag to be registered", name)
		}
	}
}

func TestRoot_InvalidConfigRejected(t *testing.T) {
	_, err := execute(t, "", "cleaners", "--log-level=verbose")
	if err == nil {
		t.Fatal("expected validation error for unknown log level")
	}
}

func TestSetupLogger_DoesNotPanic(_ *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		setupLogger(level)
	}
}

func TestSetupLogger_InvalidLevelFallsBackToInfo(_ *testing.T) {
	// Should not panic on invalid level.
	setupLogger("not-a-level")
}

func TestRequireConfig_FailsWhenNotInitialized(t *testing.T) {
	orig := activeCfg

	t.Cleanup(func() { activeCfg = orig })

	activeCfg = config.Config{}

	if _, err := requireConfig(); err == nil {
		t.Fatal("expected error when config is not loaded")
	}
}

func TestRequireConfig_SucceedsWhenLoaded(t *testing.T) {
	orig := activeCfg

	t.Cleanup(func() { activeCfg = orig })

	activeCfg = config.DefaultConfig()

	got, err := requireConfig()
	if err != nil {
		t.Fatalf("requireConfig returned unexpected error: %v", err)
	}

	if got.Text.Cleaners != "english" {
		t.Errorf("unexpected Text.Cleaners: %q", got.Text.Cleaners)
	}
}

func TestBuildCleaner_WithoutKanaMap(t *testing.T) {
	c, err := buildCleaner(config.DefaultConfig())
	if err != nil {
		t.Fatalf("buildCleaner: %v", err)
	}

	if c.Supports(text.PipelineChinese) {
		t.Error("chinese pipeline should be disabled without a kana map")
	}

	if !c.Supports(text.PipelineEnglish) {
		t.Error("english pipeline should be available")
	}
}

func TestBuildCleaner_WithKanaMap(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Paths.KanaMapPath = testutil.WriteKanaMap(t, testutil.SampleKanaMap())

	c, err := buildCleaner(cfg)
	if err != nil {
		t.Fatalf("buildCleaner: %v", err)
	}

	if !c.Supports(text.PipelineChineseTokenization) {
		t.Error("chinese_tokenization should be available with a kana map")
	}
}

func TestBuildCleaner_MissingKanaMapIsFatal(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Paths.KanaMapPath = "/nonexistent/py2kn.json"

	if _, err := buildCleaner(cfg); err == nil {
		t.Fatal("expected error for a configured but missing kana map")
	}
}
