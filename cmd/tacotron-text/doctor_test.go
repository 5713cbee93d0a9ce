package main

import (
	"strings"
	"testing"

	"github.com/Francis-Komizu/Tacotron2/internal/config"
	"github.com/Francis-Komizu/Tacotron2/internal/testutil"
)

func TestProbePinyin(t *testing.T) {
	got, err := probePinyin()
	if err != nil {
		t.Fatalf("probePinyin: %v", err)
	}

	if got != "中文 -> zhong wen" {
		t.Errorf("probePinyin = %q", got)
	}
}

func TestProbeTranscriber(t *testing.T) {
	got, err := probeTranscriber()
	if err != nil {
		t.Fatalf("probeTranscriber: %v", err)
	}

	if !strings.HasPrefix(got, "ipa, ") {
		t.Errorf("probeTranscriber = %q", got)
	}
}

func TestCountKanaMap(t *testing.T) {
	path := testutil.WriteKanaMap(t, testutil.SampleKanaMap())

	n, err := countKanaMap(path)
	if err != nil {
		t.Fatalf("countKanaMap: %v", err)
	}

	if n != len(testutil.SampleKanaMap()) {
		t.Errorf("countKanaMap = %d; want %d", n, len(testutil.SampleKanaMap()))
	}

	if _, err := countKanaMap("/nonexistent/py2kn.json"); err == nil {
		t.Error("expected error for missing kana map")
	}
}

func TestDoctorConfig_SplitsCleaners(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Text.Cleaners = "basic, english_cleaners"

	dcfg := doctorConfig(cfg)
	if len(dcfg.Cleaners) != 2 || dcfg.Cleaners[1] != "english_cleaners" {
		t.Errorf("Cleaners = %v", dcfg.Cleaners)
	}
}

func TestDoctorCmd_PassesWithDefaults(t *testing.T) {
	out, err := execute(t, "", "doctor")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}

	if !strings.Contains(out, "doctor checks passed") {
		t.Errorf("output should report success:\n%s", out)
	}
}

func TestDoctorCmd_FailsForChineseWithoutKanaMap(t *testing.T) {
	out, err := execute(t, "", "doctor", "--cleaners", "chinese")
	if err == nil {
		t.Fatalf("expected doctor failure:\n%s", out)
	}
}

func TestDoctorCmd_FullChineseSetup(t *testing.T) {
	kanaMap := testutil.WriteKanaMap(t, testutil.SampleKanaMap())

	out, err := execute(t, "", "doctor", "--cleaners", "chinese_tokenization", "--paths-kana-map-path", kanaMap)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}

	if !strings.Contains(out, "zhong wen") {
		t.Errorf("output should include the pinyin probe:\n%s", out)
	}
}
