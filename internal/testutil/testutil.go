// Package testutil provides fixtures and deterministic collaborator fakes
// for the cleaner tests.
//
// The fakes satisfy the text package's collaborator interfaces structurally,
// so they can be used from internal tests of that package without an import
// cycle:
//
//	py := testutil.SyllablePinyin()
//	ph := testutil.EchoTranscriber()
//	r, err := text.NewRomanizer(testutil.SampleKanaMap(), py, ph)
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SampleKanaMap returns a small pinyin→kana table covering "你好，世界！"
// and "中文。".
func SampleKanaMap() map[string]string {
	return map[string]string{
		"ni":    "ニ",
		"hao":   "ハオ",
		"shi":   "シ",
		"jie":   "ジエ",
		"zhong": "チョン",
		"wen":   "ウェン",
		"，":     "、",
		"。":     "。",
		"！":     "！",
	}
}

// WriteKanaMap writes entries as a JSON kana map in a temp dir and returns
// its path.
func WriteKanaMap(tb testing.TB, entries map[string]string) string {
	tb.Helper()

	data, err := json.Marshal(entries)
	if err != nil {
		tb.Fatalf("marshal kana map: %v", err)
	}

	return WriteFile(tb, "py2kn.json", data)
}

// WriteFile writes data to name inside a fresh temp dir and returns the path.
func WriteFile(tb testing.TB, name string, data []byte) string {
	tb.Helper()

	p := filepath.Join(tb.TempDir(), name)

	err := os.WriteFile(p, data, 0o644)
	if err != nil {
		tb.Fatalf("write %s: %v", name, err)
	}

	return p
}

// PinyinFunc adapts a function to the pinyin converter interface.
type PinyinFunc func(string) []string

func (f PinyinFunc) Convert(text string) []string { return f(text) }

// SyllablePinyin maps the Han characters of SampleKanaMap to their syllables
// and passes every other rune through, mirroring the real converter.
func SyllablePinyin() PinyinFunc {
	table := map[rune]string{
		'你': "ni", '好': "hao", '世': "shi", '界': "jie", '中': "zhong", '文': "wen",
	}

	return func(s string) []string {
		var out []string
		for _, r := range s {
			if py, ok := table[r]; ok {
				out = append(out, py)
				continue
			}
			if r == ' ' {
				continue
			}
			out = append(out, string(r))
		}
		return out
	}
}

// Transcriber is a deterministic phoneme transcriber driven by a rune table.
type Transcriber struct {
	table map[rune]string
	calls []string
}

// EchoTranscriber returns a Transcriber knowing the kana of SampleKanaMap.
// Pause punctuation transcribes to "pau".
func EchoTranscriber() *Transcriber {
	return &Transcriber{table: map[rune]string{
		'ニ': "n i", 'ハ': "h a", 'オ': "o", 'シ': "sh i", 'ジ': "j i", 'エ': "e",
		'チ': "ch i", 'ョ': "o", 'ン': "N", 'ウ': "u", 'ェ': "e",
		'、': "pau", '。': "pau", '！': "pau",
	}}
}

// Transcribe joins the phonemes of every rune with single spaces. A rune
// missing from the table is an error.
func (t *Transcriber) Transcribe(text string, _ bool) (string, error) {
	t.calls = append(t.calls, text)

	parts := make([]string, 0, len(text))
	for _, r := range text {
		ph, ok := t.table[r]
		if !ok {
			return "", fmt.Errorf("no phonemes for %q", r)
		}
		parts = append(parts, ph)
	}
	return strings.Join(parts, " "), nil
}

// Calls returns the inputs Transcribe has seen, in order.
func (t *Transcriber) Calls() []string {
	return append([]string(nil), t.calls...)
}
