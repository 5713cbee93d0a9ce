package text

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmptyKanaMapPath is returned when LoadKanaMap is called with an empty path.
var ErrEmptyKanaMapPath = errors.New("kana map path must not be empty")

// ErrLookupFailure is returned when a pinyin syllable has no kana rendering.
var ErrLookupFailure = errors.New("pinyin syllable not in kana map")

// KanaMap maps a tone-less pinyin syllable to its kana rendering.
// A KanaMap is never modified after it is built.
type KanaMap map[string]string

// kanaValue accepts either "カ" or ["カ", "ン"] in the JSON source.
type kanaValue string

func (k *kanaValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*k = kanaValue(s)
		return nil
	}

	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("kana value must be a string or an array of strings: %w", err)
	}
	*k = kanaValue(strings.Join(parts, ""))
	return nil
}

// LoadKanaMap reads a pinyin→kana JSON object from path.
func LoadKanaMap(path string) (KanaMap, error) {
	if path == "" {
		return nil, ErrEmptyKanaMapPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read kana map: %w", err)
	}

	m, err := ParseKanaMap(data)
	if err != nil {
		return nil, fmt.Errorf("kana map %q: %w", path, err)
	}
	return m, nil
}

// ParseKanaMap decodes a pinyin→kana JSON object.
func ParseKanaMap(data []byte) (KanaMap, error) {
	var raw map[string]kanaValue
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode kana map: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("kana map has no entries")
	}

	m := make(KanaMap, len(raw))
	for syllable, kana := range raw {
		if syllable == "" {
			return nil, errors.New("kana map contains empty syllable")
		}
		m[syllable] = string(kana)
	}
	return m, nil
}

// Lookup returns the kana rendering of syllable.
func (m KanaMap) Lookup(syllable string) (string, error) {
	kana, ok := m[syllable]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrLookupFailure, syllable)
	}
	return kana, nil
}

// punctuation maps kana-side punctuation to the glyph emitted in romaji output.
var punctuation = map[string]string{
	"、": ",",
	"。": ".",
	"！": "!",
}

// PunctuationFor reports the romaji punctuation for a kana rendering, if the
// rendering is one of the mapped punctuation glyphs.
func PunctuationFor(kana string) (string, bool) {
	p, ok := punctuation[kana]
	return p, ok
}
