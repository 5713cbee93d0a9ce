// Package pinyin converts Chinese text to tone-less pinyin syllables.
package pinyin

import (
	"unicode"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// Converter yields one syllable per Han character, using the first reading of
// heteronyms. Other characters pass through as single-rune syllables so that
// punctuation keeps its position; whitespace is dropped.
type Converter struct {
	args gopinyin.Args
}

// NewConverter returns a Converter using the Normal (tone-less) style.
func NewConverter() *Converter {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Normal
	args.Heteronym = false
	args.Fallback = func(r rune, _ gopinyin.Args) []string {
		if unicode.IsSpace(r) {
			return nil
		}
		return []string{string(r)}
	}
	return &Converter{args: args}
}

// Convert returns the syllables of text in order.
func (c *Converter) Convert(text string) []string {
	raw := gopinyin.Pinyin(text, c.args)
	out := make([]string, 0, len(raw))
	for _, readings := range raw {
		if len(readings) == 0 {
			continue
		}
		out = append(out, readings[0])
	}
	return out
}
