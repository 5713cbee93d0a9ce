// Package phoneme transcribes Japanese kana into OpenJTalk-style romaji
// phonemes such as "k o N n i ch i w a".
package phoneme

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// ErrInvalidUTF8 is returned by Transcribe for input that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("phoneme: input is not valid UTF-8")

// Pause is the phoneme emitted for pause punctuation.
const Pause = "pau"

// kanaPause is the kana-mode rendering of a pause.
const kanaPause = "、"

var pauseRunes = map[rune]bool{
	'、': true, '。': true, '，': true, '．': true, '！': true, '？': true,
	',': true, '.': true, '!': true, '?': true, '…': true,
}

// Transcriber segments text with kagome and reads each segment's
// pronunciation. It is safe for concurrent use.
type Transcriber struct {
	tok *tokenizer.Tokenizer
}

// NewTranscriber loads the IPA dictionary and builds a Transcriber.
func NewTranscriber() (*Transcriber, error) {
	tok, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("init japanese tokenizer: %w", err)
	}
	return &Transcriber{tok: tok}, nil
}

// Transcribe returns space-separated phonemes for text, with "pau" for pause
// punctuation. With kana set it returns the katakana pronunciation instead,
// pauses written as "、".
func (t *Transcriber) Transcribe(text string, kana bool) (string, error) {
	if !utf8.ValidString(text) {
		return "", ErrInvalidUTF8
	}

	var phonemes []string
	var pron strings.Builder

	for _, tk := range t.tok.Tokenize(text) {
		surface := tk.Surface
		if strings.TrimSpace(surface) == "" {
			continue
		}

		if isPause(surface) {
			phonemes = append(phonemes, Pause)
			pron.WriteString(kanaPause)
			continue
		}
		if pos := tk.POS(); len(pos) > 0 && pos[0] == "記号" {
			continue
		}

		reading, ok := tk.Pronunciation()
		if !ok || reading == "" || reading == "*" {
			reading = toKatakana(surface)
		}
		pron.WriteString(reading)
		phonemes = append(phonemes, katakanaPhonemes(reading)...)
	}

	if kana {
		return pron.String(), nil
	}
	return strings.Join(phonemes, " "), nil
}

func isPause(s string) bool {
	for _, r := range s {
		if !pauseRunes[r] {
			return false
		}
	}
	return s != ""
}
