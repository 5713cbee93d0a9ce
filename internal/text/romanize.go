package text

import (
	"errors"
	"fmt"
	"strings"
)

// PinyinConverter splits Chinese text into per-character pinyin syllables
// without tone marks. Non-Chinese characters come back as their own entries.
type PinyinConverter interface {
	Convert(text string) []string
}

// PhonemeTranscriber turns kana into space-separated romaji phonemes. When
// kana is true the transcriber returns a kana pronunciation instead. Pauses
// are reported as the token "pau".
type PhonemeTranscriber interface {
	Transcribe(text string, kana bool) (string, error)
}

// Romanizer converts Chinese text to Japanese romaji by way of pinyin and
// kana. It holds no mutable state and is safe for concurrent use.
type Romanizer struct {
	kana     KanaMap
	pinyin   PinyinConverter
	phonemes PhonemeTranscriber
}

// NewRomanizer wires a Romanizer from its three collaborators.
func NewRomanizer(kana KanaMap, py PinyinConverter, ph PhonemeTranscriber) (*Romanizer, error) {
	if len(kana) == 0 {
		return nil, errors.New("romanizer: kana map is empty")
	}
	if py == nil {
		return nil, errors.New("romanizer: pinyin converter is nil")
	}
	if ph == nil {
		return nil, errors.New("romanizer: phoneme transcriber is nil")
	}
	return &Romanizer{kana: kana, pinyin: py, phonemes: ph}, nil
}

// kanaSequence converts text to pinyin and looks every syllable up in the
// kana map. The first unmapped syllable aborts the conversion.
func (r *Romanizer) kanaSequence(text string) ([]string, error) {
	syllables := r.pinyin.Convert(text)
	out := make([]string, 0, len(syllables))
	for _, py := range syllables {
		kn, err := r.kana.Lookup(py)
		if err != nil {
			return nil, err
		}
		out = append(out, kn)
	}
	return out, nil
}

// Romanize transcribes the whole kana string in one pass. Pauses become
// commas, spaces are removed, and a period is appended, so the result always
// ends with ".".
func (r *Romanizer) Romanize(text string) (string, error) {
	kana, err := r.kanaSequence(text)
	if err != nil {
		return "", err
	}

	romaji, err := r.phonemes.Transcribe(strings.Join(kana, ""), false)
	if err != nil {
		return "", fmt.Errorf("transcribe kana: %w", err)
	}

	romaji = strings.ReplaceAll(romaji, "pau", ",")
	romaji = strings.ReplaceAll(romaji, " ", "")
	return romaji + ".", nil
}

// RomanizeTokenized transcribes syllable by syllable. Syllables are separated
// by one space, except that no space precedes mapped punctuation. The final
// syllable has no successor and is treated as not followed by punctuation.
func (r *Romanizer) RomanizeTokenized(text string) (string, error) {
	kana, err := r.kanaSequence(text)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, kn := range kana {
		if p, ok := PunctuationFor(kn); ok {
			b.WriteString(p)
		} else {
			rmj, err := r.phonemes.Transcribe(kn, false)
			if err != nil {
				return "", fmt.Errorf("transcribe syllable %d: %w", i, err)
			}
			b.WriteString(strings.ReplaceAll(rmj, " ", ""))
		}

		if !nextIsPunctuation(kana, i) {
			b.WriteByte(' ')
		}
	}

	out := b.String()
	if out == "" {
		return out, nil
	}
	// Drop the separator left after the last syllable.
	return out[:len(out)-1], nil
}

func nextIsPunctuation(kana []string, i int) bool {
	if i+1 >= len(kana) {
		return false
	}
	_, ok := PunctuationFor(kana[i+1])
	return ok
}
