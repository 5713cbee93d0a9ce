package phoneme

import "strings"

// monographs holds single-kana phonemes in OpenJTalk notation.
var monographs = map[rune]string{
	'ア': "a", 'イ': "i", 'ウ': "u", 'エ': "e", 'オ': "o",
	'カ': "k a", 'キ': "k i", 'ク': "k u", 'ケ': "k e", 'コ': "k o",
	'ガ': "g a", 'ギ': "g i", 'グ': "g u", 'ゲ': "g e", 'ゴ': "g o",
	'サ': "s a", 'シ': "sh i", 'ス': "s u", 'セ': "s e", 'ソ': "s o",
	'ザ': "z a", 'ジ': "j i", 'ズ': "z u", 'ゼ': "z e", 'ゾ': "z o",
	'タ': "t a", 'チ': "ch i", 'ツ': "ts u", 'テ': "t e", 'ト': "t o",
	'ダ': "d a", 'ヂ': "j i", 'ヅ': "z u", 'デ': "d e", 'ド': "d o",
	'ナ': "n a", 'ニ': "n i", 'ヌ': "n u", 'ネ': "n e", 'ノ': "n o",
	'ハ': "h a", 'ヒ': "h i", 'フ': "f u", 'ヘ': "h e", 'ホ': "h o",
	'バ': "b a", 'ビ': "b i", 'ブ': "b u", 'ベ': "b e", 'ボ': "b o",
	'パ': "p a", 'ピ': "p i", 'プ': "p u", 'ペ': "p e", 'ポ': "p o",
	'マ': "m a", 'ミ': "m i", 'ム': "m u", 'メ': "m e", 'モ': "m o",
	'ヤ': "y a", 'ユ': "y u", 'ヨ': "y o",
	'ラ': "r a", 'リ': "r i", 'ル': "r u", 'レ': "r e", 'ロ': "r o",
	'ワ': "w a", 'ヰ': "i", 'ヱ': "e", 'ヲ': "o",
	'ン': "N", 'ッ': "cl", 'ヴ': "v u",
	'ァ': "a", 'ィ': "i", 'ゥ': "u", 'ェ': "e", 'ォ': "o",
	'ャ': "y a", 'ュ': "y u", 'ョ': "y o", 'ヮ': "w a",
}

// digraphs holds two-kana combinations that read as one mora.
var digraphs = buildDigraphs()

func buildDigraphs() map[string]string {
	d := map[string]string{
		"ティ": "t i", "ディ": "d i", "トゥ": "t u", "ドゥ": "d u",
		"テュ": "ty u", "デュ": "dy u",
		"ファ": "f a", "フィ": "f i", "フェ": "f e", "フォ": "f o", "フュ": "fy u",
		"ウィ": "w i", "ウェ": "w e", "ウォ": "w o",
		"ツァ": "ts a", "ツィ": "ts i", "ツェ": "ts e", "ツォ": "ts o",
		"ヴァ": "v a", "ヴィ": "v i", "ヴェ": "v e", "ヴォ": "v o",
		"イェ": "y e", "スィ": "s i", "ズィ": "z i",
	}

	palatal := map[rune]string{
		'キ': "ky", 'ギ': "gy", 'シ': "sh", 'ジ': "j", 'チ': "ch", 'ヂ': "j",
		'ニ': "ny", 'ヒ': "hy", 'ビ': "by", 'ピ': "py", 'ミ': "my", 'リ': "ry",
	}
	small := map[rune]string{'ャ': "a", 'ュ': "u", 'ェ': "e", 'ョ': "o"}
	for base, consonant := range palatal {
		for s, vowel := range small {
			d[string([]rune{base, s})] = consonant + " " + vowel
		}
	}
	return d
}

const longVowelMark = 'ー'

func isVowel(p string) bool {
	switch p {
	case "a", "i", "u", "e", "o":
		return true
	}
	return false
}

// katakanaPhonemes converts katakana to phonemes. The long-vowel mark repeats
// the preceding vowel; runes with no reading are skipped.
func katakanaPhonemes(s string) []string {
	rs := []rune(toKatakana(s))
	out := make([]string, 0, len(rs)*2)

	for i := 0; i < len(rs); i++ {
		if i+1 < len(rs) {
			if ph, ok := digraphs[string(rs[i:i+2])]; ok {
				out = append(out, strings.Fields(ph)...)
				i++
				continue
			}
		}

		if rs[i] == longVowelMark {
			if n := len(out); n > 0 && isVowel(out[n-1]) {
				out = append(out, out[n-1])
			}
			continue
		}

		if ph, ok := monographs[rs[i]]; ok {
			out = append(out, strings.Fields(ph)...)
		}
	}
	return out
}

// toKatakana folds hiragana to katakana and leaves everything else alone.
func toKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'ぁ' && r <= 'ゖ' {
			return r + ('ァ' - 'ぁ')
		}
		return r
	}, s)
}
