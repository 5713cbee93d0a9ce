// Package numbers spells out numerals embedded in English text: thousands
// separators, pound and dollar amounts, decimals, ordinals, years and plain
// cardinals, in that order.
package numbers

import (
	"regexp"
	"strconv"
	"strings"

	ntw "moul.io/number-to-words"
)

var (
	commaNumberRe   = regexp.MustCompile(`[0-9][0-9,]+[0-9]`)
	poundsRe        = regexp.MustCompile(`£([0-9,]*[0-9]+)`)
	dollarsRe       = regexp.MustCompile(`\$([0-9.,]*[0-9]+)`)
	decimalNumberRe = regexp.MustCompile(`[0-9]+\.[0-9]+`)
	ordinalRe       = regexp.MustCompile(`[0-9]+(?:st|nd|rd|th)`)
	numberRe        = regexp.MustCompile(`[0-9]+`)
)

// Normalize rewrites every numeral in s as words.
func Normalize(s string) string {
	s = commaNumberRe.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ReplaceAll(m, ",", "")
	})
	s = poundsRe.ReplaceAllString(s, "$1 pounds")
	s = dollarsRe.ReplaceAllStringFunc(s, expandDollars)
	s = decimalNumberRe.ReplaceAllStringFunc(s, func(m string) string {
		return strings.Replace(m, ".", " point ", 1)
	})
	s = ordinalRe.ReplaceAllStringFunc(s, expandOrdinal)
	s = numberRe.ReplaceAllStringFunc(s, expandNumber)
	return s
}

// expandDollars receives the whole "$..." match. Digits are left in place;
// the final integer pass spells them out.
func expandDollars(m string) string {
	amount := strings.TrimPrefix(m, "$")
	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return amount + " dollars"
	}

	dollars := atoiOrZero(parts[0])
	cents := 0
	if len(parts) > 1 {
		cents = atoiOrZero(parts[1])
	}

	switch {
	case dollars != 0 && cents != 0:
		return strconv.Itoa(dollars) + " " + plural(dollars, "dollar") + ", " +
			strconv.Itoa(cents) + " " + plural(cents, "cent")
	case dollars != 0:
		return strconv.Itoa(dollars) + " " + plural(dollars, "dollar")
	case cents != 0:
		return strconv.Itoa(cents) + " " + plural(cents, "cent")
	default:
		return "zero dollars"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// atoiOrZero parses a run of digits that may still carry commas.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

func expandOrdinal(m string) string {
	n, err := strconv.Atoi(m[:len(m)-2])
	if err != nil {
		return m
	}
	return Ordinal(n)
}

func expandNumber(m string) string {
	n, err := strconv.Atoi(m)
	if err != nil {
		return digitByDigit(m)
	}
	if n > 1000 && n < 3000 {
		return Year(n)
	}
	return Cardinal(n)
}

// Cardinal returns n in words, e.g. 42 → "forty-two".
func Cardinal(n int) string {
	// number-to-words renders 0 as an empty string.
	if n == 0 {
		return "zero"
	}
	return ntw.IntegerToEnUs(n)
}

// Year reads n the way years are spoken: 2000 → "two thousand",
// 2005 → "two thousand five", 1900 → "nineteen hundred",
// 1905 → "nineteen oh five", 1984 → "nineteen eighty-four".
func Year(n int) string {
	switch {
	case n == 2000:
		return "two thousand"
	case n > 2000 && n < 2010:
		return "two thousand " + Cardinal(n%100)
	case n%100 == 0:
		return Cardinal(n/100) + " hundred"
	case n%100 < 10:
		return Cardinal(n/100) + " oh " + Cardinal(n%100)
	default:
		return Cardinal(n/100) + " " + Cardinal(n%100)
	}
}

var irregularOrdinals = map[string]string{
	"one":    "first",
	"two":    "second",
	"three":  "third",
	"five":   "fifth",
	"eight":  "eighth",
	"nine":   "ninth",
	"twelve": "twelfth",
}

// Ordinal returns n as an ordinal word, e.g. 21 → "twenty-first".
func Ordinal(n int) string {
	words := Cardinal(n)

	cut := strings.LastIndexAny(words, " -")
	head, last := words[:cut+1], words[cut+1:]

	if o, ok := irregularOrdinals[last]; ok {
		return head + o
	}
	if strings.HasSuffix(last, "y") {
		return head + strings.TrimSuffix(last, "y") + "ieth"
	}
	return head + last + "th"
}

var digitWords = [...]string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

func digitByDigit(digits string) string {
	words := make([]string, 0, len(digits))
	for _, r := range digits {
		if r >= '0' && r <= '9' {
			words = append(words, digitWords[r-'0'])
		}
	}
	return strings.Join(words, " ")
}
