package text

import (
	"strings"
	"testing"
	"unicode"
)

func TestExpandAbbreviations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "mixed case with trailing text untouched",
			input: "Mr. and Mrs. Smith, Dr. Lee",
			want:  "mister and misess Smith, doctor Lee",
		},
		{
			name:  "no space after period",
			input: "mr.smith",
			want:  "mistersmith",
		},
		{
			name:  "no boundary before abbreviation",
			input: "amr. x",
			want:  "amr. x",
		},
		{
			name:  "abbreviation without period is kept",
			input: "mr smith",
			want:  "mr smith",
		},
		{
			name:  "plural form is not eaten by the singular rule",
			input: "Drs. Who",
			want:  "doctors Who",
		},
		{
			name:  "several rules in one string",
			input: "St. Louis, Ft. Worth, Capt. Hook Esq. of Acme Co. Ltd.",
			want:  "saint Louis, fort Worth, captain Hook esquire of Acme company limited",
		},
		{
			name:  "military ranks",
			input: "maj. gen. lt. col. sgt. rev. hon. jr.",
			want:  "major general lieutenant colonel sergeant reverend honorable junior",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandAbbreviations(tt.input)
			if got != tt.want {
				t.Errorf("ExpandAbbreviations(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAbbreviations_DeclaredOrder(t *testing.T) {
	got := Abbreviations()
	if len(got) != 18 {
		t.Fatalf("len(Abbreviations()) = %d, want 18", len(got))
	}

	if got[0].Abbrev != "mrs" || got[1].Abbrev != "mr" {
		t.Errorf("first rules = %q, %q; want mrs before mr", got[0].Abbrev, got[1].Abbrev)
	}

	for _, a := range got {
		if strings.Contains(a.Expansion, ".") {
			t.Errorf("expansion %q for %q contains a period", a.Expansion, a.Abbrev)
		}
	}
}

func TestLowercase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello world"},
		{"ÀÉÎ Ünïcode", "àéî ünïcode"},
		{"already lower", "already lower"},
		{"MR. 42", "mr. 42"},
		{"", ""},
	}

	for _, tt := range tests {
		got := Lowercase(tt.input)
		if got != tt.want {
			t.Errorf("Lowercase(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if again := Lowercase(got); again != got {
			t.Errorf("Lowercase not idempotent: %q -> %q", got, again)
		}
	}
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single spaces unchanged", "a b c", "a b c"},
		{"runs of spaces", "a    b", "a b"},
		{"mixed whitespace kinds", "a\t\tb\nc\v d  e", "a b c d e"},
		{"edges collapsed not trimmed", "  Hello   World  ", " Hello World "},
		{"information separators", "a\x1c\x1fb", "a b"},
		{"crlf", "line\r\nnext", "line next"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollapseWhitespace(tt.input)
			if got != tt.want {
				t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCollapseWhitespace_NoAdjacentWhitespace(t *testing.T) {
	inputs := []string{
		" \t\n\r\v\f ",
		"x  　 y",
		"\n\nparagraph\n\n\nparagraph\n",
		"tabs\t\t\tand  spaces",
	}

	for _, in := range inputs {
		got := CollapseWhitespace(in)

		prevSpace := false
		for _, r := range got {
			space := unicode.IsSpace(r)
			if space && prevSpace {
				t.Errorf("CollapseWhitespace(%q) = %q has consecutive whitespace", in, got)
				break
			}
			prevSpace = space
		}

		if again := CollapseWhitespace(got); again != got {
			t.Errorf("CollapseWhitespace not idempotent: %q -> %q", got, again)
		}
	}
}

func TestConvertToASCII(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Héllo wörld", "Hello world"},
		{"café", "cafe"},
		{"naïve façade", "naive facade"},
		{"plain ascii", "plain ascii"},
		{"", ""},
	}

	for _, tt := range tests {
		got := ConvertToASCII(tt.input)
		if got != tt.want {
			t.Errorf("ConvertToASCII(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestConvertToASCII_OutputIsASCII(t *testing.T) {
	for _, in := range []string{"Ελληνικά", "Русский", "北京", "Ωmega ≥ 3"} {
		got := ConvertToASCII(in)
		for _, r := range got {
			if r > unicode.MaxASCII {
				t.Errorf("ConvertToASCII(%q) = %q contains non-ASCII %q", in, got, r)
				break
			}
		}
	}
}
