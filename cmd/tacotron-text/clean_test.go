package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/Francis-Komizu/Tacotron2/internal/testutil"
	"github.com/Francis-Komizu/Tacotron2/internal/text"
)

func TestClean_TextFlag(t *testing.T) {
	out, err := execute(t, "", "clean", "--cleaners", "basic_cleaners", "--text", "  Hello  WORLD")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}

	if out != " hello world\n" {
		t.Errorf("output = %q; want %q", out, " hello world\n")
	}
}

func TestClean_DefaultEnglishPipeline(t *testing.T) {
	out, err := execute(t, "", "clean", "--text", "Dr. Smith paid $5.")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}

	if out != "doctor smith paid five dollars.\n" {
		t.Errorf("output = %q; want %q", out, "doctor smith paid five dollars.\n")
	}
}

func TestClean_CommaSeparatedCleaners(t *testing.T) {
	out, err := execute(t, "", "clean", "--cleaners", "transliteration, basic", "--text", "Café   AU lait")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}

	if out != "cafe au lait\n" {
		t.Errorf("output = %q; want %q", out, "cafe au lait\n")
	}
}

func TestClean_Stdin(t *testing.T) {
	out, err := execute(t, "Mr. Jones\n", "clean", "--cleaners", "english")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}

	if out != "mister jones\n" {
		t.Errorf("output = %q; want %q", out, "mister jones\n")
	}
}

func TestClean_UnknownCleaner(t *testing.T) {
	_, err := execute(t, "", "clean", "--cleaners", "klingon", "--text", "hi")
	if err == nil {
		t.Fatal("expected error for unknown cleaner")
	}
}

func TestClean_ChineseWithoutKanaMap(t *testing.T) {
	_, err := execute(t, "", "clean", "--cleaners", "chinese", "--text", "你好")
	if !errors.Is(err, text.ErrRomanizerUnavailable) {
		t.Fatalf("err = %v; want ErrRomanizerUnavailable", err)
	}
}

func TestClean_ChineseTokenizationEndToEnd(t *testing.T) {
	kanaMap := testutil.WriteKanaMap(t, testutil.SampleKanaMap())

	out, err := execute(t, "", "clean",
		"--cleaners", "chinese_tokenization",
		"--paths-kana-map-path", kanaMap,
		"--text", "中文",
	)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}

	got := strings.TrimSuffix(out, "\n")
	if len(strings.Fields(got)) != 2 || strings.Contains(got, "  ") {
		t.Errorf("output = %q; want two space-separated syllables", got)
	}
}

func TestClean_ChineseLookupFailure(t *testing.T) {
	kanaMap := testutil.WriteKanaMap(t, testutil.SampleKanaMap())

	_, err := execute(t, "", "clean",
		"--cleaners", "chinese",
		"--paths-kana-map-path", kanaMap,
		"--text", "你们",
	)
	if !errors.Is(err, text.ErrLookupFailure) {
		t.Fatalf("err = %v; want ErrLookupFailure", err)
	}
}

func TestClean_FilelistFromStdin(t *testing.T) {
	in := "wavs/a.wav|Dr. Who\n\nwavs/b.wav|Mr.   X\r\n"

	out, err := execute(t, in, "clean", "--filelist", "--cleaners", "english")
	if err != nil {
		t.Fatalf("clean --filelist: %v", err)
	}

	want := "wavs/a.wav|doctor who\n\nwavs/b.wav|mister x\n"
	if out != want {
		t.Errorf("output = %q; want %q", out, want)
	}
}

func TestCleanFilelist(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		textIndex int
		want      string
		wantErr   string
	}{
		{
			name:      "two columns",
			in:        "wavs/a.wav|Dr. Who\nwavs/b.wav|Mr.   X\n",
			textIndex: 1,
			want:      "wavs/a.wav|doctor who\nwavs/b.wav|mister x\n",
		},
		{
			name:      "speaker column",
			in:        "wavs/a.wav|7|Hello  THERE\r\n",
			textIndex: 2,
			want:      "wavs/a.wav|7|hello there\n",
		},
		{
			name:      "blank lines pass through",
			in:        "a|One\n\nb|Two\n",
			textIndex: 1,
			want:      "a|one\n\nb|two\n",
		},
		{
			name:      "missing column",
			in:        "a|x\nonly-one-column\n",
			textIndex: 1,
			wantErr:   "line 2",
		},
		{
			name:      "negative index",
			in:        "a|x\n",
			textIndex: -1,
			wantErr:   "--text-index",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder

			err := cleanFilelist(text.NewCleaner(), []string{"english"}, tt.textIndex, strings.NewReader(tt.in), &out)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v; want error containing %q", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("cleanFilelist: %v", err)
			}

			if out.String() != tt.want {
				t.Errorf("output = %q; want %q", out.String(), tt.want)
			}
		})
	}
}

func TestCleanFilelist_WrapsCleanerErrorsWithLine(t *testing.T) {
	var out strings.Builder

	err := cleanFilelist(text.NewCleaner(), []string{"chinese"}, 1, strings.NewReader("a|你好\n"), &out)
	if !errors.Is(err, text.ErrRomanizerUnavailable) {
		t.Fatalf("err = %v; want ErrRomanizerUnavailable", err)
	}

	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("err = %v; want it to name line 1", err)
	}
}

func TestReadCleanText(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		stdin   string
		want    string
		wantErr bool
	}{
		{"flag wins", "  Hi  ", "ignored", "  Hi  ", false},
		{"stdin drops final newline only", "", "  Hi  \n", "  Hi  ", false},
		{"stdin crlf", "", "Hi\r\n", "Hi", false},
		{"blank flag falls back to stdin", "   ", "Hi", "Hi", false},
		{"nothing", "", " \n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readCleanText(tt.flag, strings.NewReader(tt.stdin))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("readCleanText = %q, nil; want error", got)
				}

				return
			}

			if err != nil {
				t.Fatalf("readCleanText: %v", err)
			}

			if got != tt.want {
				t.Errorf("readCleanText = %q; want %q", got, tt.want)
			}
		})
	}
}
