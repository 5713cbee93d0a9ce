// Package doctor provides environment preflight checks for tacotron-text.
package doctor

import (
	"fmt"
	"io"

	"github.com/Francis-Komizu/Tacotron2/internal/text"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// ProbeFunc returns a short description of a working component or an error
// if the component is unavailable.
type ProbeFunc func() (string, error)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// Cleaners are the configured cleaner names, in order.
	Cleaners []string
	// KanaMapPath is the configured kana map. Empty skips the romanizer checks.
	KanaMapPath string
	// LoadKanaMap loads the map at path and reports its syllable count.
	LoadKanaMap func(path string) (int, error)
	// Pinyin runs a sample pinyin conversion.
	Pinyin ProbeFunc
	// Transcriber runs a sample kana transcription through the Japanese dictionary.
	Transcriber ProbeFunc
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	romanizer := cfg.KanaMapPath != ""

	// ---- cleaner names ----------------------------------------------------
	if len(cfg.Cleaners) == 0 {
		res.fail("cleaners: none configured")
		fmt.Fprintf(w, "%s cleaners: none configured\n", FailMark)
	}
	for _, name := range cfg.Cleaners {
		p, err := text.ParsePipeline(name)
		switch {
		case err != nil:
			res.fail(fmt.Sprintf("cleaner %q: %v", name, err))
			fmt.Fprintf(w, "%s cleaner %s: unknown\n", FailMark, name)
		case needsRomanizer(p) && !romanizer:
			res.fail(fmt.Sprintf("cleaner %q: %v", name, text.ErrRomanizerUnavailable))
			fmt.Fprintf(w, "%s cleaner %s: no kana map configured\n", FailMark, name)
		default:
			fmt.Fprintf(w, "%s cleaner: %s\n", PassMark, p)
		}
	}

	// ---- kana map ---------------------------------------------------------
	if !romanizer {
		fmt.Fprintf(w, "%s kana map: not configured (chinese cleaners disabled)\n", PassMark)
		fmt.Fprintf(w, "%s pinyin: skipped\n", PassMark)
		fmt.Fprintf(w, "%s japanese dictionary: skipped\n", PassMark)
		return res
	}

	if cfg.LoadKanaMap == nil {
		res.fail("kana map: no loader configured")
		fmt.Fprintf(w, "%s kana map %s: no loader configured\n", FailMark, cfg.KanaMapPath)
	} else if n, err := cfg.LoadKanaMap(cfg.KanaMapPath); err != nil {
		res.fail(fmt.Sprintf("kana map %q: %v", cfg.KanaMapPath, err))
		fmt.Fprintf(w, "%s kana map %s: %v\n", FailMark, cfg.KanaMapPath, err)
	} else {
		fmt.Fprintf(w, "%s kana map: %s (%d syllables)\n", PassMark, cfg.KanaMapPath, n)
	}

	// ---- collaborators ----------------------------------------------------
	probe(&res, w, "pinyin", cfg.Pinyin)
	probe(&res, w, "japanese dictionary", cfg.Transcriber)

	return res
}

func probe(res *Result, w io.Writer, label string, fn ProbeFunc) {
	if fn == nil {
		res.fail(label + ": no probe configured")
		fmt.Fprintf(w, "%s %s: no probe configured\n", FailMark, label)
		return
	}

	desc, err := fn()
	if err != nil {
		res.fail(fmt.Sprintf("%s: %v", label, err))
		fmt.Fprintf(w, "%s %s: unavailable (%v)\n", FailMark, label, err)
		return
	}
	fmt.Fprintf(w, "%s %s: %s\n", PassMark, label, desc)
}

func needsRomanizer(p text.Pipeline) bool {
	return p == text.PipelineChinese || p == text.PipelineChineseTokenization
}
