package text

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Francis-Komizu/Tacotron2/internal/numbers"
)

var (
	// ErrUnknownPipeline is returned for a cleaner name with no registered pipeline.
	ErrUnknownPipeline = errors.New("unknown cleaner name")
	// ErrRomanizerUnavailable is returned when a Chinese pipeline is requested
	// from a Cleaner built without a Romanizer.
	ErrRomanizerUnavailable = errors.New("chinese cleaners require a kana map")
	// ErrNoCleaners is returned by CleanSequence when no names are given.
	ErrNoCleaners = errors.New("no cleaners selected")
)

// Pipeline identifies one of the fixed cleaner pipelines.
type Pipeline int

const (
	PipelineBasic Pipeline = iota
	PipelineTransliteration
	PipelineEnglish
	PipelineChinese
	PipelineChineseTokenization
)

var pipelineNames = [...]string{
	PipelineBasic:               "basic",
	PipelineTransliteration:     "transliteration",
	PipelineEnglish:             "english",
	PipelineChinese:             "chinese",
	PipelineChineseTokenization: "chinese_tokenization",
}

// aliasSuffix turns a pipeline name into the hparam-style alias the
// pipelines are also known by, e.g. "english_cleaners".
const aliasSuffix = "_cleaners"

func (p Pipeline) String() string {
	if p < 0 || int(p) >= len(pipelineNames) {
		return fmt.Sprintf("Pipeline(%d)", int(p))
	}
	return pipelineNames[p]
}

// Alias returns the hparam-style name of p.
func (p Pipeline) Alias() string {
	return p.String() + aliasSuffix
}

// Pipelines returns every pipeline in declaration order.
func Pipelines() []Pipeline {
	out := make([]Pipeline, len(pipelineNames))
	for i := range pipelineNames {
		out[i] = Pipeline(i)
	}
	return out
}

// ParsePipeline resolves a cleaner name by exact match against the pipeline
// names and their "_cleaners" aliases.
func ParsePipeline(name string) (Pipeline, error) {
	for i, n := range pipelineNames {
		if name == n || name == n+aliasSuffix {
			return Pipeline(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPipeline, name)
}

// Transform is one step of a pipeline.
type Transform func(string) (string, error)

// NumberExpander rewrites numerals embedded in text as spoken words.
type NumberExpander func(string) string

// Transliterator maps arbitrary Unicode text to ASCII.
type Transliterator func(string) string

// Cleaner runs cleaner pipelines. It is immutable once built and safe for
// concurrent use.
type Cleaner struct {
	numbers   NumberExpander
	ascii     Transliterator
	romanizer *Romanizer
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithNumberExpander sets the numeral expansion used by the english pipeline.
func WithNumberExpander(fn NumberExpander) Option {
	return func(c *Cleaner) { c.numbers = fn }
}

// WithTransliterator overrides ConvertToASCII.
func WithTransliterator(fn Transliterator) Option {
	return func(c *Cleaner) { c.ascii = fn }
}

// WithRomanizer enables the chinese pipelines.
func WithRomanizer(r *Romanizer) Option {
	return func(c *Cleaner) { c.romanizer = r }
}

// NewCleaner returns a Cleaner using numbers.Normalize and ConvertToASCII
// unless overridden. The chinese pipelines stay disabled until WithRomanizer.
func NewCleaner(opts ...Option) *Cleaner {
	c := &Cleaner{
		numbers: numbers.Normalize,
		ascii:   ConvertToASCII,
	}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

func pure(fn func(string) string) Transform {
	return func(s string) (string, error) { return fn(s), nil }
}

// Steps returns the ordered transforms of p.
func (c *Cleaner) Steps(p Pipeline) ([]Transform, error) {
	switch p {
	case PipelineBasic:
		return []Transform{pure(Lowercase), pure(CollapseWhitespace)}, nil
	case PipelineTransliteration:
		return []Transform{pure(c.ascii), pure(Lowercase), pure(CollapseWhitespace)}, nil
	case PipelineEnglish:
		return []Transform{
			pure(c.ascii),
			pure(Lowercase),
			pure(c.numbers),
			pure(ExpandAbbreviations),
			pure(CollapseWhitespace),
		}, nil
	case PipelineChinese:
		if c.romanizer == nil {
			return nil, ErrRomanizerUnavailable
		}
		return []Transform{c.romanizer.Romanize}, nil
	case PipelineChineseTokenization:
		if c.romanizer == nil {
			return nil, ErrRomanizerUnavailable
		}
		return []Transform{c.romanizer.RomanizeTokenized}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPipeline, p)
	}
}

// Supports reports whether p can run on this Cleaner.
func (c *Cleaner) Supports(p Pipeline) bool {
	_, err := c.Steps(p)
	return err == nil
}

// Clean runs text through pipeline p.
func (c *Cleaner) Clean(text string, p Pipeline) (string, error) {
	steps, err := c.Steps(p)
	if err != nil {
		return "", err
	}

	for _, step := range steps {
		text, err = step(text)
		if err != nil {
			return "", fmt.Errorf("%s cleaners: %w", p, err)
		}
	}
	return text, nil
}

// CleanNamed runs text through the pipeline registered under name.
func (c *Cleaner) CleanNamed(text, name string) (string, error) {
	p, err := ParsePipeline(name)
	if err != nil {
		return "", err
	}
	return c.Clean(text, p)
}

// CleanSequence applies the named pipelines one after another. Every name is
// resolved before any text is processed.
func (c *Cleaner) CleanSequence(text string, names ...string) (string, error) {
	if len(names) == 0 {
		return "", ErrNoCleaners
	}

	pipelines := make([]Pipeline, 0, len(names))
	for _, name := range names {
		p, err := ParsePipeline(name)
		if err != nil {
			return "", err
		}
		pipelines = append(pipelines, p)
	}

	var err error
	for _, p := range pipelines {
		text, err = c.Clean(text, p)
		if err != nil {
			return "", err
		}
	}
	return text, nil
}

// SplitNames splits a comma-delimited cleaner list, dropping blank entries.
// Names are not otherwise normalized.
func SplitNames(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
