package config

import (
	"github.com/Francis-Komizu/Tacotron2/internal/text"
)

// NormalizeCleaners splits a comma-delimited cleaner list and resolves each
// entry, returning canonical pipeline names ("english_cleaners" becomes
// "english"). Names are matched exactly after trimming.
func NormalizeCleaners(raw string) ([]string, error) {
	names := text.SplitNames(raw)
	if len(names) == 0 {
		return nil, text.ErrNoCleaners
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		p, err := text.ParsePipeline(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p.String())
	}
	return out, nil
}
