package pipeline

import (
	"strings"

	"master-sync/core/reconcile"
)

// Config holds the settings shared by every run.
type Config struct {
	// TrackedColumns lists the columns compared for the change report.
	TrackedColumns []string `mapstructure:"tracked_columns" default:"Sec Faculty Info,Sec All Faculty Last Names,Total FTE,FTE Count"`
	// KeyCandidates lists conventional key names in priority order.
	KeyCandidates []string `mapstructure:"key_candidates" default:"Sec Name,Section Name,ID,Section,Name"`
	// InferNumbers parses numeric-looking CSV cells as numbers.
	InferNumbers bool `mapstructure:"infer_numbers" default:"false"`
	// PreviewRows is how many incoming rows an upload preview shows.
	PreviewRows int `mapstructure:"preview_rows" default:"10"`
}

// DefaultConfig returns the built-in column lists with number inference off.
func DefaultConfig() Config {
	rules := reconcile.DefaultRules()
	return Config{
		TrackedColumns: rules.TrackedColumns,
		KeyCandidates:  rules.KeyCandidates,
		PreviewRows:    10,
	}
}

// Rules returns the column lists trimmed, with empty entries dropped.
func (c Config) Rules() reconcile.Rules {
	return reconcile.Rules{
		TrackedColumns: cleanList(c.TrackedColumns),
		KeyCandidates:  cleanList(c.KeyCandidates),
	}
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
