package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ReplConfig holds the `slovo repl` preferences loadable from
// `.slovorc.yaml`: prompt text, a history file, and a list of import
// directories. Only Prompt is used by the REPL; HistoryFile and
// ImportPaths are loaded but nothing reads them, so imports are resolved
// from the importing file's own directory alone.
type ReplConfig struct {
	Prompt      string   `yaml:"prompt"`
	HistoryFile string   `yaml:"history_file"`
	ImportPaths []string `yaml:"import_paths"`
}

// DefaultReplConfig is what the REPL falls back to with no rc file
// present.
func DefaultReplConfig() ReplConfig {
	return ReplConfig{Prompt: ">> "}
}

// LoadReplConfig reads `./.slovorc.yaml`, falling back to
// `~/.slovorc.yaml`, falling back to DefaultReplConfig if neither exists.
// A malformed rc file is reported rather than silently ignored.
func LoadReplConfig() (ReplConfig, error) {
	cfg := DefaultReplConfig()
	for _, path := range rcCandidates() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	return cfg, nil
}

func rcCandidates() []string {
	candidates := []string{".slovorc.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".slovorc.yaml"))
	}
	return candidates
}
