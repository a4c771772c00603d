// Package modules resolves import path strings to source files on disk
// (spec §4.J: "each path is resolved relative to M's directory with the
// configured file extension"). The stateful registry and cycle detection
// live on evaluator.Interpreter itself, next to the class/function tables
// they populate — see internal/evaluator/module.go for why.
package modules

import (
	"os"
	"path/filepath"

	"github.com/funvibe/slovo/internal/config"
)

// Resolve finds the source file backing import path `importPath` as seen
// from `fromDir` (the importing file's directory), trying every
// recognized extension in turn, grounded on the teacher's
// detectPackageExtension/hasSourceFiles multi-extension probing.
func Resolve(fromDir, importPath string) (string, bool) {
	if config.HasSourceExt(importPath) {
		full := filepath.Join(fromDir, importPath)
		if fileExists(full) {
			return full, true
		}
		return "", false
	}
	for _, ext := range config.SourceFileExtensions {
		full := filepath.Join(fromDir, importPath+ext)
		if fileExists(full) {
			return full, true
		}
	}
	return "", false
}

// NameOf derives a module's name symbol text from its file path — the
// file stem, extension stripped (spec §3 Module: "name derived from the
// file stem").
func NameOf(path string) string {
	return config.TrimSourceExt(filepath.Base(path))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
