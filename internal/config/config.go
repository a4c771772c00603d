// Package config holds process-wide constants and small settings shared
// across the lexer, parser, evaluator and CLI, the way the teacher's own
// internal/config package does.
package config

// Version is the current slovo interpreter version.
var Version = "0.1.0"

// SourceFileExt is the primary recognized script extension.
const SourceFileExt = ".слово"

// SourceFileExtensions are all recognized source file extensions; imports
// are resolved by trying each in turn against the importing file's
// directory, matching the teacher's multi-extension detection.
var SourceFileExtensions = []string{".слово", ".slovo"}

// TrimSourceExt removes any recognized source extension from a filename.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if path ends with any recognized extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsREPL is set once at startup by the CLI when running the interactive
// prompt. No other code reads it at present.
var IsREPL = false

// Built-in free function names (spec §6 "print(expr)"/"input(prompt)" plus
// the §9 open-question #2 resolution, a dedicated numeric coercion).
const (
	PrintFuncName  = "печать"
	InputFuncName  = "ввод"
	NumberFuncName = "число"
)
