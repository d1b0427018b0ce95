package model

import (
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// Language selects the grammar a source is parsed with.
type Language string

const (
	// JavaScript covers .js, .jsx, .mjs and .cjs files.
	JavaScript Language = "javascript"
	// TypeScript covers .ts, .mts and .cts files.
	TypeScript Language = "typescript"
	// TSX covers .tsx files.
	TSX Language = "tsx"
)

var languageByExtension = map[string]Language{
	".js":  JavaScript,
	".jsx": JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".ts":  TypeScript,
	".mts": TypeScript,
	".cts": TypeScript,
	".tsx": TSX,
}

// LanguageFor picks the language from the file extension.
// Unknown extensions are parsed as JavaScript.
func LanguageFor(path Path) Language {
	if lang, ok := languageByExtension[strings.ToLower(filepath.Ext(string(path)))]; ok {
		return lang
	}

	return JavaScript
}

// IsSourceFile reports whether path has a JavaScript or TypeScript extension.
func IsSourceFile(path Path) bool {
	_, ok := languageByExtension[strings.ToLower(filepath.Ext(string(path)))]
	return ok
}

// IsTypeScript reports whether the language accepts type annotations.
func (l Language) IsTypeScript() bool {
	return l == TypeScript || l == TSX
}

// File represents a source code file.
type File struct {
	Path Path
	Hash string
}

// Source is one file handed to the engine.
type Source struct {
	Origin   *File
	Language Language
	Content  []byte
}

// Outcome is a refactoring applied to a source.
type Outcome struct {
	Path     Path
	Before   string
	After    string
	Cursor   *Position
	Warnings []Reason
	Edits    int
}

// Changed reports whether the refactoring modified the text.
func (o Outcome) Changed() bool {
	return o.Before != o.After
}
