// Package adapter contains the infrastructure adapters of the jsinline CLI:
// file system access, parsing and report persistence.
package adapter

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	ignore "github.com/sabhiram/go-gitignore"

	m "jsinline.dev/pkg/jsinline/internal/model"
)

// SourceFSAdapter abstracts the file system operations the domain layer
// relies on, so workflows can be tested without touching the disk.
type SourceFSAdapter interface {
	// Walk traverses root. When recursive is false only the files of root
	// itself are visited.
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// Sources returns the JavaScript and TypeScript files under paths,
	// sorted, skipping what .gitignore files and the exclude patterns name.
	Sources(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Path, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns the SHA-256 fingerprint of the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// WriteFile replaces the content of path, keeping its permissions when
	// the file exists.
	WriteFile(path m.Path, content []byte) error
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

const defaultFileMode os.FileMode = 0o644

var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// Sources collects the source files under paths. A path ending in "/..."
// is walked recursively; a plain directory only contributes its own files.
func (a *LocalSourceFSAdapter) Sources(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Path, error) {
	if len(paths) == 0 {
		paths = []m.Path{"."}
	}

	excluded := ignore.CompileIgnoreLines(exclude...)
	seen := make(map[m.Path]bool)

	var out []m.Path

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		root, recursive := splitRecursive(path)

		info, err := a.FileInfo(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			if !seen[root] {
				seen[root] = true
				out = append(out, root)
			}

			continue
		}

		gitignore := loadGitignore(root)

		err = a.Walk(root, recursive, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			rel, relErr := filepath.Rel(string(root), p)
			if relErr != nil {
				return relErr
			}

			if info.IsDir() {
				if p != string(root) && (skippedDirs[info.Name()] || matches(gitignore, rel+"/") || excluded.MatchesPath(rel+"/")) {
					return filepath.SkipDir
				}

				return nil
			}

			if !m.IsSourceFile(m.Path(p)) || matches(gitignore, rel) || excluded.MatchesPath(rel) {
				return nil
			}

			if !seen[m.Path(p)] {
				seen[m.Path(p)] = true
				out = append(out, m.Path(p))
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out, nil
}

func splitRecursive(path m.Path) (m.Path, bool) {
	p := filepath.ToSlash(string(path))

	switch {
	case p == "...":
		return ".", true
	case len(p) > 4 && p[len(p)-4:] == "/...":
		return m.Path(filepath.FromSlash(p[:len(p)-4])), true
	}

	return path, false
}

func loadGitignore(root m.Path) *ignore.GitIgnore {
	gitignore, err := ignore.CompileIgnoreFile(filepath.Join(string(root), ".gitignore"))
	if err != nil {
		return nil
	}

	return gitignore
}

func matches(gitignore *ignore.GitIgnore, rel string) bool {
	return gitignore != nil && gitignore.MatchesPath(rel)
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// WriteFile writes content to path.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte) error {
	perm := defaultFileMode

	info, err := os.Stat(string(path))
	switch {
	case err == nil:
		perm = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	return os.WriteFile(string(path), content, perm)
}
