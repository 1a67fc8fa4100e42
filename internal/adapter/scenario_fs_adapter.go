// Package adapter contains the filesystem and storage adapters of the refine CLI.
package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	m "refine.dev/pkg/refine/internal/model"
)

// ScenarioSuffixes are the file name suffixes picked up when scanning
// directories. Files named explicitly are accepted whatever their name.
var ScenarioSuffixes = []string{".refine.yaml", ".refine.yml"}

// ScenarioFSAdapter hides filesystem access from the domain layer.
type ScenarioFSAdapter interface {
	// Get resolves path patterns into scenario files. A pattern ending in
	// "/..." is scanned recursively; a directory is scanned without
	// descending; a file is taken as is. Files whose path matches any of
	// the exclude regexes are skipped.
	Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.File, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns the SHA-256 fingerprint of the file at path.
	HashFile(path m.Path) (string, error)
}

// LocalScenarioFSAdapter implements ScenarioFSAdapter on the local disk.
type LocalScenarioFSAdapter struct{}

// NewLocalScenarioFSAdapter constructs a LocalScenarioFSAdapter.
func NewLocalScenarioFSAdapter() *LocalScenarioFSAdapter {
	return &LocalScenarioFSAdapter{}
}

// Get implements ScenarioFSAdapter. Results are sorted by path and
// deduplicated.
func (a *LocalScenarioFSAdapter) Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.File, error) {
	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []m.Path{"."}
	}

	seen := map[string]bool{}

	var files []m.File

	for _, p := range paths {
		root, recursive := splitPattern(string(p))

		found, err := a.scan(ctx, root, recursive)
		if err != nil {
			return nil, err
		}

		for _, path := range found {
			if seen[path] || excluded(path, excludes) {
				continue
			}

			seen[path] = true

			file, err := a.describe(path)
			if err != nil {
				return nil, err
			}

			files = append(files, file)
		}
	}

	slices.SortFunc(files, func(x, y m.File) int {
		return strings.Compare(string(x.FullPath), string(y.FullPath))
	})

	return files, nil
}

func splitPattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}

	if root, ok := strings.CutSuffix(pattern, "/..."); ok {
		if root == "" {
			root = "/"
		}

		return root, true
	}

	return pattern, false
}

func (a *LocalScenarioFSAdapter) scan(ctx context.Context, root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	if !info.IsDir() {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}

		return []string{abs}, nil
	}

	var found []string

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if path == root {
				return nil
			}

			if !recursive || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if !isScenarioFile(d.Name()) {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		found = append(found, abs)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	return found, nil
}

func isScenarioFile(name string) bool {
	for _, suffix := range ScenarioSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}

	return false
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	excludes := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, re)
	}

	return excludes, nil
}

func excluded(path string, excludes []*regexp.Regexp) bool {
	for _, re := range excludes {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

func (a *LocalScenarioFSAdapter) describe(path string) (m.File, error) {
	hash, err := a.HashFile(m.Path(path))
	if err != nil {
		return m.File{}, fmt.Errorf("hash %s: %w", path, err)
	}

	short := path
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
			short = rel
		}
	}

	return m.File{FullPath: m.Path(path), ShortPath: m.Path(short), Hash: hash}, nil
}

// ReadFile loads file contents from disk.
func (a *LocalScenarioFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalScenarioFSAdapter) HashFile(path m.Path) (string, error) {
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
