// Package batch turns an input path into file jobs and runs them one at a
// time.
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"obfuscate-logs/internal/models"
)

var (
	ErrNoPath          = errors.New("you must specify a path to a file or folder")
	ErrPathNotFound    = errors.New("the specified path does not exist")
	ErrUnsupportedPath = errors.New("the specified path is neither a file nor a folder")
)

// Suffix is inserted before the extension of every output file.
const Suffix = "_obfuscated"

// Plan is the ordered list of files one run will process.
type Plan struct {
	Input     string
	OutputDir string
	IsDir     bool
	// Folders counts subdirectories below Input, not Input itself.
	Folders int
	Jobs    []models.FileJob
}

// Inspect checks that path names a regular file or a directory.
func Inspect(path string) (isDir bool, err error) {
	if path == "" {
		return false, ErrNoPath
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return false, err
	}
	switch {
	case info.IsDir():
		return true, nil
	case info.Mode().IsRegular():
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrUnsupportedPath, path)
	}
}

// DefaultOutputDir is the file's own directory, or the folder itself.
func DefaultOutputDir(path string) (string, error) {
	isDir, err := Inspect(path)
	if err != nil {
		return "", err
	}
	if isDir {
		return path, nil
	}
	return filepath.Dir(path), nil
}

// ObfuscatedName inserts Suffix before the extension of base:
// "app.log" becomes "app_obfuscated.log". Leading dots are not treated as
// an extension separator, so ".env" becomes ".env_obfuscated".
func ObfuscatedName(base string) string {
	stem := strings.TrimLeft(base, ".")
	dots := base[:len(base)-len(stem)]
	ext := filepath.Ext(stem)
	return dots + strings.TrimSuffix(stem, ext) + Suffix + ext
}

// NewPlan builds the jobs for input. Folder trees are mirrored under
// outputDir. Paths in skip, such as the run's own log file, are left out,
// and so is outputDir when it lies strictly inside the input tree.
func NewPlan(input, outputDir string, skip ...string) (*Plan, error) {
	isDir, err := Inspect(input)
	if err != nil {
		return nil, err
	}

	p := &Plan{Input: input, OutputDir: outputDir, IsDir: isDir}
	if !isDir {
		p.Jobs = []models.FileJob{{
			SourcePath:      input,
			DestinationPath: filepath.Join(outputDir, ObfuscatedName(filepath.Base(input))),
		}}
		p.number()
		return p, nil
	}

	w := &walker{
		root:      input,
		outputDir: outputDir,
		skip:      make(map[string]bool, len(skip)),
		plan:      p,
	}
	for _, s := range skip {
		if s != "" {
			w.skip[absPath(s)] = true
		}
	}
	if nested := absPath(outputDir); nested != absPath(input) && within(nested, absPath(input)) {
		w.skipDir = nested
	}

	if err := w.walk(input, "."); err != nil {
		return nil, err
	}
	p.number()
	return p, nil
}

func (p *Plan) number() {
	for i := range p.Jobs {
		p.Jobs[i].Index = i + 1
		p.Jobs[i].Total = len(p.Jobs)
	}
}

type walker struct {
	root      string
	outputDir string
	skip      map[string]bool
	skipDir   string
	plan      *Plan
}

// walk lists a directory's files before descending into its
// subdirectories, both in lexical order.
func (w *walker) walk(dir, rel string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read folder %s: %w", dir, err)
	}

	var subdirs []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if w.skip[absPath(path)] {
			continue
		}

		isDir := e.IsDir()
		if e.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			if info.IsDir() {
				// Counted but not followed.
				w.plan.Folders++
				continue
			}
		}

		if isDir {
			if w.skipDir != "" && absPath(path) == w.skipDir {
				continue
			}
			w.plan.Folders++
			subdirs = append(subdirs, e.Name())
			continue
		}
		if !e.Type().IsRegular() && e.Type()&os.ModeSymlink == 0 {
			continue
		}

		w.plan.Jobs = append(w.plan.Jobs, models.FileJob{
			SourcePath:      path,
			DestinationPath: filepath.Join(w.outputDir, rel, ObfuscatedName(e.Name())),
		})
	}

	for _, name := range subdirs {
		if err := w.walk(filepath.Join(dir, name), filepath.Join(rel, name)); err != nil {
			return err
		}
	}
	return nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return filepath.Clean(abs)
	}
	return filepath.Clean(p)
}

func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
