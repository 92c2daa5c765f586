// Package corpus provides read access to the feature specification tree:
// recursive file discovery, file reads, and exact-line tag search. It is
// the engine's only path to the filesystem; everything above it works on
// in-memory line sequences.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anders/scenarist/internal/models"
)

// Options configures a Provider.
type Options struct {
	// Extensions lists the file extensions treated as specification
	// files (e.g. ".feature", ".txt"). Matched case-insensitively.
	Extensions []string
	// ExcludeDirs lists directory names skipped during scanning.
	// Dot-directories are always skipped.
	ExcludeDirs []string
	// CacheCapacity bounds the provider's query cache. Zero selects the
	// default capacity.
	CacheCapacity int
}

// DefaultOptions returns the standard provider configuration.
func DefaultOptions() Options {
	return Options{
		Extensions:    []string{".feature", ".txt"},
		ExcludeDirs:   []string{"node_modules", "vendor"},
		CacheCapacity: 128,
	}
}

// Match is one exact-line search hit.
type Match struct {
	File string // absolute path
	Line int    // zero-based line index
}

// Provider scans and reads one specification tree rooted at a directory.
// Results of file enumeration and tag search are cached in a bounded
// cache; a watcher (see Watch) invalidates it when the tree changes.
type Provider struct {
	root  string
	opts  Options
	cache *queryCache

	watcher *treeWatcher
}

// NewProvider creates a Provider for the specification tree at root.
func NewProvider(root string, opts Options) (*Provider, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve root %s: %v", models.ErrIOFailure, root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: access root %s: %v", models.ErrIOFailure, abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: root is not a directory: %s", models.ErrIOFailure, abs)
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultOptions().Extensions
	}
	return &Provider{
		root:  abs,
		opts:  opts,
		cache: newQueryCache(opts.CacheCapacity),
	}, nil
}

// Root returns the absolute root of the specification tree.
func (p *Provider) Root() string {
	return p.root
}

// Files returns the sorted absolute paths of every specification file
// under the root. The sorted order is what makes tag lookups
// deterministic when a tag appears in several files: the first file in
// this enumeration wins and the order is never re-sorted downstream.
func (p *Provider) Files() ([]string, error) {
	if cached, ok := p.cache.get("files"); ok {
		return cached.([]string), nil
	}

	extMap := make(map[string]bool, len(p.opts.Extensions))
	for _, ext := range p.opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[strings.ToLower(ext)] = true
	}
	excludeMap := make(map[string]bool, len(p.opts.ExcludeDirs))
	for _, d := range p.opts.ExcludeDirs {
		excludeMap[d] = true
	}

	var files []string
	err := filepath.WalkDir(p.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == p.root {
				return nil
			}
			if excludeMap[d.Name()] || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if extMap[strings.ToLower(filepath.Ext(d.Name()))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan %s: %v", models.ErrIOFailure, p.root, err)
	}

	sort.Strings(files)
	p.cache.put("files", files)
	return files, nil
}

// ReadLines reads one specification file and splits it into lines.
func (p *Provider) ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", models.ErrIOFailure, path, err)
	}
	return strings.Split(string(data), "\n"), nil
}

// GrepExact returns every (file, line) whose trimmed content exactly
// equals needle, compared case-insensitively, across the whole tree in
// file enumeration order. Results are cached per needle.
func (p *Provider) GrepExact(needle string) ([]Match, error) {
	key := "grep:" + strings.ToLower(needle)
	if cached, ok := p.cache.get(key); ok {
		return cached.([]Match), nil
	}

	files, err := p.Files()
	if err != nil {
		return nil, err
	}

	var matches []Match
	for _, file := range files {
		lines, err := p.ReadLines(file)
		if err != nil {
			return nil, err
		}
		for i, line := range lines {
			if strings.EqualFold(strings.TrimSpace(line), needle) {
				matches = append(matches, Match{File: file, Line: i})
			}
		}
	}

	p.cache.put(key, matches)
	return matches, nil
}

// Invalidate drops all cached query results. The watcher calls this on
// any filesystem change under the root.
func (p *Provider) Invalidate() {
	p.cache.clear()
}
