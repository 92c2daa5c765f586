package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"
)

// rebuildConcurrency bounds how many automation source files are
// scanned at once during a rebuild.
const rebuildConcurrency = 4

var (
	// methodPattern matches method declarations in page object classes:
	//   async tapSubmitButton() { ... }
	//   verifyWelcomeIsDisplayed () {
	methodPattern = regexp.MustCompile(`(?m)^\s*(?:async\s+)?([A-Za-z_]\w*)\s*\(`)

	// stepPattern matches step definition registrations:
	//   Given('^the user is logged in$', ...)
	stepDefPattern = regexp.MustCompile(`(Given|When|Then|And|But)\(\s*['"](.+?)['"]`)
)

// Rebuild re-scans the automation source tree and replaces the whole
// inventory. A file lock next to the database keeps concurrent rebuilds
// from interleaving; reads are unaffected thanks to WAL.
// Returns the number of artifacts recorded.
func (s *Store) Rebuild(ctx context.Context, automationRoot string) (int, error) {
	info, err := os.Stat(automationRoot)
	if err != nil {
		return 0, fmt.Errorf("access automation root: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("automation root is not a directory: %s", automationRoot)
	}

	if s.dbPath != ":memory:" {
		lock := flock.New(s.dbPath + ".lock")
		if err := lock.Lock(); err != nil {
			return 0, fmt.Errorf("acquire rebuild lock: %w", err)
		}
		defer lock.Unlock()
	}

	files, err := automationFiles(automationRoot)
	if err != nil {
		return 0, err
	}

	var mu sync.Mutex
	var artifacts []Artifact

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rebuildConcurrency)
	for _, file := range files {
		file := file
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			found, err := scanAutomationFile(file)
			if err != nil {
				return err
			}
			mu.Lock()
			artifacts = append(artifacts, found...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	// Deterministic insert order regardless of scan interleaving.
	sort.Slice(artifacts, func(i, j int) bool {
		if artifacts[i].Kind != artifacts[j].Kind {
			return artifacts[i].Kind < artifacts[j].Kind
		}
		return artifacts[i].Name < artifacts[j].Name
	})

	if err := s.replaceAll(ctx, artifacts); err != nil {
		return 0, err
	}
	return len(artifacts), nil
}

// automationFiles returns the page object and step definition sources
// under root, in sorted order.
func automationFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if strings.HasSuffix(name, ".page.js") || strings.HasSuffix(name, ".steps.js") ||
			strings.HasSuffix(name, ".page.ts") || strings.HasSuffix(name, ".steps.ts") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan automation root: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// scanAutomationFile extracts artifacts from one source file.
func scanAutomationFile(path string) ([]Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	base := filepath.Base(path)
	var artifacts []Artifact

	switch {
	case strings.Contains(base, ".page."):
		artifacts = append(artifacts, Artifact{Kind: KindPageObjectFile, Name: base, SourcePath: path})
		for _, m := range methodPattern.FindAllStringSubmatch(string(data), -1) {
			name := m[1]
			if name == "constructor" || name == "if" || name == "for" || name == "while" || name == "switch" {
				continue
			}
			artifacts = append(artifacts, Artifact{
				Kind:       KindPageObjectMethod,
				Name:       name + "()",
				SourcePath: path,
			})
		}
	case strings.Contains(base, ".steps."):
		artifacts = append(artifacts, Artifact{Kind: KindStepDefinitionFile, Name: base, SourcePath: path})
		for _, m := range stepDefPattern.FindAllStringSubmatch(string(data), -1) {
			artifacts = append(artifacts, Artifact{
				Kind:       KindStepPattern,
				Name:       m[2],
				SourcePath: path,
			})
		}
	}

	return artifacts, nil
}
