package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/anders/scenarist/internal/models"
)

// treeWatcher watches every directory under the provider root and
// invalidates the provider's cache on any change. New subdirectories
// are added to the watch set as they appear.
type treeWatcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
}

// Watch starts cache invalidation on filesystem changes under the root.
// It is optional: long-running processes call it once; one-shot CLI
// invocations can skip it. Close releases the watcher.
func (p *Provider) Watch() error {
	if p.watcher != nil {
		return nil
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: create watcher: %v", models.ErrCollaborator, err)
	}

	w := &treeWatcher{fs: fs, done: make(chan struct{})}
	if err := w.addTree(p.root); err != nil {
		fs.Close()
		return err
	}

	go w.run(p)
	p.watcher = w
	return nil
}

// Close stops the watcher, if one was started.
func (p *Provider) Close() error {
	if p.watcher == nil {
		return nil
	}
	close(p.watcher.done)
	err := p.watcher.fs.Close()
	p.watcher = nil
	return err
}

// addTree registers root and all its subdirectories with the watcher.
func (w *treeWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		if werr := w.fs.Add(path); werr != nil {
			return fmt.Errorf("%w: watch %s: %v", models.ErrCollaborator, path, werr)
		}
		return nil
	})
}

func (w *treeWatcher) run(p *Provider) {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			p.Invalidate()
			// Pick up directories created after Watch started.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addTree(event.Name)
				}
			}
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}
