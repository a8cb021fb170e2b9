package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce groups bursts of events, such as an editor's save dance.
const debounce = 100 * time.Millisecond

// Watch re-lints files under paths whenever they change and hands each
// batch to onChange. It blocks until ctx is done.
func (r *Runner) Watch(ctx context.Context, paths []string, onChange func([]FileResult)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	explicit := map[string]bool{}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		if info.IsDir() {
			if err := r.watchDir(watcher, p); err != nil {
				return fmt.Errorf("watch %s: %w", p, err)
			}
			continue
		}
		explicit[filepath.Clean(p)] = true
		if err := watcher.Add(filepath.Dir(p)); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}

	pending := map[string]bool{}
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(name); err == nil && info.IsDir() && !skipDir(info.Name()) {
					if err := r.watchDir(watcher, name); err != nil {
						r.logger.Warn("watch new directory", "path", name, "err", err)
					}
					continue
				}
			}
			if !explicit[name] && !r.wanted(name) {
				continue
			}
			pending[name] = true
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watcher error", "err", err)

		case <-timer.C:
			files := r.existing(pending)
			clear(pending)
			if len(files) == 0 {
				continue
			}
			r.logger.Debug("change detected", "files", len(files))
			results, err := r.Run(ctx, files)
			if err != nil {
				// only a finished context stops a run
				return nil
			}
			onChange(results)
		}
	}
}

func (r *Runner) watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && (skipDir(d.Name()) || r.excluded(path)) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// existing returns the pending files that still exist, sorted. Renamed
// and deleted files drop out.
func (r *Runner) existing(pending map[string]bool) []string {
	files := make([]string, 0, len(pending))
	for p := range pending {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			files = append(files, p)
		}
	}
	slices.Sort(files)
	return files
}
