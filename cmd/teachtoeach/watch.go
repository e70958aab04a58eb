package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/teachtoeach/internal/assets"
)

// watchDebounce groups bursts of events from one save.
const watchDebounce = 100 * time.Millisecond

// change flags what a batch of events touched.
type change uint8

const (
	changeContent change = 1 << iota
	changeAssets
)

// siteWatcher reports edits to content files and images under the asset root.
type siteWatcher struct {
	watcher   *fsnotify.Watcher
	assetRoot string          // absolute, "" when only embedded images are used
	files     map[string]bool // absolute content and theme paths
	patterns  []string
	debounce  time.Duration
	onChange  func(change)
	logger    *slog.Logger
}

func newSiteWatcher(assetRoot string, files []string, logger *slog.Logger, onChange func(change)) (*siteWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &siteWatcher{
		watcher:  fw,
		files:    make(map[string]bool),
		patterns: []string{assets.ImagePattern},
		debounce: watchDebounce,
		onChange: onChange,
		logger:   logger,
	}

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fw.Close()
			return nil, err
		}
		w.files[abs] = true
		// Editors often replace files, so the parent directory is watched.
		if err := fw.Add(filepath.Dir(abs)); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watching %s: %w", f, err)
		}
	}

	if assetRoot != "" {
		abs, err := filepath.Abs(assetRoot)
		if err != nil {
			_ = fw.Close()
			return nil, err
		}
		w.assetRoot = abs
		if err := w.addTree(abs); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("%w: %w", ErrAssetRoot, err)
		}
	}

	return w, nil
}

// addTree watches dir and every directory below it.
func (w *siteWatcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// classify maps an event to the change it represents.
func (w *siteWatcher) classify(ev fsnotify.Event) change {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return 0
	}

	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return 0
	}
	if w.files[name] {
		return changeContent
	}
	if w.assetRoot == "" {
		return 0
	}

	rel, err := filepath.Rel(w.assetRoot, name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return 0
	}
	if ev.Has(fsnotify.Create) {
		// New directories are picked up as they appear.
		_ = w.addTree(name)
	}
	if assets.MatchAny(w.patterns, filepath.ToSlash(rel)) {
		return changeAssets
	}
	return 0
}

// Run delivers debounced changes until ctx is done or the watcher closes.
func (w *siteWatcher) Run(ctx context.Context) {
	var (
		pending change
		fire    <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			c := w.classify(ev)
			if c == 0 {
				continue
			}
			w.logger.Debug("file changed", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			pending |= c
			fire = time.After(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", slog.Any("error", err))
		case <-fire:
			fire = nil
			c := pending
			pending = 0
			w.onChange(c)
		}
	}
}

func (w *siteWatcher) Close() error {
	return w.watcher.Close()
}
