package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-scene/logger"
)

// DefaultDebounce coalesces the burst of events editors emit for one save
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a config file when it changes and hands valid results to a callback
// Invalid edits are logged and skipped, the previous config stays in effect
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(*Config)
	watcher  *fsnotify.Watcher
	log      zerolog.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Watch starts watching path; onChange runs on the watcher goroutine
func Watch(ctx context.Context, path string, debounce time.Duration, onChange func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors replace the file on save, dropping a file watch
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch config dir: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		watcher:  fw,
		log:      logger.WithComponent("config"),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go w.loop(ctx)

	w.log.Info().Str("path", w.path).Msg("watching config file")
	return w, nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	defer w.watcher.Close()

	// armed by file events only
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("config watcher error")

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.log.Warn().Err(err).Str("path", w.path).Msg("config reload rejected")
		return
	}
	w.log.Info().Str("path", w.path).Msg("config reloaded")
	w.onChange(cfg)
}

// Close stops the watcher and waits for its goroutine
func (w *Watcher) Close() {
	w.once.Do(func() {
		w.cancel()
		<-w.done
	})
}
