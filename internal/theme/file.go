package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultPollInterval applies when fsnotify is unavailable and no interval
// was configured.
const DefaultPollInterval = time.Second

// FileFlag is a Switch persisted as a file containing "dark" or "light". The
// file is watched with fsnotify; when a watch cannot be established it is
// polled instead. A missing or unreadable file reads as the fallback.
type FileFlag struct {
	path     string
	fallback bool
	interval time.Duration
	log      *zap.Logger

	dark atomic.Bool
	subs subscribers

	watcher *fsnotify.Watcher
	polling bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// OpenFile reads path and starts following it. Close releases the watcher.
func OpenFile(path string, fallback bool, interval time.Duration, log *zap.Logger) (*FileFlag, error) {
	return openFile(path, fallback, interval, log, true)
}

func openFile(path string, fallback bool, interval time.Duration, log *zap.Logger, notify bool) (*FileFlag, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("theme file %q: %w", path, err)
	}
	f := &FileFlag{
		path:     abs,
		fallback: fallback,
		interval: interval,
		log:      log,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	f.dark.Store(f.read())

	err = errors.New("change notification disabled")
	if notify {
		err = f.watch()
	}
	if err != nil {
		f.log.Warn("theme: file watch unavailable, polling", zap.String("path", f.path), zap.Duration("interval", interval), zap.Error(err))
		f.polling = true
		go f.poll()
	} else {
		go f.run()
	}
	return f, nil
}

func (f *FileFlag) watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_ = w.Close()
		return err
	}
	// Watch the directory: editors and Set replace the file by rename.
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return err
	}
	f.watcher = w
	return nil
}

// Path is the absolute file path.
func (f *FileFlag) Path() string { return f.path }

// Polling reports whether the fallback poller is in use.
func (f *FileFlag) Polling() bool { return f.polling }

func (f *FileFlag) Dark() bool { return f.dark.Load() }

func (f *FileFlag) Subscribe(fn func(bool)) func() { return f.subs.add(fn) }

// Set writes the file and notifies immediately rather than waiting for the
// watcher to see the write.
func (f *FileFlag) Set(dark bool) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(Name(dark)+"\n"), 0o644); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	f.update(dark)
	return nil
}

// Close stops watching. It is safe to call more than once.
func (f *FileFlag) Close() error {
	var err error
	f.once.Do(func() {
		close(f.stopCh)
		<-f.doneCh
		if f.watcher != nil {
			err = f.watcher.Close()
		}
	})
	return err
}

func (f *FileFlag) read() bool {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			f.log.Warn("theme: read failed", zap.String("path", f.path), zap.Error(err))
		}
		return f.fallback
	}
	dark, ok := Parse(string(data))
	if !ok {
		f.log.Warn("theme: unrecognised value, using fallback", zap.String("path", f.path), zap.ByteString("value", data))
		return f.fallback
	}
	return dark
}

func (f *FileFlag) update(dark bool) {
	if f.dark.Swap(dark) == dark {
		return
	}
	f.log.Debug("theme: changed", zap.String("theme", Name(dark)))
	f.subs.notify(dark)
}

func (f *FileFlag) run() {
	defer close(f.doneCh)
	for {
		select {
		case <-f.stopCh:
			return
		case ev, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != f.path {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			f.update(f.read())
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			f.log.Error("theme: watcher error", zap.Error(err))
		}
	}
}

func (f *FileFlag) poll() {
	defer close(f.doneCh)
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-f.stopCh:
			return
		case <-ticker.C:
			f.update(f.read())
		}
	}
}
