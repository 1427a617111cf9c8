package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// DebounceDelay coalesces the burst of writes editors produce on save
const DebounceDelay = 150 * time.Millisecond

// Reload is one watcher result; exactly one of Config and Err is set
type Reload struct {
	Config *Config
	Err    error
}

// AdjustFunc runs on every reloaded config before it is delivered, e.g. to
// reapply command-line overrides. It must validate what it changes.
type AdjustFunc func(*Config) error

// Watcher reloads a config file whenever it changes on disk
type Watcher struct {
	path    string
	adjust  AdjustFunc
	watcher *fsnotify.Watcher
	out     chan Reload
}

// NewWatcher watches the directory containing path so that editors replacing
// the file by rename are still observed. adjust may be nil.
func NewWatcher(path string, adjust AdjustFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "resolve %s", path)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}
	return &Watcher{
		path:    abs,
		adjust:  adjust,
		watcher: fw,
		out:     make(chan Reload, 1),
	}, nil
}

// Reloads delivers parsed configs or load errors
func (w *Watcher) Reloads() <-chan Reload {
	return w.out
}

// Run forwards debounced reloads until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(DebounceDelay)
			} else {
				timer.Reset(DebounceDelay)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.send(ctx, Reload{Err: errors.Wrap(err, "watch")})

		case <-fire:
			fire = nil
			c, err := w.load()
			if err != nil {
				w.send(ctx, Reload{Err: err})
				continue
			}
			w.send(ctx, Reload{Config: c})
		}
	}
}

func (w *Watcher) load() (*Config, error) {
	c, err := Load(w.path)
	if err != nil {
		return nil, err
	}
	if w.adjust != nil {
		if err := w.adjust(c); err != nil {
			return nil, errors.Wrapf(err, "reload %s", w.path)
		}
	}
	return c, nil
}

// send replaces a pending unread reload so the consumer only sees the latest
func (w *Watcher) send(ctx context.Context, r Reload) {
	for {
		select {
		case w.out <- r:
			return
		case <-ctx.Done():
			return
		default:
		}
		select {
		case <-w.out:
		default:
		}
	}
}
