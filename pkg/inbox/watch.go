// Package inbox watches a directory for purchase order documents dropped by
// the host and hands their contents to the editor.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

const (
	documentExt = ".json"
	variantExt  = ".variant"
)

// Event carries one document read from the inbox, or the error reading it.
type Event struct {
	Path    string
	Payload []byte
	Variant string
	Err     error
}

// Watcher reads documents from Dir. A sibling file named like the document
// with a .variant extension overrides DefaultVariant.
type Watcher struct {
	Dir            string
	DefaultVariant string
	Delay          time.Duration
	Log            logrus.FieldLogger
}

// New returns a watcher on dir.
func New(dir, defaultVariant string, log logrus.FieldLogger) *Watcher {
	return &Watcher{Dir: dir, DefaultVariant: defaultVariant, Delay: 100 * time.Millisecond, Log: log}
}

func (w *Watcher) log() logrus.FieldLogger {
	if w.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return w.Log
}

// Scan reads every document currently in the inbox, in name order.
func (w *Watcher) Scan() ([]Event, error) {
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return nil, fmt.Errorf("inbox: read %s: %w", w.Dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), documentExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	out := make([]Event, 0, len(names))
	for _, n := range names {
		if ev, ok := w.read(filepath.Join(w.Dir, n)); ok {
			out = append(out, ev)
		}
	}
	return out, nil
}

// Watch streams documents written to the inbox until ctx is cancelled.
// Bursts of writes to the same file are coalesced into one event. The
// channel is closed once ctx is done or the watcher fails.
func (w *Watcher) Watch(ctx context.Context) (<-chan Event, error) {
	if w.Dir == "" {
		return nil, errors.New("inbox: directory unknown")
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("inbox: ensure directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("inbox: create watcher: %w", err)
	}
	if err := watcher.Add(w.Dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("inbox: watch %s: %w", w.Dir, err)
	}

	events := make(chan Event, 16)
	log := w.log().WithField("dir", w.Dir)

	delay := w.Delay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	throttle := newThrottle(delay)

	var (
		mu     sync.RWMutex
		closed bool
	)
	send := func(path string) {
		ev, ok := w.read(path)
		if !ok {
			return
		}
		mu.RLock()
		defer mu.RUnlock()
		if closed {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	go func() {
		defer func() {
			mu.Lock()
			closed = true
			close(events)
			mu.Unlock()
		}()
		defer throttle.Stop()
		defer func() {
			if err := watcher.Close(); err != nil {
				log.WithError(err).Warn("watcher close")
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("watch error")
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				path := documentFor(evt.Name)
				if path == "" {
					continue
				}
				throttle.Enqueue(path, send)
			}
		}
	}()

	return events, nil
}

// documentFor maps a changed file to the document it affects.
func documentFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case documentExt:
		return filepath.Clean(name)
	case variantExt:
		return strings.TrimSuffix(filepath.Clean(name), filepath.Ext(name)) + documentExt
	}
	return ""
}

// read loads path. Vanished files are skipped.
func (w *Watcher) read(path string) (Event, bool) {
	ev := Event{Path: path, Variant: w.DefaultVariant}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ev, false
		}
		ev.Err = fmt.Errorf("inbox: read %s: %w", path, err)
		return ev, true
	}
	ev.Payload = data
	side := strings.TrimSuffix(path, filepath.Ext(path)) + variantExt
	if b, err := os.ReadFile(side); err == nil {
		if v := strings.TrimSpace(string(b)); v != "" {
			ev.Variant = v
		}
	}
	return ev, true
}

// throttle coalesces rapid writes so each document is read once per burst.
type throttle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	order   []string
	delay   time.Duration
	stopped bool
}

func newThrottle(delay time.Duration) *throttle {
	return &throttle{delay: delay, pending: make(map[string]struct{})}
}

func (t *throttle) Enqueue(path string, send func(string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	if _, ok := t.pending[path]; !ok {
		t.pending[path] = struct{}{}
		t.order = append(t.order, path)
	}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *throttle) flush(send func(string)) {
	t.mu.Lock()
	order := t.order
	t.order = nil
	t.pending = make(map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	for _, p := range order {
		send(p)
	}
}

func (t *throttle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
