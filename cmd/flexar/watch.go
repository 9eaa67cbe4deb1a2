package main

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 125 * time.Millisecond

// watchFiles calls fn whenever one of filenames is created or written, until
// ctx is done. Bursts of events, as editors tend to produce on save, result in
// a single call.
//
// The directories holding the files are watched rather than the files, so that
// editors replacing a file on save do not end the watch.
func watchFiles(ctx context.Context, filenames []string, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating new fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(filenames))
	dirs := make(map[string]bool)
	for _, filename := range filenames {
		abs, err := filepath.Abs(filename)
		if err != nil {
			return err
		}
		watched[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("adding dir to watch: %w", err)
		}
		dirs[dir] = true
	}

	log.Infof("watching %d files", len(watched))

	// fn runs on timer goroutines; never run two at once
	var runMu sync.Mutex
	debounceEvents(ctx, debounceInterval, watcher, func(ev fsnotify.Event) {
		abs, err := filepath.Abs(ev.Name)
		if err != nil || !watched[abs] {
			return
		}

		runMu.Lock()
		defer runMu.Unlock()
		log.Infof("change detected in %s", ev.Name)
		fn()
	})

	return nil
}

// debounceEvents calls fn for an event once no further event on the same file
// arrived within interval. It returns when ctx is done or the watcher closes.
func debounceEvents(ctx context.Context, interval time.Duration, watcher *fsnotify.Watcher, fn func(event fsnotify.Event)) {
	var mu sync.Mutex
	timers := make(map[string]*time.Timer)

	has := func(ev fsnotify.Event, op fsnotify.Op) bool {
		return ev.Op&op == op
	}

	for {
		select {
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("file watch error: %v", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !has(ev, fsnotify.Create) && !has(ev, fsnotify.Write) {
				continue
			}
			mu.Lock()
			t, ok := timers[ev.Name]
			mu.Unlock()
			if !ok {
				t = time.AfterFunc(math.MaxInt64, func() {
					fn(ev)
					mu.Lock()
					defer mu.Unlock()
					delete(timers, ev.Name)
				})
				t.Stop()

				mu.Lock()
				timers[ev.Name] = t
				mu.Unlock()
			}
			t.Reset(interval)
		case <-ctx.Done():
			return
		}
	}
}
