package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jpillora/backoff"

	"github.com/hyperion-lang/hyperion/internal/cache"
)

// watchFile runs render once immediately, then again every time path's
// contents change, until interrupted. It watches path's directory rather
// than the file itself so editors that replace-on-save (rename over the
// old inode) still trigger a re-run.
func watchFile(path string, render func() error) error {
	cachePath := filepath.Join(os.TempDir(), "hyperion-watch-cache.json")
	c, err := cache.Load(cachePath)
	if err != nil {
		return err
	}

	runOnce := func() {
		changed, err := c.Changed(path)
		if err != nil || !changed {
			return
		}
		if err := render(); err != nil {
			fmt.Fprintln(os.Stderr, "hyperion:", err)
		}
		if err := c.Save(); err != nil {
			fmt.Fprintln(os.Stderr, "hyperion: failed to save watch cache:", err)
		}
	}

	// The cache file outlives this process; drop any hash an earlier run
	// recorded for path so the first render always happens.
	c.Forget(path)
	runOnce()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	b := &backoff.Backoff{Min: 20 * time.Millisecond, Max: 500 * time.Millisecond, Factor: 2}

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)) {
				continue
			}
			// A rename/replace-on-save can briefly leave the path unreadable
			// between the old inode vanishing and the new one landing; back
			// off and retry a few times before giving up on this event.
			for attempt := 0; attempt < 5; attempt++ {
				if _, err := os.Stat(path); err == nil {
					break
				}
				time.Sleep(b.Duration())
			}
			b.Reset()
			runOnce()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "hyperion: watch error:", err)
		}
	}
}
