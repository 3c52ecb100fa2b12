package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce batches the event bursts editors produce on save into one
// regeneration.
const debounce = 250 * time.Millisecond

// watch regenerates whenever a Go source file in dir changes, until the
// process is interrupted. Generation failures are reported and watching
// continues; the next save gets another chance.
func watch(ctx context.Context, dir, suffix string, regen func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove) {
				continue
			}
			if !watched(filepath.Base(ev.Name), suffix) {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			if err := regen(); err != nil {
				errc.Fprintf(os.Stderr, "companion: %v\n", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			errc.Fprintf(os.Stderr, "companion: watch: %v\n", err)
		}
	}
}

// watched reports whether a change to the named file warrants a run.
// Generated artifacts are excluded so a run does not trigger the next one.
func watched(base, suffix string) bool {
	if !strings.HasSuffix(base, ".go") || strings.HasSuffix(base, "_test.go") {
		return false
	}
	stem := strings.TrimSuffix(base, ".go")
	if strings.HasSuffix(stem, suffix) || strings.Contains(stem, suffix+"_") {
		return false
	}
	return true
}
