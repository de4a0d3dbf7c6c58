package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrInterval is returned by Watch for a non-positive settle interval.
var ErrInterval = errors.New("watch interval must be positive")

func stamp(path string) (time.Time, int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, 0, err
	}
	return fi.ModTime(), fi.Size(), nil
}

// Watch calls fn once, then again whenever path changes, until ctx is done.
//
// The directory of path is watched so editors that save by renaming a new
// file into place are seen. Events are coalesced: fn runs once the file has
// been quiet for interval, and only if its modification time or size moved.
// Errors from fn are passed to onErr and do not stop watching; a file that
// is briefly missing is picked up again when it reappears.
func Watch(ctx context.Context, path string, interval time.Duration, fn func() error, onErr func(error)) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %v", ErrInterval, interval)
	}
	if onErr == nil {
		onErr = func(error) {}
	}

	mod, size, err := stamp(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	if err := fn(); err != nil {
		onErr(err)
	}

	name := filepath.Base(path)
	settle := time.NewTimer(interval)
	settle.Stop()
	defer settle.Stop()
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name || (ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write)) {
				continue
			}
			settle.Reset(interval)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			onErr(err)
		case <-settle.C:
			m, s, err := stamp(path)
			if err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					onErr(err)
				}
				continue
			}
			if m.Equal(mod) && s == size {
				continue
			}
			mod, size = m, s
			if err := fn(); err != nil {
				onErr(err)
			}
		}
	}
}
