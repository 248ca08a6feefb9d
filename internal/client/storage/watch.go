package storage

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const pollTimeout = 5 * time.Second

func (s *SQLiteStore) pollOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()
	s.poll(ctx)
}

// watch triggers a poll on every write to the database files and on a
// timer. The timer covers filesystems where fsnotify sees nothing.
func (s *SQLiteStore) watch(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	var (
		events <-chan fsnotify.Event
		errs   <-chan error
	)
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Warn("file watcher unavailable, polling only", "error", err)
	} else {
		defer fw.Close() //nolint:errcheck // watcher is discarded
		if err := fw.Add(filepath.Dir(s.path)); err != nil {
			s.logger.Warn("cannot watch profile dir, polling only", "error", err)
		} else {
			events, errs = fw.Events, fw.Errors
		}
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	base := filepath.Base(s.path)
	for {
		select {
		case <-stop:
			return
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Has(fsnotify.Write) && strings.HasPrefix(filepath.Base(ev.Name), base) {
				s.pollOnce()
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			s.logger.Debug("file watcher error", "error", err)
		case <-ticker.C:
			s.pollOnce()
		}
	}
}
