package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
)

// Watch reports changes to the storage file made by other writers. Writes
// made through this File are not reported. The directory is watched rather
// than the file because atomic writes replace the file's inode.
func (f *File) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("kv: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("kv: watch %s: %w", filepath.Dir(f.path), err)
	}

	f.mu.Lock()
	debounce := f.debounce
	f.mu.Unlock()

	out := make(chan struct{}, 1)
	go f.watchLoop(ctx, watcher, debounce, out)
	return out, nil
}

func (f *File) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration, out chan<- struct{}) {
	defer close(out)
	defer watcher.Close()

	name := filepath.Base(f.path)
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			base := filepath.Base(event.Name)
			if base != name || strings.HasPrefix(base, tempFilePrefix) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			f.logger.Debug("kv: storage event", "op", event.Op.String(), "path", event.Name)
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			f.logger.Error("kv: watcher error", "error", err)

		case <-timer.C:
			if f.changedExternally() {
				select {
				case out <- struct{}{}:
				default: // a notification is already pending
				}
			}
		}
	}
}

// changedExternally compares the file digest against the last known one and
// records the new digest.
func (f *File) changedExternally() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	var sum uint64
	if data, err := os.ReadFile(f.path); err == nil {
		sum = xxhash.Sum64(data)
	}
	if sum == f.digest {
		return false
	}
	f.digest = sum
	return true
}
