package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fileseg/fileseg/pkg/types"
)

// EventKind classifies a watcher event.
type EventKind string

// EventModified is the only kind a polling watcher emits: creation and
// modification are indistinguishable on first observation, and deletions are
// detected via FileSnapshot, not polling.
const EventModified EventKind = "modified"

// Event reports a change observed by a poll.
type Event struct {
	Path    string
	Kind    EventKind
	ModTime time.Time
}

// FileWatcher polls a set of watched files and directories, comparing
// modification times against a watermark. Not safe for concurrent use.
type FileWatcher struct {
	watched  map[string]struct{}
	lastScan time.Time
}

// NewFileWatcher returns a watcher whose watermark starts at now: only
// changes made after construction are reported.
func NewFileWatcher() *FileWatcher {
	return &FileWatcher{
		watched:  make(map[string]struct{}),
		lastScan: time.Now(),
	}
}

// Watch adds a file or directory to the watch set.
func (w *FileWatcher) Watch(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%q: %w", path, types.ErrNotFound)
		}
		return fmt.Errorf("stat %q: %w", path, err)
	}
	w.watched[path] = struct{}{}
	return nil
}

// Unwatch removes a path from the watch set.
func (w *FileWatcher) Unwatch(path string) {
	delete(w.watched, path)
}

// Clear removes all watched paths.
func (w *FileWatcher) Clear() {
	w.watched = make(map[string]struct{})
}

// Watched returns the number of watched paths.
func (w *FileWatcher) Watched() int {
	return len(w.watched)
}

// PollChanges walks every watched entry, emits a Modified event for anything
// newer than the watermark, then advances the watermark to the poll's start
// time. Watched paths that have disappeared are skipped silently.
func (w *FileWatcher) PollChanges() ([]Event, error) {
	pollStart := time.Now()
	var events []Event

	for path := range w.watched {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("stat %q: %w", path, err)
		}

		if !info.IsDir() {
			if info.ModTime().After(w.lastScan) {
				events = append(events, Event{Path: path, Kind: EventModified, ModTime: info.ModTime()})
			}
			continue
		}

		err = filepath.WalkDir(path, func(entry string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			entryInfo, err := d.Info()
			if err != nil {
				return err
			}
			if entryInfo.ModTime().After(w.lastScan) {
				events = append(events, Event{Path: entry, Kind: EventModified, ModTime: entryInfo.ModTime()})
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("polling %q: %w", path, err)
		}
	}

	w.lastScan = pollStart
	return events, nil
}

// FileSnapshot captures a file's size and modification time for later
// comparison, including deletion detection the polling watcher cannot do.
type FileSnapshot struct {
	Path    string
	Exists  bool
	Size    int64
	ModTime time.Time
}

// TakeSnapshot records the file's current state. A missing file is a valid
// snapshot with Exists=false.
func TakeSnapshot(path string) FileSnapshot {
	info, err := os.Stat(path)
	if err != nil {
		return FileSnapshot{Path: path, Exists: false}
	}
	return FileSnapshot{Path: path, Exists: true, Size: info.Size(), ModTime: info.ModTime()}
}

// HasChanged retakes the snapshot and reports whether the file's existence,
// size, or modification time differs.
func (s FileSnapshot) HasChanged() bool {
	current := TakeSnapshot(s.Path)
	if current.Exists != s.Exists {
		return true
	}
	if !current.Exists {
		return false
	}
	return current.Size != s.Size || !current.ModTime.Equal(s.ModTime)
}
