// Package watch imports day sheets dropped into a directory as
// tab-separated .tsv files.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/wordsheet/wordsheet/internal/vocab"
)

// settleDelay gives whatever wrote the file a moment to finish before
// it is read. Drop-dir files are tiny, so one short wait suffices.
const settleDelay = 100 * time.Millisecond

// Watcher observes one directory and parses any .tsv file that appears
// in it. Parsed entries are delivered on Imports; everything that goes
// wrong is logged and skipped, never fatal.
type Watcher struct {
	fsw     *fsnotify.Watcher
	imports chan []vocab.WordEntry
	done    chan struct{}
}

// New starts watching dir.
func New(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:     fsw,
		imports: make(chan []vocab.WordEntry, 4),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Imports returns the channel parsed sheet entries arrive on.
func (w *Watcher) Imports() <-chan []vocab.WordEntry { return w.imports }

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".tsv") {
				continue
			}
			w.importFile(ev.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) importFile(path string) {
	time.Sleep(settleDelay)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("could not read dropped sheet", "file", path, "err", err)
		return
	}
	entries := vocab.ParseSheet(string(data))
	if len(entries) == 0 {
		log.Warn("dropped sheet had no usable lines", "file", path)
		return
	}

	select {
	case w.imports <- entries:
		log.Info("imported dropped sheet", "file", path, "entries", len(entries))
	case <-w.done:
	}
}
