package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("tangent.workspace")

// Watcher translates file-system events under the workspace root into the
// index invalidation hooks: writes and creates refresh a path, removes and
// renames evict it. New directories are added to the watch set as they
// appear.
type Watcher struct {
	ws       *DirWorkspace
	fw       *fsnotify.Watcher
	onUpdate func(path string)
	onRemove func(path string)
}

func NewWatcher(ws *DirWorkspace, onUpdate, onRemove func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		ws:       ws,
		fw:       fw,
		onUpdate: onUpdate,
		onRemove: onRemove,
	}

	if err := w.watchTree(ws.Root()); err != nil {
		fw.Close()
		return nil, err
	}

	return w, nil
}

func (w *Watcher) watchTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if hidden(d.Name()) && path != root {
			return fs.SkipDir
		}
		if err := w.fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// Run consumes events until the context is canceled or the event stream
// closes.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch error: %s", err.Error())
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watchTree(event.Name); err != nil {
				log.Errorf("failed to watch new directory %s: %s", event.Name, err.Error())
			}
			return
		}
	}

	if !w.ws.IsNoteFile(event.Name) {
		return
	}

	switch {
	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		log.Debugf("evicting removed note: %s", event.Name)
		w.onRemove(event.Name)
	case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
		log.Debugf("refreshing changed note: %s", event.Name)
		w.onUpdate(event.Name)
	}
}

func (w *Watcher) Close() error {
	return w.fw.Close()
}
