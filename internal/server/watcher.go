package server

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"suggestbox/internal/domain"
	"suggestbox/internal/eventbus"
	"suggestbox/internal/source"
)

const reloadDebounce = 75 * time.Millisecond

// WatchCorpus reloads the corpus file into dst whenever it changes,
// until ctx is done. The parent directory is watched so editors that
// replace the file on save are picked up.
//
// The display mode follows the file's `type:` on every reload unless
// override is non-empty, in which case it stays fixed.
func WatchCorpus(ctx context.Context, path string, dst *source.StaticSource, bus eventbus.EventBus, override domain.DisplayMode) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return err
	}

	go func() {
		defer w.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(reloadDebounce)
				} else {
					timer.Reset(reloadDebounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				reload(abs, dst, bus, override)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("[watch] error: %v", err)
			}
		}
	}()
	return nil
}

func reload(path string, dst *source.StaticSource, bus eventbus.EventBus, override domain.DisplayMode) {
	c, err := source.LoadCorpus(path)
	if err != nil {
		log.Printf("[watch] keeping previous corpus: %v", err)
		if bus != nil {
			bus.Publish(domain.CorpusReloadedEvent{Path: path, Err: err})
		}
		return
	}
	entries := c.Suggestions()
	dst.Replace(entries)
	mode := override
	if mode == "" {
		mode = domain.DisplayMode(c.Type)
	}
	if mode == "" {
		mode = domain.ModeList
	}
	dst.SetMode(mode)
	log.Printf("[watch] reloaded %d entries (%s) from %s", len(entries), mode, path)
	if bus != nil {
		bus.Publish(domain.CorpusReloadedEvent{Path: path, Entries: len(entries)})
	}
}
