package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suggestbox/internal/domain"
	"suggestbox/internal/eventbus"
	"suggestbox/internal/source"
)

func TestWatchCorpusReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries: [one]\n"), 0644))

	c, err := source.LoadCorpus(path)
	require.NoError(t, err)
	dst := source.NewStaticSource(c.Suggestions(), domain.ModeList, 0)

	bus := eventbus.New()
	defer bus.Close()
	reloaded := make(chan eventbus.CorpusReloadedEvent, 4)
	bus.Subscribe(eventbus.EventCorpusReloaded, func(e eventbus.DomainEvent) {
		reloaded <- e.(eventbus.CorpusReloadedEvent)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, WatchCorpus(ctx, path, dst, bus, ""))

	require.NoError(t, os.WriteFile(path, []byte("entries: [one, two, three]\n"), 0644))

	select {
	case ev := <-reloaded:
		require.NoError(t, ev.Err)
		assert.Equal(t, 3, ev.Entries)
	case <-time.After(5 * time.Second):
		t.Fatal("corpus was not reloaded")
	}
	assert.Equal(t, 3, dst.Len())
}

func TestWatchCorpusKeepsPreviousOnParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries: [one]\n"), 0644))
	dst := source.NewStaticSource([]domain.Suggestion{{Text: "one"}}, domain.ModeList, 0)

	bus := eventbus.New()
	defer bus.Close()
	reloaded := make(chan eventbus.CorpusReloadedEvent, 4)
	bus.Subscribe(eventbus.EventCorpusReloaded, func(e eventbus.DomainEvent) {
		reloaded <- e.(eventbus.CorpusReloadedEvent)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, WatchCorpus(ctx, path, dst, bus, ""))

	require.NoError(t, os.WriteFile(path, []byte("entries: [broken\n"), 0644))

	select {
	case ev := <-reloaded:
		assert.Error(t, ev.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("reload attempt was not reported")
	}
	assert.Equal(t, 1, dst.Len())
}

func TestWatchCorpusFollowsTypeChange(t *testing.T) {
	tests := []struct {
		name     string
		override domain.DisplayMode
		want     domain.DisplayMode
	}{
		{name: "file type wins", want: domain.ModeAutocomplete},
		{name: "override keeps mode", override: domain.ModeList, want: domain.ModeList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "corpus.yaml")
			require.NoError(t, os.WriteFile(path, []byte("type: list\nentries: [one]\n"), 0644))
			dst := source.NewStaticSource([]domain.Suggestion{{Text: "one"}}, domain.ModeList, 0)

			bus := eventbus.New()
			defer bus.Close()
			reloaded := make(chan eventbus.CorpusReloadedEvent, 4)
			bus.Subscribe(eventbus.EventCorpusReloaded, func(e eventbus.DomainEvent) {
				reloaded <- e.(eventbus.CorpusReloadedEvent)
			})

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			require.NoError(t, WatchCorpus(ctx, path, dst, bus, tt.override))

			require.NoError(t, os.WriteFile(path, []byte("type: autocomplete\nentries: [one, two]\n"), 0644))

			select {
			case ev := <-reloaded:
				require.NoError(t, ev.Err)
			case <-time.After(5 * time.Second):
				t.Fatal("corpus was not reloaded")
			}
			assert.Equal(t, tt.want, dst.Mode())

			res, err := dst.Suggest(context.Background(), "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Mode)
		})
	}
}
