package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"suggestbox/internal/domain"
	"suggestbox/internal/eventbus"
	"suggestbox/internal/server"
	"suggestbox/internal/source"
)

// NewServeCommand creates the command that serves a corpus over HTTP
func NewServeCommand() *cobra.Command {
	var (
		corpusPath string
		addr       string
		mode       string
		limit      int
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve /v1/autocomplete from a YAML corpus",
		Long: `Serve GET /v1/autocomplete?query=<text> from a YAML corpus file.
Matching is a case-insensitive substring search in corpus order.
The response type comes from the corpus 'type:' unless --type is given.
With --watch, edits to entries and to 'type:' are picked up on reload;
an explicit --type stays fixed.

Corpus format:
  type: list
  entries:
    - apple
    - text: apricot
      id: 42

Examples:
  suggestbox serve --corpus fruit.yaml
  suggestbox serve --corpus fruit.yaml --addr :9000 --type autocomplete --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := source.LoadCorpus(corpusPath)
			if err != nil {
				return err
			}

			displayMode := domain.DisplayMode(corpus.Type)
			if cmd.Flags().Changed("type") || displayMode == "" {
				displayMode = domain.DisplayMode(mode)
			}
			src := source.NewStaticSource(corpus.Suggestions(), displayMode, limit)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			bus := eventbus.New()
			defer bus.Close()
			bus.Subscribe(eventbus.EventCorpusReloaded, func(e eventbus.DomainEvent) {
				ev := e.(eventbus.CorpusReloadedEvent)
				if ev.Err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "reload of %s failed: %v\n", ev.Path, ev.Err)
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reloaded %s (%d entries)\n", ev.Path, ev.Entries)
			})

			if watch {
				var override domain.DisplayMode
				if cmd.Flags().Changed("type") {
					override = domain.DisplayMode(mode)
				}
				if err := server.WatchCorpus(ctx, corpusPath, src, bus, override); err != nil {
					return fmt.Errorf("failed to watch corpus: %w", err)
				}
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.NewHandler(src).Routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			fmt.Fprintf(cmd.OutOrStdout(), "serving %d entries on %s%s\n", src.Len(), addr, server.AutocompletePath)
			log.Printf("Serving %s on %s", corpusPath, addr)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "YAML corpus file")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&mode, "type", string(domain.ModeList), "Display mode returned as the response type")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum suggestions per response (0 = unlimited)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload the corpus when the file changes")
	_ = cmd.MarkFlagRequired("corpus")

	return cmd
}
