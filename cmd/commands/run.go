package commands

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"suggestbox/internal/eventbus"
	"suggestbox/internal/ui"
)

// NewRunCommand creates the command that opens the combobox
func NewRunCommand() *cobra.Command {
	var (
		configPath      string
		endpoint        string
		autoSelectFirst bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the combobox against a suggestion endpoint",
		Long: `Open the full-screen combobox. Suggestions are fetched from the
configured endpoint as you type.

Examples:
  # Use the endpoint from the config file
  suggestbox run

  # Point at another endpoint without preselecting the first suggestion
  suggestbox run --endpoint http://localhost:9000 --auto-select-first=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, endpoint)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("auto-select-first") {
				cfg.UI.AutoSelectFirst = autoSelectFirst
			}

			closeLog := setupLogging(cfg.LogFile)
			defer closeLog()

			bus := eventbus.New()
			defer bus.Close()

			m := ui.NewModel(bus, cfg, newHTTPSource(cfg))
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
			m.SetProgram(p)

			// Forward widget events to the UI
			eventChan := make(chan eventbus.DomainEvent, 100)
			forward := func(e eventbus.DomainEvent) {
				select {
				case eventChan <- e:
				default:
					log.Println("Event channel full, dropping event")
				}
			}
			unsubscribe := bus.Subscribe(eventbus.EventQueryIssued, forward)
			defer unsubscribe()
			done := make(chan struct{})
			defer close(done)
			go func() {
				for {
					select {
					case e := <-eventChan:
						p.Send(ui.EventMsg{Event: e})
					case <-done:
						return
					}
				}
			}()

			log.Printf("Starting suggestbox against %s", cfg.Source.URL())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running program: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the config file")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Suggestion endpoint base URL (overrides config)")
	cmd.Flags().BoolVar(&autoSelectFirst, "auto-select-first", true, "Preselect the first suggestion of every result (--auto-select-first=false lets Enter submit the typed text)")

	return cmd
}
