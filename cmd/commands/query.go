package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewQueryCommand creates the command that runs one query and prints the results
func NewQueryCommand() *cobra.Command {
	var (
		configPath string
		endpoint   string
		showIDs    bool
	)

	cmd := &cobra.Command{
		Use:   "query TEXT",
		Short: "Fetch suggestions for TEXT and print them, one per line",
		Example: `  suggestbox query app
  suggestbox query "new yo" --endpoint http://localhost:9000 --ids`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, endpoint)
			if err != nil {
				return err
			}

			res, err := newHTTPSource(cfg).Suggest(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range res.Suggestions {
				if showIDs && s.ID != "" {
					fmt.Fprintf(out, "%s\t%s\n", s.ID, s.Text)
					continue
				}
				fmt.Fprintln(out, s.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the config file")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Suggestion endpoint base URL (overrides config)")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Prefix each line with the item id when present")

	return cmd
}
