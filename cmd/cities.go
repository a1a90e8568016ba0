package cmd

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/bikeshare-cli/internal/utils"
	"github.com/spf13/cobra"
)

var citiesImported bool

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List configured cities and their trip logs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if citiesImported {
			return listImported(cmd)
		}
		out := cmd.OutOrStdout()
		src := newSource()
		names := src.Names()
		if len(names) == 0 {
			fmt.Fprintln(out, "(no cities)")
			return nil
		}
		for _, name := range names {
			p, err := src.Path(name)
			if err != nil {
				return err
			}
			status := ""
			if _, err := os.Stat(p); err != nil {
				status = " (missing)"
			}
			fmt.Fprintf(out, "- %s: %s%s\n", utils.TitleCase(name), p, status)
		}
		return nil
	},
}

func listImported(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	store, _, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()
	sets, err := store.Datasets(cmd.Context())
	if err != nil {
		return err
	}
	if len(sets) == 0 {
		fmt.Fprintln(out, "(no imported cities)")
		return nil
	}
	for _, d := range sets {
		fmt.Fprintf(out, "- %s: %d trips from %s (import %s, %s)\n",
			utils.TitleCase(d.City), d.Trips, d.Source, d.ImportID, d.ImportedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(citiesCmd)
	citiesCmd.Flags().BoolVar(&citiesImported, "imported", false, "list cities imported into the trip store instead")
}
