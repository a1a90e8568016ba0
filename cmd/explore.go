package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/bikeshare-cli/internal/prompt"
	"github.com/KaramelBytes/bikeshare-cli/internal/report"
	"github.com/KaramelBytes/bikeshare-cli/internal/tripdata"
	"github.com/KaramelBytes/bikeshare-cli/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Pick a city, month and day interactively and print its statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		con := prompt.NewConsole(cmd.InOrStdin(), out)
		con.StrictUpper = cfg.StrictUpperBound
		con.Interactive = con.Interactive && cfg.Pause
		err := explore(cmd.Context(), con, out, newSource())
		if errors.Is(err, prompt.ErrClosed) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

// explore runs sessions until the user declines to restart. A failed
// session is reported as a warning and does not end the loop.
func explore(ctx context.Context, con *prompt.Console, out io.Writer, src *tripdata.Source) error {
	for {
		if err := exploreOnce(ctx, con, out, src); err != nil {
			if errors.Is(err, prompt.ErrClosed) || errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintf(out, "⚠ Warning: %v\n", err)
		}
		again, err := con.Confirm("\nWould you like to restart Y/N?")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func exploreOnce(ctx context.Context, con *prompt.Console, out io.Writer, src *tripdata.Source) error {
	fmt.Fprintln(out, "Hello! Let's explore some US bikeshare data!")
	cities := make([]string, 0, len(src.Cities))
	for _, name := range src.Names() {
		cities = append(cities, utils.TitleCase(name))
	}
	city, err := con.Choose(fmt.Sprintf("Choose a city from the following options: %s.", strings.Join(cities, ", ")), cities)
	if err != nil {
		return err
	}
	month, err := con.Choose("Choose a month from between January to June to view statistics for a specific month,\nor input 'all' to view statistics for all months",
		append(append([]string{}, tripdata.Months...), tripdata.All))
	if err != nil {
		return err
	}
	day, err := con.Choose("Choose a day of the week to view statistics for a specific day,\nor input 'all' to view statistics for all days",
		append(append([]string{}, tripdata.Weekdays...), tripdata.All))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, report.Separator)

	criteria, err := tripdata.ParseCriteria(month, day)
	if err != nil {
		return err
	}
	full, err := src.Load(ctx, city)
	if err != nil {
		return err
	}
	p := &report.Pipeline{Out: out, Prompt: con, Log: log, RunID: uuid.NewString()}
	if _, err := p.Run(ctx, full.Filter(criteria)); err != nil {
		if errors.Is(err, prompt.ErrClosed) {
			return err
		}
		fmt.Fprintf(out, "⚠ Warning: %v\n", err)
	}

	raw, err := con.Confirm("Would you like to view the raw data Y/N?")
	if err != nil || !raw {
		return err
	}
	_, err = report.PageRaw(out, con, full, cfg.PageSize)
	return err
}

