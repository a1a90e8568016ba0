package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/KaramelBytes/bikeshare-cli/internal/prompt"
	"github.com/KaramelBytes/bikeshare-cli/internal/report"
	"github.com/KaramelBytes/bikeshare-cli/internal/tripdata"
	"github.com/KaramelBytes/bikeshare-cli/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	reportCity    string
	reportMonth   string
	reportDay     string
	reportMinYear int
	reportMaxYear int
	reportOutput  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the statistics for one city without prompting",
	Long: `Print the full statistics report for a city, month and weekday.

The birth year sanity checks are answered from --min-birth-year and
--max-birth-year; when a flag is omitted the observed value is accepted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportCity == "" {
			return fmt.Errorf("--city is required")
		}
		criteria, err := tripdata.ParseCriteria(reportMonth, reportDay)
		if err != nil {
			return err
		}
		full, err := newSource().Load(cmd.Context(), reportCity)
		if err != nil {
			return err
		}
		set := full.Filter(criteria)

		var buf bytes.Buffer
		runID := uuid.NewString()
		fmt.Fprintf(&buf, "Bikeshare report: %s, %s (run %s)\n", utils.TitleCase(set.City), set.Criteria, runID)
		fmt.Fprintln(&buf, report.Separator)

		answers := refinementAnswers(cmd.Flags().Changed("min-birth-year"), reportMinYear,
			cmd.Flags().Changed("max-birth-year"), reportMaxYear)
		script := prompt.NewScript(answers...)
		script.Out = &buf
		p := &report.Pipeline{Out: &buf, Prompt: script, Log: log, RunID: runID}
		started := time.Now()
		_, runErr := p.Run(cmd.Context(), set)
		log.Debugw("report finished", "run", runID, "city", set.City, "trips", set.Len(), "took", time.Since(started), "error", runErr)

		if err := writeReport(cmd.OutOrStdout(), reportOutput, buf.Bytes()); err != nil {
			return err
		}
		return runErr
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&reportCity, "city", "", "city to analyze (see 'bikeshare cities')")
	reportCmd.Flags().StringVar(&reportMonth, "month", tripdata.All, "month name January-June, or All")
	reportCmd.Flags().StringVar(&reportDay, "day", tripdata.All, "weekday name, or All")
	reportCmd.Flags().IntVar(&reportMinYear, "min-birth-year", 0, "earliest plausible birth year")
	reportCmd.Flags().IntVar(&reportMaxYear, "max-birth-year", 0, "most recent plausible birth year")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write the report to a file instead of stdout")
}

// refinementAnswers scripts the two sanity-check rounds of the birth year
// refinement: accept the observed value, or reject it and give a bound.
func refinementAnswers(hasMin bool, minYear int, hasMax bool, maxYear int) []string {
	var answers []string
	if hasMin {
		answers = append(answers, "N", strconv.Itoa(minYear))
	} else {
		answers = append(answers, "Y")
	}
	if hasMax {
		answers = append(answers, "N", strconv.Itoa(maxYear))
	} else {
		answers = append(answers, "Y")
	}
	return answers
}

func writeReport(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := utils.SafeWriteFile(path, data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Report written to %s\n", path)
	return nil
}
