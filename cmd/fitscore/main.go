// Command fitscore scores health metrics from the command line. It reads the
// same JSON shapes as the HTTP API and prints human-readable breakdowns and
// trend charts.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fitness-score-server/internal/domain"
	"github.com/fitness-score-server/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fitscore",
		Short: "Compute fitness scores from health metrics",
		Long: `fitscore computes a 0-100 fitness score from cardiovascular,
recovery and activity metrics, with a per-metric explanation of every
point awarded.`,
		SilenceUsage: true,
	}

	root.AddCommand(newScoreCmd())
	root.AddCommand(newTrendCmd())
	root.AddCommand(newLevelsCmd())
	root.AddCommand(newDemoCmd())

	return root
}

func newScorer() *service.Scorer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return service.NewScorer(logger, 0)
}

// readJSON decodes a JSON file argument, or stdin when no argument is given.
func readJSON(args []string, out interface{}) error {
	var reader io.Reader = os.Stdin
	if len(args) > 0 {
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()
		reader = file
	}

	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func newScoreCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "score [metrics.json]",
		Short: "Score a single set of health metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var metrics domain.HealthMetrics
			if err := readJSON(args, &metrics); err != nil {
				return fmt.Errorf("reading metrics: %w", err)
			}

			result := newScorer().CalculateFitnessScore(metrics)

			if asJSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON result")
	return cmd
}

func newTrendCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "trend [days.json]",
		Short: "Score a sequence of days and chart the trend",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var days []domain.DayRecord
			if err := readJSON(args, &days); err != nil {
				return fmt.Errorf("reading day records: %w", err)
			}
			if len(days) == 0 {
				return fmt.Errorf("no day records provided")
			}

			scorer := newScorer()
			scores := scorer.CalculateDailyScoresFromHistoricalData(days)
			average := service.CalculateMonthlyAverageFromDailyScores(scores)

			if asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"daily_scores": scores,
					"average":      average,
				})
			}

			printTrend(cmd.OutOrStdout(), scores, average)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON result")
	return cmd
}

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the fitness level score bands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, band := range service.LevelBands() {
				fmt.Fprintf(out, "%-10s %3d - %3d\n", band.Level, band.MinScore, band.MaxScore)
			}
			return nil
		},
	}
}

func newDemoCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Chart a generated sample score history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 2 {
				return fmt.Errorf("--days must be at least 2")
			}

			scorer := newScorer()
			scores := service.GenerateSampleHistoryData(scorer.CalculateFitnessScore, days)
			average := service.CalculateMonthlyAverageFromDailyScores(scores)

			printTrend(cmd.OutOrStdout(), scores, average)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "number of sample days to generate")
	return cmd
}

func printJSON(out io.Writer, v interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printResult(out io.Writer, result domain.FitnessScoreResult) {
	fmt.Fprintf(out, "Total score: %d/100 (%s)\n\n", result.TotalScore, result.FitnessLevel)
	fmt.Fprintf(out, "  Cardiovascular  %2d/%d\n", result.CardiovascularPoints, domain.MaxCardiovascularPoints)
	fmt.Fprintf(out, "  Recovery        %2d/%d\n", result.RecoveryPoints, domain.MaxRecoveryPoints)
	fmt.Fprintf(out, "  Activity        %2d/%d\n", result.ActivityPoints, domain.MaxActivityPoints)
	fmt.Fprintf(out, "  Bonus           %2d/%d\n\n", result.BonusPoints, domain.MaxBonusPoints)

	for _, item := range result.HistoryItems {
		fmt.Fprintf(out, "  [%d/%d] %s: %s\n", item.Points, item.MaxPoints, item.Name, item.Rationale)
	}
}

func printTrend(out io.Writer, scores []domain.FitnessScoreResult, average domain.MonthlyAverage) {
	totals := make([]float64, len(scores))
	for i, score := range scores {
		totals[i] = float64(score.TotalScore)
	}

	fmt.Fprintln(out, asciigraph.Plot(totals,
		asciigraph.Height(10),
		asciigraph.Caption(fmt.Sprintf("Daily total score over %d days", len(scores))),
	))
	fmt.Fprintf(out, "\nAverage over %d days: %.1f (%s)\n",
		average.Days, average.TotalScore, average.FitnessLevel)
	fmt.Fprintf(out, "  Cardiovascular %.1f  Recovery %.1f  Activity %.1f  Bonus %.1f\n",
		average.CardiovascularPoints, average.RecoveryPoints,
		average.ActivityPoints, average.BonusPoints)
}
