package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/lck-metrics/internal/aggregator"
	"github.com/pable/lck-metrics/internal/model"
	"github.com/pable/lck-metrics/internal/report"
)

var anyPosition bool

var comparePlayersCmd = &cobra.Command{
	Use:   "compare-players <a> <b>",
	Short: "Compare two players' averages side by side",
	Long: `Compare two players' average KDA, DPM, GPM and VSPM over the filtered data.
Both players must play the same position unless --any-position is set.`,
	Args: cobra.ExactArgs(2),
	RunE: runComparePlayers,
}

var compareTeamsCmd = &cobra.Command{
	Use:   "compare-teams <a> <b>",
	Short: "Compare two teams' averages side by side",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompareTeams,
}

func init() {
	comparePlayersCmd.Flags().BoolVar(&anyPosition, "any-position", false, "allow comparing players of different positions")
}

func runComparePlayers(cmd *cobra.Command, args []string) error {
	a, b := args[0], args[1]
	s, err := loadScope()
	if err != nil {
		return err
	}
	rowsA, err := s.playerRows(a)
	if err != nil {
		return err
	}
	rowsB, err := s.playerRows(b)
	if err != nil {
		return err
	}
	if !anyPosition {
		if err := aggregator.SamePosition(s.players, a, b); err != nil {
			return fmt.Errorf("compare players: %w", err)
		}
	}

	diffs := aggregator.CompareMetrics(aggregator.PlayerMetrics(rowsA), aggregator.PlayerMetrics(rowsB))
	return printComparison(a, b, diffs)
}

func runCompareTeams(cmd *cobra.Command, args []string) error {
	a, b := args[0], args[1]
	s, err := loadScope()
	if err != nil {
		return err
	}
	rowsA, err := s.teamRows(a)
	if err != nil {
		return err
	}
	rowsB, err := s.teamRows(b)
	if err != nil {
		return err
	}

	diffs := aggregator.CompareMetrics(aggregator.TeamMetrics(rowsA), aggregator.TeamMetrics(rowsB))
	return printComparison(a, b, diffs)
}

func printComparison(a, b string, diffs []model.MetricDiff) error {
	if ok, err := emit(diffs); ok {
		return err
	}
	report.Heading(os.Stdout, a+" vs "+b)
	report.PrintMetricDiffs(os.Stdout, a, b, diffs)
	return nil
}
