package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/lck-metrics/internal/aggregator"
	"github.com/pable/lck-metrics/internal/league"
	"github.com/pable/lck-metrics/internal/model"
	"github.com/pable/lck-metrics/internal/report"
)

var teamMetrics []string

// teamCmd is the cobra command for a single team's profile.
var teamCmd = &cobra.Command{
	Use:   "team <name>",
	Short: "Profile one team: averages, league comparison, laning and objectives",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeam,
}

func init() {
	teamCmd.Flags().StringSliceVar(&teamMetrics, "metrics", league.DefaultMetrics, "metrics to compare against the league")
}

type teamProfile struct {
	Team        string                          `json:"team"`
	Metrics     map[string]float64              `json:"metrics"`
	League      []model.NormalizedMetric        `json:"league"`
	Laning      []model.LaningPoint             `json:"laning"`
	Objectives  []model.ObjectiveWinRate        `json:"objectives"`
	CountWins   map[string][]model.CountWinRate `json:"count_win_rates"`
	SideWinRate []model.SideWinRate             `json:"sides"`
}

func runTeam(cmd *cobra.Command, args []string) error {
	name := args[0]
	s, err := loadScope()
	if err != nil {
		return err
	}
	rows, err := s.teamRows(name)
	if err != nil {
		return err
	}

	p := teamProfile{
		Team:        name,
		Metrics:     aggregator.TeamMetrics(rows),
		League:      league.Normalize(rows, s.teams, teamMetrics),
		Laning:      aggregator.LaningPhase(rows, s.teams),
		Objectives:  aggregator.ObjectiveWinRates(rows),
		CountWins:   aggregator.WinRateByCount(rows),
		SideWinRate: aggregator.SideWinRates(rows),
	}
	if ok, err := emit(p); ok {
		return err
	}

	report.Heading(os.Stdout, name)
	report.PrintMetrics(os.Stdout, p.Metrics, aggregator.TeamMetricOrder)
	report.Section(os.Stdout, "Versus league")
	report.PrintNormalized(os.Stdout, name, p.League)
	report.Section(os.Stdout, "Laning phase")
	report.PrintLaning(os.Stdout, p.Laning)
	report.Section(os.Stdout, "First objectives")
	report.PrintObjectiveWinRates(os.Stdout, p.Objectives)
	if len(p.CountWins) > 0 {
		report.Section(os.Stdout, "Win rate by objective count")
		report.PrintCountWinRates(os.Stdout, p.CountWins)
	}
	if len(p.SideWinRate) > 0 {
		report.Section(os.Stdout, "Sides")
		report.PrintSideWinRates(os.Stdout, p.SideWinRate)
	}
	return nil
}
