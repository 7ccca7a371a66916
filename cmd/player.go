package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/lck-metrics/internal/aggregator"
	"github.com/pable/lck-metrics/internal/model"
	"github.com/pable/lck-metrics/internal/report"
)

var playerMostN int

// playerCmd is the cobra command for a single player's profile.
var playerCmd = &cobra.Command{
	Use:   "player <name>",
	Short: "Profile one player: summary, averages, champions and playstyle",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayer,
}

var styleCmd = &cobra.Command{
	Use:   "style <name>",
	Short: "Playstyle scores of one player against their position cohort",
	Long: `Score a player on the eight playstyle dimensions defined by the cluster file.
Each dimension reduces its stat columns to one composite and places the player's
mean composite on a percentile scale (50 = cohort mean, 10 per standard
deviation) against every row at the same position in the filtered data.`,
	Args: cobra.ExactArgs(1),
	RunE: runStyle,
}

func init() {
	playerCmd.Flags().IntVar(&playerMostN, "most", 0, "number of most-played champions (default from config)")
}

type playerProfile struct {
	Summary   model.PlayerSummary       `json:"summary"`
	Metrics   map[string]float64        `json:"metrics"`
	Champions []model.ChampionAggregate `json:"champions"`
	Style     map[int]model.FactorScore `json:"style"`
}

func runPlayer(cmd *cobra.Command, args []string) error {
	name := args[0]
	s, err := loadScope()
	if err != nil {
		return err
	}
	rows, err := s.playerRows(name)
	if err != nil {
		return err
	}

	n := playerMostN
	if n <= 0 {
		n = cfg.Report.MostN
	}
	p := playerProfile{
		Summary:   aggregator.PlayerSummary(name, rows),
		Metrics:   aggregator.PlayerMetrics(rows),
		Champions: aggregator.MostNChampions(rows, n),
	}
	p.Style = loadScorer().Scores(name, p.Summary.Position, s.players)

	if ok, err := emit(p); ok {
		return err
	}

	report.Heading(os.Stdout, name)
	report.PrintPlayerSummary(os.Stdout, p.Summary)
	report.Section(os.Stdout, "Averages")
	report.PrintMetrics(os.Stdout, p.Metrics, aggregator.PlayerMetricOrder)
	report.Section(os.Stdout, "Most played champions")
	report.PrintMostChampions(os.Stdout, p.Champions)
	report.Section(os.Stdout, "Playstyle")
	report.PrintFactorScores(os.Stdout, p.Style)
	return nil
}

func runStyle(cmd *cobra.Command, args []string) error {
	name := args[0]
	s, err := loadScope()
	if err != nil {
		return err
	}
	rows, err := s.playerRows(name)
	if err != nil {
		return err
	}
	position, _ := rows.Str(0, s.ds.Schema.Position)
	scores := loadScorer().Scores(name, position, s.players)

	if ok, err := emit(scores); ok {
		return err
	}
	report.Heading(os.Stdout, name+" playstyle ("+position+")")
	report.PrintFactorScores(os.Stdout, scores)
	return nil
}
