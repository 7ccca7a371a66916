package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/lck-metrics/internal/aggregator"
	"github.com/pable/lck-metrics/internal/dataset"
	"github.com/pable/lck-metrics/internal/model"
	"github.com/pable/lck-metrics/internal/report"
)

// overviewCmd is the cobra command for the league-wide overview page.
var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "League overview of the filtered data",
	Long: `Display an overview of the filtered data: row counts, side win rates, game
length and champion leaderboards (most picked, most banned, highest win rate,
highest loss rate). Win and loss rate boards only include champions picked at
least min_games times.`,
	Args: cobra.NoArgs,
	RunE: runOverview,
}

type overview struct {
	Players  int                             `json:"player_rows"`
	Teams    int                             `json:"team_rows"`
	Sides    []model.SideWinRate             `json:"sides"`
	Duration *model.DurationSummary          `json:"duration,omitempty"`
	Boards   map[string][]model.ChampionStat `json:"leaderboards"`
}

var boards = []struct {
	name string
	key  aggregator.ChampionKey
}{
	{"Most picked", aggregator.ByPicks},
	{"Most banned", aggregator.ByBans},
	{"Highest win rate", aggregator.ByWinRate},
	{"Highest loss rate", aggregator.ByLossRate},
}

func runOverview(cmd *cobra.Command, args []string) error {
	s, err := loadScope()
	if err != nil {
		return err
	}

	ov := overview{
		Players: s.players.Len(),
		Teams:   s.teams.Len(),
		Sides:   aggregator.SideWinRates(s.teams),
		Boards:  make(map[string][]model.ChampionStat, len(boards)),
	}
	d, ok, err := aggregator.GameDuration(onePerGame(s.teams))
	if err != nil {
		return fmt.Errorf("game duration: %w", err)
	}
	if ok {
		ov.Duration = &d
	}

	stats := aggregator.ChampionStats(s.teams)
	for _, b := range boards {
		minPicks := 0
		if b.key == aggregator.ByWinRate || b.key == aggregator.ByLossRate {
			minPicks = cfg.Report.MinGames
		}
		ov.Boards[b.name] = aggregator.RankChampions(stats, b.key, cfg.Report.TopN, minPicks)
	}

	if ok, err := emit(ov); ok {
		return err
	}

	report.Heading(os.Stdout, "Overview")
	fmt.Fprintf(os.Stdout, "  Player rows : %d\n", ov.Players)
	fmt.Fprintf(os.Stdout, "  Team rows   : %d\n", ov.Teams)
	if len(ov.Sides) > 0 {
		report.Section(os.Stdout, "Sides")
		report.PrintSideWinRates(os.Stdout, ov.Sides)
	}
	if ov.Duration != nil {
		report.Section(os.Stdout, "Game length")
		report.PrintDuration(os.Stdout, *ov.Duration)
	}
	for _, b := range boards {
		report.Section(os.Stdout, b.name)
		if len(ov.Boards[b.name]) == 0 {
			report.Note(os.Stdout, "(no champions with at least %d picks)", cfg.Report.MinGames)
			continue
		}
		report.PrintChampionTable(os.Stdout, ov.Boards[b.name])
	}
	return nil
}

// onePerGame keeps the first row of each game so per-game values such as
// game length are counted once.
func onePerGame(t *dataset.Table) *dataset.Table {
	game := t.Schema().Game
	if game == "" {
		return t
	}
	keys, groups := t.GroupBy(game)
	rows := make([]int, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, groups[k][0])
	}
	return t.Select(rows)
}
