package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/lck-metrics/internal/aggregator"
	"github.com/pable/lck-metrics/internal/dataset"
	"github.com/pable/lck-metrics/internal/report"
)

var (
	champSource string
	champSort   string
	champLimit  int
)

var championsCmd = &cobra.Command{
	Use:   "champions",
	Short: "Champion pick, ban and win statistics",
	Long: `Aggregate champion picks and bans over the filtered data.

With --source team (default) picks come from the pick1..pick5 columns of team
rows when present. With --source player they come from each player row's
champion. Bans are counted once per game.`,
	Args: cobra.NoArgs,
	RunE: runChampions,
}

func init() {
	championsCmd.Flags().StringVar(&champSource, "source", "team", "row partition to aggregate (team or player)")
	championsCmd.Flags().StringVar(&champSort, "sort", "picks", "sort by picks, bans, win, loss or pb")
	championsCmd.Flags().IntVar(&champLimit, "limit", -1, "show at most this many champions (-1 for all)")
}

var championKeys = map[string]aggregator.ChampionKey{
	"picks": aggregator.ByPicks,
	"bans":  aggregator.ByBans,
	"win":   aggregator.ByWinRate,
	"loss":  aggregator.ByLossRate,
	"pb":    aggregator.ByPBRate,
}

func runChampions(cmd *cobra.Command, args []string) error {
	key, ok := championKeys[champSort]
	if !ok {
		return fmt.Errorf("unknown sort key %q", champSort)
	}

	s, err := loadScope()
	if err != nil {
		return err
	}
	var t *dataset.Table
	switch champSource {
	case "team":
		t = s.teams
	case "player":
		t = s.players
	default:
		return fmt.Errorf("unknown source %q (want team or player)", champSource)
	}

	stats := aggregator.ChampionStats(t)
	minPicks := 0
	if key == aggregator.ByWinRate || key == aggregator.ByLossRate {
		minPicks = cfg.Report.MinGames
	}
	stats = aggregator.RankChampions(stats, key, champLimit, minPicks)

	if ok, err := emit(stats); ok {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(os.Stdout, "No champion data in the filtered scope.")
		return nil
	}
	report.Heading(os.Stdout, "Champions")
	report.PrintChampionTable(os.Stdout, stats)
	return nil
}
