package aggregator

import (
	"sort"

	"github.com/pable/lck-metrics/internal/dataset"
	"github.com/pable/lck-metrics/internal/model"
)

// Player metric keys.
const (
	MetricKDA  = "KDA"
	MetricDPM  = "DPM"
	MetricGPM  = "GPM"
	MetricVSPM = "VSPM"
)

// PlayerMetricOrder is the display order of PlayerMetrics keys.
var PlayerMetricOrder = []string{MetricKDA, MetricDPM, MetricGPM, MetricVSPM}

// PlayerMetrics averages KDA, DPM, GPM and VSPM over a player's rows. KDA is
// the mean of the per-row ratio computed at load. A missing column gives 0.
func PlayerMetrics(rows *dataset.Table) map[string]float64 {
	s := rows.Schema()
	out := map[string]float64{
		MetricKDA:  meanOrZero(rows, dataset.KDAColumn),
		MetricDPM:  meanOrZero(rows, s.DPM),
		MetricGPM:  meanOrZero(rows, s.GPM),
		MetricVSPM: meanOrZero(rows, s.VSPM),
	}
	return out
}

func meanOrZero(t *dataset.Table, col string) float64 {
	if col == "" {
		return 0
	}
	v, ok := t.Mean(col)
	if !ok {
		return 0
	}
	return v
}

// PlayerSummary describes a player's rows: team and position of the first
// row, game count and win rate.
func PlayerSummary(player string, rows *dataset.Table) model.PlayerSummary {
	s := rows.Schema()
	sum := model.PlayerSummary{Player: player, Games: rows.Len()}
	if rows.Len() == 0 {
		return sum
	}
	if s.Team != "" {
		sum.Team, _ = rows.Str(0, s.Team)
	}
	if s.Position != "" {
		sum.Position, _ = rows.Str(0, s.Position)
	}
	if c := rows.Column(s.Result); s.Result != "" && c != nil {
		sum.Wins = c.Sum()
		sum.WinRate = sum.Wins / float64(rows.Len()) * 100
	}
	return sum
}

// Columns read by MostNChampions.
const (
	colCSPM        = "cspm"
	colDPM         = "dpm"
	colVisionScore = "visionscore"
)

// MostNChampions groups a player's rows by champion and returns the n most
// played. Groups start in champion name order and the sort by games is
// stable, so ties keep that order.
func MostNChampions(rows *dataset.Table, n int) []model.ChampionAggregate {
	s := rows.Schema()
	if s.Champion == "" {
		return nil
	}
	keys, groups := rows.GroupBy(s.Champion)
	out := make([]model.ChampionAggregate, 0, len(keys))
	for _, champ := range keys {
		idx := groups[champ]
		agg := model.ChampionAggregate{Champion: champ, Games: len(idx)}
		mean := func(col string) float64 {
			if col == "" {
				return 0
			}
			v, _ := rows.MeanOf(col, idx)
			return v
		}
		agg.WinRate = mean(s.Result) * 100
		agg.KDA = mean(dataset.KDAColumn)
		agg.GD10 = mean("golddiffat10")
		agg.GD15 = mean("golddiffat15")
		agg.GD20 = mean("golddiffat20")
		agg.GD25 = mean("golddiffat25")
		agg.CSPM = mean(colCSPM)
		agg.DPM = mean(colDPM)
		agg.VisionScore = mean(colVisionScore)
		out = append(out, agg)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Games > out[j].Games })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
