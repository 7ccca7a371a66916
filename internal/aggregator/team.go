package aggregator

import (
	"fmt"
	"math"
	"sort"

	"github.com/pable/lck-metrics/internal/dataset"
	"github.com/pable/lck-metrics/internal/model"
)

// Team metric keys beyond the player ones.
const (
	MetricGames     = "Games"
	MetricWinRate   = "Win Rate"
	MetricEarnedGPM = "Earned GPM"
)

type teamColumn struct {
	key string
	col string
}

var objectiveMeans = []teamColumn{
	{"Inhibitors", "inhibitors"},
	{"Towers", "towers"},
	{"Dragons", "dragons"},
	{"Barons", "barons"},
	{"Void Grubs", "void_grubs"},
}

var firstObjectives = []teamColumn{
	{"First Blood", "firstblood"},
	{"First Tower", "firsttower"},
	{"First Dragon", "firstdragon"},
	{"First Herald", "firstherald"},
	{"First Baron", "firstbaron"},
	{"Atakhans", "atakhans"},
}

// TeamMetricOrder is the display order of TeamMetrics keys. Keys whose
// source column is absent are missing from the map.
var TeamMetricOrder = func() []string {
	keys := []string{MetricGames, MetricWinRate, MetricKDA, MetricDPM, MetricGPM, MetricEarnedGPM, MetricVSPM}
	for _, o := range objectiveMeans {
		keys = append(keys, o.key)
	}
	for _, o := range firstObjectives {
		keys = append(keys, o.key+" %")
	}
	return keys
}()

// TeamKDA is (Σkills + Σassists) / max(Σdeaths, 1) over all rows. ok is
// false when a kill, death or assist column is missing.
func TeamKDA(rows *dataset.Table) (kda float64, ok bool) {
	s := rows.Schema()
	if s.Kills == "" || s.Deaths == "" || s.Assists == "" {
		return 0, false
	}
	k := rows.Column(s.Kills).Sum()
	a := rows.Column(s.Assists).Sum()
	d := rows.Column(s.Deaths).Sum()
	return (k + a) / math.Max(d, 1), true
}

// TeamMetrics summarizes a team's rows. KDA uses the summed form from
// TeamKDA, not the per-row mean used for players.
func TeamMetrics(rows *dataset.Table) map[string]float64 {
	s := rows.Schema()
	out := map[string]float64{MetricGames: float64(rows.Len())}
	if rows.Len() == 0 {
		return out
	}
	put := func(key, col string, scale float64) {
		if col == "" {
			return
		}
		if v, ok := rows.Mean(col); ok {
			out[key] = v * scale
		}
	}

	put(MetricWinRate, s.Result, 100)
	if kda, ok := TeamKDA(rows); ok {
		out[MetricKDA] = kda
	} else if v, ok := rows.Mean(dataset.KDAColumn); ok {
		out[MetricKDA] = v
	}
	put(MetricDPM, s.DPM, 1)
	put(MetricGPM, s.GPM, 1)
	put(MetricEarnedGPM, s.EarnedGPM, 1)
	put(MetricVSPM, s.VSPM, 1)
	for _, o := range objectiveMeans {
		put(o.key, o.col, 1)
	}
	for _, o := range firstObjectives {
		put(o.key+" %", o.col, 100)
	}
	return out
}

// firstObjectiveColumns are the flags ObjectiveWinRates reports on.
var firstObjectiveColumns = []string{"firstblood", "firsttower", "firstdragon", "firstherald", "firstbaron"}

// ObjectiveWinRates returns, for each first-objective flag present, the win
// rate over the games where the flag is 1. Needs a result column.
func ObjectiveWinRates(rows *dataset.Table) []model.ObjectiveWinRate {
	s := rows.Schema()
	if s.Result == "" {
		return nil
	}
	res := rows.Column(s.Result)
	var out []model.ObjectiveWinRate
	for _, col := range firstObjectiveColumns {
		c := rows.Column(col)
		if c == nil {
			continue
		}
		o := model.ObjectiveWinRate{Objective: col}
		var wins float64
		var counted int
		for i := 0; i < rows.Len(); i++ {
			if v, ok := c.Float(i); !ok || v != 1 {
				continue
			}
			o.Games++
			if r, ok := res.Float(i); ok {
				wins += r
				counted++
			}
		}
		if counted > 0 {
			o.WinRate = wins / float64(counted) * 100
		}
		out = append(out, o)
	}
	return out
}

// countObjectives are grouped by how many were taken in WinRateByCount.
var countObjectives = []string{"void_grubs", "dragons", "barons"}

// WinRateByCount groups games by the number of void grubs, dragons and
// barons taken and returns the win rate per count, ascending. Missing or
// non-numeric counts are treated as 0.
func WinRateByCount(rows *dataset.Table) map[string][]model.CountWinRate {
	s := rows.Schema()
	out := make(map[string][]model.CountWinRate)
	if s.Result == "" {
		return out
	}
	res := rows.Column(s.Result)
	for _, col := range countObjectives {
		c := rows.Column(col)
		if c == nil {
			continue
		}
		type bucket struct {
			games, counted int
			wins           float64
		}
		buckets := make(map[int]*bucket)
		for i := 0; i < rows.Len(); i++ {
			n := int(c.FloatOr(i, 0))
			b, ok := buckets[n]
			if !ok {
				b = &bucket{}
				buckets[n] = b
			}
			b.games++
			if r, ok := res.Float(i); ok {
				b.wins += r
				b.counted++
			}
		}
		counts := make([]int, 0, len(buckets))
		for n := range buckets {
			counts = append(counts, n)
		}
		sort.Ints(counts)
		for _, n := range counts {
			b := buckets[n]
			cw := model.CountWinRate{Count: n, Games: b.games}
			if b.counted > 0 {
				cw.WinRate = b.wins / float64(b.counted) * 100
			}
			out[col] = append(out[col], cw)
		}
	}
	return out
}

// LaningMinutes are the snapshot minutes of the gold and CS diff columns.
var LaningMinutes = []int{10, 15, 20, 25}

// LaningPhase returns a team's mean gold and CS difference at each minute
// mark alongside a league reference of Σ|diff| / (2n) over the league rows.
// Minutes whose columns are missing on either table are skipped.
func LaningPhase(team, league *dataset.Table) []model.LaningPoint {
	var out []model.LaningPoint
	for _, m := range LaningMinutes {
		gd := fmt.Sprintf("golddiffat%d", m)
		cd := fmt.Sprintf("csdiffat%d", m)
		if !team.Has(gd) || !team.Has(cd) || !league.Has(gd) || !league.Has(cd) {
			continue
		}
		p := model.LaningPoint{Minute: m}
		p.GoldDiff, _ = team.Mean(gd)
		p.CSDiff, _ = team.Mean(cd)
		p.LeagueGold = absHalfMean(league.Column(gd), league.Len())
		p.LeagueCS = absHalfMean(league.Column(cd), league.Len())
		out = append(out, p)
	}
	return out
}

func absHalfMean(c *dataset.Column, n int) float64 {
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Float(i); ok {
			sum += math.Abs(v)
		}
	}
	return sum / float64(2*n)
}
