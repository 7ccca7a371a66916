// Package league places a team's metrics on the scale of every team in the
// filtered scope.
package league

import (
	"math"

	"github.com/pable/lck-metrics/internal/aggregator"
	"github.com/pable/lck-metrics/internal/dataset"
	"github.com/pable/lck-metrics/internal/logger"
	"github.com/pable/lck-metrics/internal/model"
)

// DefaultMetrics are the radar axes of a team profile.
var DefaultMetrics = []string{"DPM", "Earned GPM", "KDA", "VSPM"}

// metricKeys maps a metric label to the name fragment its column is found by.
var metricKeys = map[string]string{
	"DPM":        "dpm",
	"Earned GPM": "earned gpm",
	"GPM":        "gpm",
	"VSPM":       "vspm",
}

// Normalize compares team against league for each metric. Min and max come
// from per-team means over league so one extreme game does not stretch the
// axis; without a team column they come from the raw rows. KDA uses the
// summed team formula. Metrics whose column cannot be found are skipped.
func Normalize(team, league *dataset.Table, metrics []string) []model.NormalizedMetric {
	log := logger.WithComponent("league")
	var out []model.NormalizedMetric
	for _, m := range metrics {
		var (
			nm model.NormalizedMetric
			ok bool
		)
		if m == aggregator.MetricKDA {
			nm, ok = normalizeKDA(team, league)
		} else {
			key, known := metricKeys[m]
			if !known {
				log.WithField("metric", m).Warn("unknown metric, skipping")
				continue
			}
			nm, ok = normalizeColumn(team, league, key)
		}
		if !ok {
			log.WithField("metric", m).Debug("metric column not found, skipping")
			continue
		}
		nm.Metric = m
		nm.TeamNorm, nm.LeagueNorm = scale(nm.Team, nm.Min, nm.Max), scale(nm.League, nm.Min, nm.Max)
		out = append(out, nm)
	}
	return out
}

func normalizeKDA(team, league *dataset.Table) (model.NormalizedMetric, bool) {
	var nm model.NormalizedMetric
	var ok bool
	if nm.Team, ok = aggregator.TeamKDA(team); !ok {
		return nm, false
	}
	if nm.League, ok = aggregator.TeamKDA(league); !ok {
		return nm, false
	}

	s := league.Schema()
	if s.Team == "" {
		nm.Min, nm.Max = 0, nm.League*2
		return nm, true
	}
	keys, groups := league.GroupBy(s.Team)
	vals := make([]float64, 0, len(keys))
	for _, k := range keys {
		kda, _ := aggregator.TeamKDA(league.Select(groups[k]))
		vals = append(vals, kda)
	}
	nm.Min, nm.Max = bounds(vals, nm.League)
	return nm, true
}

func normalizeColumn(team, league *dataset.Table, key string) (model.NormalizedMetric, bool) {
	var nm model.NormalizedMetric
	col, err := dataset.Resolve(team.Columns(), dataset.NearName(key))
	if err != nil || !league.Has(col) {
		return nm, false
	}
	nm.Team, _ = team.Mean(col)
	nm.League, _ = league.Mean(col)

	var vals []float64
	if s := league.Schema(); s.Team != "" {
		keys, groups := league.GroupBy(s.Team)
		for _, k := range keys {
			if v, ok := league.MeanOf(col, groups[k]); ok {
				vals = append(vals, v)
			}
		}
	} else {
		c := league.Column(col)
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Float(i); ok {
				vals = append(vals, v)
			}
		}
	}
	nm.Min, nm.Max = bounds(vals, nm.League)
	return nm, true
}

// bounds returns the min and max of vals, or fallback for both when vals is
// empty.
func bounds(vals []float64, fallback float64) (lo, hi float64) {
	if len(vals) == 0 {
		return fallback, fallback
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// scale maps v onto [lo, hi]. A degenerate range maps everything to 0.5.
func scale(v, lo, hi float64) float64 {
	if hi == lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}
