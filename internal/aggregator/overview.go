package aggregator

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/pable/lck-metrics/internal/dataset"
	"github.com/pable/lck-metrics/internal/model"
)

// SideWinRates returns the win rate per map side, sorted by side name.
func SideWinRates(rows *dataset.Table) []model.SideWinRate {
	s := rows.Schema()
	if s.Side == "" || s.Result == "" {
		return nil
	}
	keys, groups := rows.GroupBy(s.Side)
	out := make([]model.SideWinRate, 0, len(keys))
	for _, side := range keys {
		idx := groups[side]
		wr, _ := rows.MeanOf(s.Result, idx)
		out = append(out, model.SideWinRate{Side: side, Games: len(idx), WinRate: wr * 100})
	}
	return out
}

// gameLengthCol holds game length in seconds.
const gameLengthCol = "gamelength"

// GameDuration summarizes game length in minutes. ok is false when the
// column is absent or empty.
func GameDuration(rows *dataset.Table) (model.DurationSummary, bool, error) {
	c := rows.Column(gameLengthCol)
	if c == nil {
		return model.DurationSummary{}, false, nil
	}
	var minutes []float64
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Float(i); ok {
			minutes = append(minutes, v/60)
		}
	}
	if len(minutes) == 0 {
		return model.DurationSummary{}, false, nil
	}

	sum := model.DurationSummary{Games: len(minutes)}
	var err error
	if sum.Mean, err = stats.Mean(minutes); err != nil {
		return sum, false, fmt.Errorf("mean game length: %w", err)
	}
	if sum.Median, err = stats.Median(minutes); err != nil {
		return sum, false, fmt.Errorf("median game length: %w", err)
	}
	if sum.P25, err = stats.Percentile(minutes, 25); err != nil {
		return sum, false, fmt.Errorf("game length p25: %w", err)
	}
	if sum.P75, err = stats.Percentile(minutes, 75); err != nil {
		return sum, false, fmt.Errorf("game length p75: %w", err)
	}
	if sum.Min, err = stats.Min(minutes); err != nil {
		return sum, false, fmt.Errorf("min game length: %w", err)
	}
	if sum.Max, err = stats.Max(minutes); err != nil {
		return sum, false, fmt.Errorf("max game length: %w", err)
	}
	return sum, true, nil
}
