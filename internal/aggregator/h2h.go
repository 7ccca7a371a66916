package aggregator

import (
	"fmt"
	"math"
	"sort"

	"github.com/pable/lck-metrics/internal/dataset"
	"github.com/pable/lck-metrics/internal/model"
)

// HeadToHead joins player a's rows with player b's rows on game id and keeps
// the pairs where the two played for different teams. Players who never met
// yield an empty slice. The table needs game, team and player name columns.
func HeadToHead(players *dataset.Table, a, b string) ([]model.H2HRow, error) {
	s := players.Schema()
	switch {
	case s.Game == "":
		return nil, &dataset.SchemaError{Field: "game id", Candidates: []string{"gameid"}}
	case s.Team == "":
		return nil, &dataset.SchemaError{Field: "team name", Candidates: []string{"teamname"}}
	case s.PlayerName == "":
		return nil, &dataset.SchemaError{Field: "player name", Candidates: []string{"playername"}}
	}

	rowsA := players.RowsWhere(s.PlayerName, a)
	rowsB := players.RowsWhere(s.PlayerName, b)
	byGame := make(map[string][]int)
	for _, r := range rowsB {
		if g, ok := players.Str(r, s.Game); ok {
			byGame[g] = append(byGame[g], r)
		}
	}

	str := func(row int, col string) string {
		if col == "" {
			return ""
		}
		v, _ := players.Str(row, col)
		return v
	}
	num := func(row int, col string) float64 {
		c := players.Column(col)
		if c == nil {
			return 0
		}
		return c.FloatOr(row, 0)
	}

	var out []model.H2HRow
	for _, ra := range rowsA {
		g, ok := players.Str(ra, s.Game)
		if !ok {
			continue
		}
		teamA, okA := players.Str(ra, s.Team)
		for _, rb := range byGame[g] {
			teamB, okB := players.Str(rb, s.Team)
			if okA && okB && teamA == teamB {
				continue
			}
			out = append(out, model.H2HRow{
				GameID:    g,
				TeamA:     teamA,
				TeamB:     teamB,
				ChampionA: str(ra, s.Champion),
				ChampionB: str(rb, s.Champion),
				ResultA:   num(ra, s.Result),
				ResultB:   num(rb, s.Result),
				KDAA:      num(ra, dataset.KDAColumn),
				KDAB:      num(rb, dataset.KDAColumn),
				RowA:      ra,
				RowB:      rb,
			})
		}
	}
	return out, nil
}

// SummarizeH2H totals the joined games. WinRate is the mean of A's result as
// a percentage.
func SummarizeH2H(a, b string, rows []model.H2HRow) model.H2HSummary {
	sum := model.H2HSummary{PlayerA: a, PlayerB: b, Games: len(rows)}
	for _, r := range rows {
		sum.WinsA += r.ResultA
	}
	if sum.Games > 0 {
		sum.WinRate = sum.WinsA / float64(sum.Games) * 100
	}
	return sum
}

// CompareMetrics pairs the metrics of two sides and orders them by absolute
// difference, largest first. Metrics present on one side only count the
// other side as 0.
func CompareMetrics(a, b map[string]float64) []model.MetricDiff {
	keys := make(map[string]struct{}, len(a))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	out := make([]model.MetricDiff, 0, len(keys))
	for k := range keys {
		out = append(out, model.MetricDiff{Metric: k, A: a[k], B: b[k], Diff: a[k] - b[k]})
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := math.Abs(out[i].Diff), math.Abs(out[j].Diff)
		if di != dj {
			return di > dj
		}
		return out[i].Metric < out[j].Metric
	})
	return out
}

// SamePosition reports whether two players' first rows share a position. An
// error explains a mismatch.
func SamePosition(players *dataset.Table, a, b string) error {
	s := players.Schema()
	pa := firstValue(players, s.PlayerName, a, s.Position)
	pb := firstValue(players, s.PlayerName, b, s.Position)
	if pa != pb {
		return fmt.Errorf("players play different positions (%s: %s, %s: %s)", a, pa, b, pb)
	}
	return nil
}

func firstValue(t *dataset.Table, keyCol, key, col string) string {
	rows := t.RowsWhere(keyCol, key)
	if len(rows) == 0 || col == "" {
		return ""
	}
	v, _ := t.Str(rows[0], col)
	return v
}
