// Package report renders engine results as terminal tables or JSON.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/lck-metrics/internal/model"
)

// Missing marks an absent value in a table cell.
const Missing = "—"

var (
	cHeader = color.New(color.FgCyan, color.Bold)
	cWarn   = color.New(color.FgYellow)
	cMuted  = color.New(color.Faint)
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func f1(v float64) string  { return fmt.Sprintf("%.1f", v) }
func f2(v float64) string  { return fmt.Sprintf("%.2f", v) }
func pct(v float64) string { return fmt.Sprintf("%.1f%%", v) }

// Heading prints a page title.
func Heading(w io.Writer, title string) {
	cHeader.Fprintf(w, "\n=== %s ===\n\n", title)
}

// Section prints a sub-heading within a page.
func Section(w io.Writer, title string) {
	cHeader.Fprintf(w, "\n--- %s ---\n\n", title)
}

// Warn prints a highlighted warning line.
func Warn(w io.Writer, format string, args ...any) {
	cWarn.Fprintf(w, "warning: "+format+"\n", args...)
}

// Note prints a dimmed informational line.
func Note(w io.Writer, format string, args ...any) {
	cMuted.Fprintf(w, format+"\n", args...)
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// PrintNameList prints one name per row under a single header.
func PrintNameList(w io.Writer, header string, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	table := newTable(w)
	table.Header("#", header)
	for i, n := range names {
		table.Append(strconv.Itoa(i+1), n)
	}
	table.Render()
}

// PrintChampionTable prints pick/ban statistics.
func PrintChampionTable(w io.Writer, stats []model.ChampionStat) {
	table := newTable(w)
	table.Header("CHAMPION", "PICKS", "BANS", "W", "L", "PICK%", "BAN%", "P+B%", "WIN%", "POSITIONS")
	for _, c := range stats {
		win, pos := Missing, Missing
		if c.Picks > 0 {
			win = pct(c.WinRate)
		}
		if c.Positions != "" {
			pos = c.Positions
		}
		table.Append(
			c.Champion,
			strconv.Itoa(c.Picks),
			strconv.Itoa(c.Bans),
			strconv.Itoa(c.Wins),
			strconv.Itoa(c.Losses),
			pct(c.PickRate),
			pct(c.BanRate),
			pct(c.PBRate),
			win,
			pos,
		)
	}
	table.Render()
}

// PrintPlayerSummary prints the one-line header of a player profile.
func PrintPlayerSummary(w io.Writer, s model.PlayerSummary) {
	team, pos := s.Team, s.Position
	if team == "" {
		team = Missing
	}
	if pos == "" {
		pos = Missing
	}
	fmt.Fprintf(w, "Player: %s  |  Team: %s  |  Position: %s  |  Games: %d  |  Win rate: %s\n",
		s.Player, team, pos, s.Games, pct(s.WinRate))
}

// PrintMetrics prints metric/value rows in the given order. Keys missing
// from metrics are shown as absent.
func PrintMetrics(w io.Writer, metrics map[string]float64, order []string) {
	table := newTable(w)
	table.Header("METRIC", "VALUE")
	for _, k := range order {
		v, ok := metrics[k]
		cell := Missing
		if ok {
			cell = f2(v)
		}
		table.Append(k, cell)
	}
	table.Render()
}

// PrintMetricDiffs prints a side-by-side comparison of two subjects.
func PrintMetricDiffs(w io.Writer, nameA, nameB string, diffs []model.MetricDiff) {
	table := newTable(w)
	table.Header("METRIC", nameA, nameB, "DIFF")
	for _, d := range diffs {
		table.Append(d.Metric, f2(d.A), f2(d.B), fmt.Sprintf("%+.2f", d.Diff))
	}
	table.Render()
}

// PrintMostChampions prints a player's most-played champions.
func PrintMostChampions(w io.Writer, aggs []model.ChampionAggregate) {
	if len(aggs) == 0 {
		fmt.Fprintln(w, "(no champion data)")
		return
	}
	table := newTable(w)
	table.Header("CHAMPION", "GAMES", "WIN%", "KDA", "GD@10", "GD@15", "GD@20", "GD@25", "CSPM", "DPM", "VISION")
	for _, a := range aggs {
		table.Append(
			a.Champion,
			strconv.Itoa(a.Games),
			pct(a.WinRate),
			f2(a.KDA),
			f1(a.GD10),
			f1(a.GD15),
			f1(a.GD20),
			f1(a.GD25),
			f2(a.CSPM),
			f1(a.DPM),
			f1(a.VisionScore),
		)
	}
	table.Render()
}

// PrintFactorScores prints playstyle scores in cluster order. Inverted
// clusters are marked with "*".
func PrintFactorScores(w io.Writer, scores map[int]model.FactorScore) {
	if len(scores) == 0 {
		fmt.Fprintln(w, "(no playstyle scores)")
		return
	}
	ids := make([]int, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	table := newTable(w)
	table.Header("#", "DIMENSION", "SCORE", "RAW", "BAR%", "METHOD", "VARS")
	for _, id := range ids {
		s := scores[id]
		name := s.Name
		if s.Inverted {
			name += " *"
		}
		raw, bar := Missing, Missing
		if s.Method != model.MethodNone {
			raw = f1(s.RawPercentile)
			bar = f1(s.Percent)
		}
		table.Append(strconv.Itoa(id), name, f1(s.Score), raw, bar, string(s.Method), strconv.Itoa(len(s.Variables)))
	}
	table.Render()
	Note(w, "* lower raw value scores higher")
}

// PrintNormalized prints team-versus-league values on the per-team scale.
func PrintNormalized(w io.Writer, team string, metrics []model.NormalizedMetric) {
	table := newTable(w)
	table.Header("METRIC", team, "LEAGUE", "MIN", "MAX", "TEAM NORM", "LEAGUE NORM")
	for _, m := range metrics {
		table.Append(m.Metric, f2(m.Team), f2(m.League), f2(m.Min), f2(m.Max), f2(m.TeamNorm), f2(m.LeagueNorm))
	}
	table.Render()
}

// PrintLaning prints gold and CS differences per minute mark.
func PrintLaning(w io.Writer, points []model.LaningPoint) {
	if len(points) == 0 {
		fmt.Fprintln(w, "(no laning columns)")
		return
	}
	table := newTable(w)
	table.Header("MIN", "GOLD DIFF", "LEAGUE GOLD", "CS DIFF", "LEAGUE CS")
	for _, p := range points {
		table.Append(strconv.Itoa(p.Minute), f1(p.GoldDiff), f1(p.LeagueGold), f1(p.CSDiff), f1(p.LeagueCS))
	}
	table.Render()
}

// PrintObjectiveWinRates prints win rates after securing each first objective.
func PrintObjectiveWinRates(w io.Writer, rates []model.ObjectiveWinRate) {
	table := newTable(w)
	table.Header("OBJECTIVE", "GAMES", "WIN%")
	for _, r := range rates {
		win := Missing
		if r.Games > 0 {
			win = pct(r.WinRate)
		}
		table.Append(r.Objective, strconv.Itoa(r.Games), win)
	}
	table.Render()
}

// PrintCountWinRates prints one block per objective, sorted by name.
func PrintCountWinRates(w io.Writer, rates map[string][]model.CountWinRate) {
	keys := make([]string, 0, len(rates))
	for k := range rates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := newTable(w)
	table.Header("OBJECTIVE", "COUNT", "GAMES", "WIN%")
	for _, k := range keys {
		for _, r := range rates[k] {
			table.Append(k, strconv.Itoa(r.Count), strconv.Itoa(r.Games), pct(r.WinRate))
		}
	}
	table.Render()
}

// PrintH2H prints the head-to-head summary followed by each game.
func PrintH2H(w io.Writer, s model.H2HSummary, rows []model.H2HRow) {
	if s.Games == 0 {
		fmt.Fprintf(w, "%s and %s never met on opposing teams.\n", s.PlayerA, s.PlayerB)
		return
	}
	fmt.Fprintf(w, "%s vs %s  |  Games: %d  |  %s wins: %.0f  |  %s win rate: %s\n\n",
		s.PlayerA, s.PlayerB, s.Games, s.PlayerA, s.WinsA, s.PlayerA, pct(s.WinRate))

	table := newTable(w)
	table.Header("GAME", "TEAM A", "CHAMP A", "KDA A", "RES A", "TEAM B", "CHAMP B", "KDA B", "RES B")
	for _, r := range rows {
		table.Append(
			r.GameID,
			r.TeamA, r.ChampionA, f2(r.KDAA), fmt.Sprintf("%.0f", r.ResultA),
			r.TeamB, r.ChampionB, f2(r.KDAB), fmt.Sprintf("%.0f", r.ResultB),
		)
	}
	table.Render()
}

// PrintSideWinRates prints win rate per map side.
func PrintSideWinRates(w io.Writer, sides []model.SideWinRate) {
	table := newTable(w)
	table.Header("SIDE", "GAMES", "WIN%")
	for _, s := range sides {
		table.Append(s.Side, strconv.Itoa(s.Games), pct(s.WinRate))
	}
	table.Render()
}

// PrintDuration prints the game length summary in minutes.
func PrintDuration(w io.Writer, d model.DurationSummary) {
	fmt.Fprintf(w, "  Games   : %d\n", d.Games)
	fmt.Fprintf(w, "  Mean    : %.1f min\n", d.Mean)
	fmt.Fprintf(w, "  Median  : %.1f min\n", d.Median)
	fmt.Fprintf(w, "  IQR     : %.1f – %.1f min\n", d.P25, d.P75)
	fmt.Fprintf(w, "  Range   : %.1f – %.1f min\n", d.Min, d.Max)
}

// PrintRows prints an arbitrary result set, as returned by a SQL query.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}
