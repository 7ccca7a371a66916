// Package aggregator computes champion, player and team statistics over
// filtered dataset tables. Every function is read-only over its inputs.
package aggregator

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pable/lck-metrics/internal/dataset"
	"github.com/pable/lck-metrics/internal/logger"
	"github.com/pable/lck-metrics/internal/model"
)

// rowsPerGame approximates the player rows of one game when no game id is
// available.
const rowsPerGame = 10

var (
	pickCol = regexp.MustCompile(`^pick\d+$`)
	banCol  = regexp.MustCompile(`^ban\d+$`)
)

func matchingColumns(t *dataset.Table, re *regexp.Regexp) []string {
	var out []string
	for _, c := range t.Columns() {
		if re.MatchString(strings.ToLower(c)) {
			out = append(out, c)
		}
	}
	return out
}

// populated reports whether any cell of cols is non-null. Player rows of a
// flat export carry the pick headers with every cell empty.
func populated(t *dataset.Table, cols []string) bool {
	for _, name := range cols {
		c := t.Column(name)
		for i := 0; i < c.Len(); i++ {
			if _, ok := c.Str(i); ok {
				return true
			}
		}
	}
	return false
}

type pickAcc struct {
	picks     int
	wins      float64
	bans      int
	positions map[string]struct{}
}

// ChampionStats computes pick, ban and win rates per champion. The pick
// stream comes from pick1..pick5 when any of them holds a value (team rows)
// and from the champion column otherwise (player rows). Bans are counted over one
// representative row per game so repeated ban columns are not multiplied.
// Sorted by picks descending, then champion name.
func ChampionStats(t *dataset.Table) []model.ChampionStat {
	if t == nil || t.Len() == 0 {
		return nil
	}
	s := t.Schema()
	acc := make(map[string]*pickAcc)
	get := func(champ string) *pickAcc {
		a, ok := acc[champ]
		if !ok {
			a = &pickAcc{positions: make(map[string]struct{})}
			acc[champ] = a
		}
		return a
	}

	addPick := func(row int, champ string) {
		a := get(champ)
		a.picks++
		if s.Result != "" {
			if r, ok := t.Float(row, s.Result); ok {
				a.wins += r
			}
		}
		if s.Position != "" {
			if p, ok := t.Str(row, s.Position); ok {
				a.positions[p] = struct{}{}
			}
		}
	}

	if picks := matchingColumns(t, pickCol); populated(t, picks) {
		for i := 0; i < t.Len(); i++ {
			for _, col := range picks {
				if champ, ok := t.Str(i, col); ok {
					addPick(i, champ)
				}
			}
		}
	} else if s.Champion != "" {
		for i := 0; i < t.Len(); i++ {
			if champ, ok := t.Str(i, s.Champion); ok {
				addPick(i, champ)
			}
		}
	}

	if bans := matchingColumns(t, banCol); len(bans) > 0 {
		for _, i := range representativeRows(t, s.Game) {
			for _, col := range bans {
				if champ, ok := t.Str(i, col); ok {
					get(champ).bans++
				}
			}
		}
	}

	total := totalGames(t, s.Game)
	out := make([]model.ChampionStat, 0, len(acc))
	for champ, a := range acc {
		cs := model.ChampionStat{
			Champion:  champ,
			Picks:     a.picks,
			Wins:      int(a.wins + 0.5),
			Bans:      a.bans,
			Positions: joinSorted(a.positions),
		}
		cs.Losses = cs.Picks - cs.Wins
		if total > 0 {
			cs.PickRate = float64(cs.Picks) / total * 100
			cs.BanRate = float64(cs.Bans) / total * 100
		}
		if cs.Picks > 0 {
			cs.WinRate = float64(cs.Wins) / float64(cs.Picks) * 100
			cs.LossRate = float64(cs.Losses) / float64(cs.Picks) * 100
		}
		cs.PBRate = cs.PickRate + cs.BanRate
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Picks != out[j].Picks {
			return out[i].Picks > out[j].Picks
		}
		return out[i].Champion < out[j].Champion
	})
	return out
}

// representativeRows returns the first row of each distinct game. Null game
// ids share one representative. Without a game column every row is used.
func representativeRows(t *dataset.Table, gameCol string) []int {
	if gameCol == "" {
		rows := make([]int, t.Len())
		for i := range rows {
			rows[i] = i
		}
		return rows
	}
	seen := make(map[string]bool)
	nullSeen := false
	var rows []int
	for i := 0; i < t.Len(); i++ {
		g, ok := t.Str(i, gameCol)
		if !ok {
			if !nullSeen {
				nullSeen = true
				rows = append(rows, i)
			}
			continue
		}
		if !seen[g] {
			seen[g] = true
			rows = append(rows, i)
		}
	}
	return rows
}

// totalGames counts distinct game ids. Without a game column it falls back
// to rows/10 and logs a warning, since the ratio only holds for player rows.
func totalGames(t *dataset.Table, gameCol string) float64 {
	if gameCol == "" {
		logger.WithComponent("aggregator").
			WithField("rows", t.Len()).
			Warn("no gameid column, estimating total games as rows/10")
		return float64(t.Len()) / rowsPerGame
	}
	return float64(len(t.Distinct(gameCol)))
}

func joinSorted(set map[string]struct{}) string {
	vals := make([]string, 0, len(set))
	for v := range set {
		vals = append(vals, v)
	}
	sort.Strings(vals)
	return strings.Join(vals, "/")
}

// ChampionKey selects the value RankChampions orders by.
type ChampionKey int

const (
	ByPicks ChampionKey = iota
	ByBans
	ByWinRate
	ByLossRate
	ByPBRate
)

func (k ChampionKey) value(c model.ChampionStat) float64 {
	switch k {
	case ByBans:
		return float64(c.Bans)
	case ByWinRate:
		return c.WinRate
	case ByLossRate:
		return c.LossRate
	case ByPBRate:
		return c.PBRate
	default:
		return float64(c.Picks)
	}
}

// RankChampions returns the top n champions by key among those with at least
// minPicks picks. Ties keep the input order.
func RankChampions(stats []model.ChampionStat, key ChampionKey, n, minPicks int) []model.ChampionStat {
	var pool []model.ChampionStat
	for _, c := range stats {
		if c.Picks >= minPicks {
			pool = append(pool, c)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return key.value(pool[i]) > key.value(pool[j])
	})
	if n >= 0 && len(pool) > n {
		pool = pool[:n]
	}
	return pool
}
