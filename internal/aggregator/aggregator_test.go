package aggregator

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/lck-metrics/internal/dataset"
	"github.com/pable/lck-metrics/internal/model"
)

// makeTable builds a table from a header and rows of mixed values.
func makeTable(header []string, rows [][]any) *dataset.Table {
	str := make([][]string, len(rows))
	for i, r := range rows {
		out := make([]string, len(r))
		for j, v := range r {
			switch x := v.(type) {
			case string:
				out[j] = x
			case int:
				out[j] = strconv.Itoa(x)
			case float64:
				out[j] = strconv.FormatFloat(x, 'f', -1, 64)
			}
		}
		str[i] = out
	}
	return dataset.NewTable(header, str, nil)
}

func findChampion(t *testing.T, stats []model.ChampionStat, name string) model.ChampionStat {
	t.Helper()
	for _, s := range stats {
		if s.Champion == name {
			return s
		}
	}
	t.Fatalf("champion %s not found", name)
	return model.ChampionStat{}
}

// twoGameRows is 2 games of 10 player rows. Aatrox is top in both games;
// Zed is banned in both and Yasuo in game 1 only, repeated on every row.
func twoGameRows(aatroxG2Position string) *dataset.Table {
	header := []string{"gameid", "result", "position", "champion", "ban1", "ban2", "ban3"}
	positions := []string{"top", "jng", "mid", "bot", "sup"}
	champs := []string{
		"Aatrox", "Lee Sin", "Ahri", "Ezreal", "Karma",
		"Renekton", "Viego", "Orianna", "Kaisa", "Lulu",
		"Renekton", "Lee Sin", "Ahri", "Ezreal", "Karma",
		"Aatrox", "Viego", "Orianna", "Kaisa", "Lulu",
	}
	var rows [][]any
	for i := 0; i < 20; i++ {
		game := "G1"
		if i >= 10 {
			game = "G2"
		}
		result := 0
		if i < 5 || i >= 15 {
			result = 1
		}
		pos := positions[i%5]
		if i == 15 {
			pos = aatroxG2Position
		}
		ban2 := ""
		if game == "G1" {
			ban2 = "Yasuo"
		}
		rows = append(rows, []any{game, result, pos, champs[i], "Zed", ban2, ""})
	}
	return makeTable(header, rows)
}

// ---- Champion stats tests ----

func TestChampionStats_TwoGameScenario(t *testing.T) {
	stats := ChampionStats(twoGameRows("top"))

	aatrox := findChampion(t, stats, "Aatrox")
	assert.Equal(t, 2, aatrox.Picks)
	assert.Equal(t, 2, aatrox.Wins)
	assert.Equal(t, 100.0, aatrox.WinRate)
	assert.Equal(t, 100.0, aatrox.PickRate)
	assert.Equal(t, "top", aatrox.Positions)

	assert.Equal(t, "top", findChampion(t, stats, "Renekton").Positions)

	multi := findChampion(t, ChampionStats(twoGameRows("mid")), "Aatrox")
	assert.Equal(t, "mid/top", multi.Positions)
}

func TestChampionStats_BansDedupByGame(t *testing.T) {
	rows := twoGameRows("top")
	stats := ChampionStats(rows)

	zed := findChampion(t, stats, "Zed")
	assert.Equal(t, 2, zed.Bans)
	assert.Equal(t, 100.0, zed.BanRate)
	assert.Equal(t, 0, zed.Picks)
	assert.Equal(t, 0.0, zed.WinRate)
	assert.Equal(t, 0.0, zed.LossRate)
	assert.Equal(t, 100.0, zed.PBRate)

	yasuo := findChampion(t, stats, "Yasuo")
	assert.Equal(t, 1, yasuo.Bans)
	assert.Equal(t, 50.0, yasuo.BanRate)

	// Counting every row would report Zed 20 times.
	raw := 0
	for i := 0; i < rows.Len(); i++ {
		if v, ok := rows.Str(i, "ban1"); ok && v == "Zed" {
			raw++
		}
	}
	assert.Equal(t, 20, raw)
	assert.NotEqual(t, raw, zed.Bans)
}

func TestChampionStats_RatesConsistent(t *testing.T) {
	for _, s := range ChampionStats(twoGameRows("mid")) {
		if s.Picks > 0 {
			assert.InDelta(t, 100.0, s.WinRate+s.LossRate, 1e-9, s.Champion)
		} else {
			assert.Equal(t, 0.0, s.WinRate+s.LossRate, s.Champion)
		}
	}
}

func TestChampionStats_PickColumns(t *testing.T) {
	header := []string{"gameid", "position", "teamname", "result", "pick1", "pick2", "ban1"}
	teams := makeTable(header, [][]any{
		{"G1", "team", "T1", 1, "Aatrox", "Ahri", "Zed"},
		{"G1", "team", "GEN", 0, "Jax", "Vi", "Zed"},
		{"G2", "team", "T1", 0, "Aatrox", "Vi", "Yone"},
		{"G2", "team", "GEN", 1, "Jax", "Ahri", "Yone"},
	})
	stats := ChampionStats(teams)
	require.Len(t, stats, 6)

	names := make([]string, len(stats))
	for i, s := range stats {
		names[i] = s.Champion
	}
	assert.Equal(t, []string{"Aatrox", "Ahri", "Jax", "Vi", "Yone", "Zed"}, names)

	aatrox := findChampion(t, stats, "Aatrox")
	assert.Equal(t, 1, aatrox.Wins)
	assert.Equal(t, 1, aatrox.Losses)
	assert.Equal(t, 50.0, aatrox.WinRate)
	assert.Equal(t, "team", aatrox.Positions)

	vi := findChampion(t, stats, "Vi")
	assert.Equal(t, 100.0, vi.LossRate)

	zed := findChampion(t, stats, "Zed")
	assert.Equal(t, 1, zed.Bans)
	assert.Equal(t, 50.0, zed.BanRate)
}

func TestChampionStats_EmptyPickColumnsUseChampion(t *testing.T) {
	header := []string{"gameid", "position", "champion", "result", "pick1", "pick2", "ban1"}
	players := makeTable(header, [][]any{
		{"G1", "top", "Aatrox", 1, "", "", "Zed"},
		{"G1", "top", "Renekton", 0, "", "", "Zed"},
	})
	stats := ChampionStats(players)
	require.Len(t, stats, 3)

	aatrox := findChampion(t, stats, "Aatrox")
	assert.Equal(t, 1, aatrox.Picks)
	assert.Equal(t, 1, aatrox.Wins)
	assert.Equal(t, 100.0, aatrox.PickRate)
	assert.Equal(t, "top", aatrox.Positions)

	renekton := findChampion(t, stats, "Renekton")
	assert.Equal(t, 1, renekton.Picks)
	assert.Equal(t, 100.0, renekton.LossRate)

	zed := findChampion(t, stats, "Zed")
	assert.Equal(t, 0, zed.Picks)
	assert.Equal(t, 1, zed.Bans)
}

func TestChampionStats_NoGameIDFallback(t *testing.T) {
	var rows [][]any
	for i := 0; i < 10; i++ {
		rows = append(rows, []any{"top", "Aatrox", 1})
	}
	stats := ChampionStats(makeTable([]string{"position", "champion", "result"}, rows))
	require.Len(t, stats, 1)
	// 10 rows count as one game.
	assert.Equal(t, 1000.0, stats[0].PickRate)
}

func TestChampionStats_Empty(t *testing.T) {
	assert.Nil(t, ChampionStats(makeTable([]string{"champion"}, nil)))
}

func TestRankChampions(t *testing.T) {
	stats := []model.ChampionStat{
		{Champion: "A", Picks: 20, WinRate: 40},
		{Champion: "B", Picks: 5, WinRate: 80},
		{Champion: "C", Picks: 18, WinRate: 60},
	}
	got := RankChampions(stats, ByWinRate, 2, 18)
	require.Len(t, got, 2)
	assert.Equal(t, "C", got[0].Champion)
	assert.Equal(t, "A", got[1].Champion)
}

// ---- Player tests ----

func mostFiveFixture() *dataset.Table {
	header := []string{"champion", "result", "KDA", "golddiffat10", "golddiffat15", "golddiffat20",
		"golddiffat25", "cspm", "dpm", "visionscore"}
	return makeTable(header, [][]any{
		{"Aatrox", 1, 3.0, 100, 200, 300, 400, 8.0, 500, 20},
		{"Aatrox", 0, 1.0, -50, -100, -150, -200, 7.0, 400, 15},
		{"Lee Sin", 1, 5.0, 200, 400, 600, 800, 6.0, 300, 40},
		{"Lee Sin", 1, 4.0, 150, 300, 450, 600, 6.5, 350, 35},
		{"Ahri", 0, 2.0, -100, -200, -300, -400, 8.5, 600, 25},
		{"Ezreal", 1, 6.0, 300, 600, 900, 1200, 9.0, 800, 10},
		{"Karma", 0, 1.0, -200, -400, -600, -800, 1.0, 200, 60},
	})
}

func TestMostNChampions(t *testing.T) {
	most := MostNChampions(mostFiveFixture(), 5)
	require.Len(t, most, 5)

	aatrox := most[0]
	assert.Equal(t, "Aatrox", aatrox.Champion)
	assert.Equal(t, 2, aatrox.Games)
	assert.Equal(t, 50.0, aatrox.WinRate)
	assert.Equal(t, 2.0, aatrox.KDA)
	assert.Equal(t, 25.0, aatrox.GD10)
	assert.Equal(t, 450.0, aatrox.DPM)

	lee := most[1]
	assert.Equal(t, "Lee Sin", lee.Champion)
	assert.Equal(t, 2, lee.Games)
	assert.Equal(t, 100.0, lee.WinRate)

	// Single-game champions keep name order.
	assert.Equal(t, "Ahri", most[2].Champion)
	assert.Equal(t, "Ezreal", most[3].Champion)
	assert.Equal(t, "Karma", most[4].Champion)

	assert.Len(t, MostNChampions(mostFiveFixture(), 3), 3)
}

func TestPlayerMetrics_MissingColumnsDefaultToZero(t *testing.T) {
	rows := makeTable([]string{"KDA", "vspm"}, [][]any{{2.0, 1.5}, {4.0, 2.5}})
	m := PlayerMetrics(rows)
	assert.Equal(t, 3.0, m[MetricKDA])
	assert.Equal(t, 2.0, m[MetricVSPM])
	assert.Equal(t, 0.0, m[MetricDPM])
	assert.Equal(t, 0.0, m[MetricGPM])
}

func TestPlayerSummary(t *testing.T) {
	rows := makeTable([]string{"playername", "teamname", "position", "result"}, [][]any{
		{"Faker", "T1", "mid", 1},
		{"Faker", "T1", "mid", 0},
		{"Faker", "T1", "mid", 1},
		{"Faker", "T1", "mid", 1},
	})
	s := PlayerSummary("Faker", rows)
	assert.Equal(t, "T1", s.Team)
	assert.Equal(t, "mid", s.Position)
	assert.Equal(t, 4, s.Games)
	assert.Equal(t, 75.0, s.WinRate)
}

// ---- Team tests ----

func TestTeamKDA_SumFormula(t *testing.T) {
	rows := makeTable([]string{"kills", "deaths", "assists"}, [][]any{{10, 0, 20}, {5, 4, 10}})
	kda, ok := TeamKDA(rows)
	require.True(t, ok)
	assert.Equal(t, 11.25, kda)

	noDeaths := makeTable([]string{"Kills", "Deaths", "Assists"}, [][]any{{3, 0, 2}})
	kda, ok = TeamKDA(noDeaths)
	require.True(t, ok)
	assert.Equal(t, 5.0, kda)
}

func TestTeamMetrics(t *testing.T) {
	rows := makeTable([]string{"result", "kills", "deaths", "assists", "firstblood", "dragons", "earned gpm"},
		[][]any{
			{1, 10, 0, 20, 1, 3, 1200},
			{0, 5, 4, 10, 0, 1, 1000},
		})
	m := TeamMetrics(rows)
	assert.Equal(t, 2.0, m[MetricGames])
	assert.Equal(t, 50.0, m[MetricWinRate])
	assert.Equal(t, 11.25, m[MetricKDA])
	assert.Equal(t, 50.0, m["First Blood %"])
	assert.Equal(t, 2.0, m["Dragons"])
	assert.Equal(t, 1100.0, m[MetricEarnedGPM])

	_, hasDPM := m[MetricDPM]
	assert.False(t, hasDPM)
}

func TestObjectiveWinRates(t *testing.T) {
	rows := makeTable([]string{"result", "firstblood", "firsttower"}, [][]any{
		{1, 1, 0},
		{0, 1, 0},
		{1, 0, 0},
	})
	got := ObjectiveWinRates(rows)
	require.Len(t, got, 2)
	assert.Equal(t, model.ObjectiveWinRate{Objective: "firstblood", Games: 2, WinRate: 50}, got[0])
	assert.Equal(t, model.ObjectiveWinRate{Objective: "firsttower", Games: 0, WinRate: 0}, got[1])
}

func TestWinRateByCount(t *testing.T) {
	rows := makeTable([]string{"result", "dragons"}, [][]any{{0, 0}, {1, 2}, {1, 2}, {0, ""}})
	got := WinRateByCount(rows)
	assert.Equal(t, []model.CountWinRate{
		{Count: 0, Games: 2, WinRate: 0},
		{Count: 2, Games: 2, WinRate: 100},
	}, got["dragons"])
	_, ok := got["barons"]
	assert.False(t, ok)
}

func TestLaningPhase(t *testing.T) {
	header := []string{"golddiffat10", "csdiffat10", "golddiffat15"}
	team := makeTable(header, [][]any{{100, 2, 0}, {-50, 4, 0}})
	league := makeTable(header, [][]any{{100, 2, 0}, {-50, 4, 0}, {200, -6, 0}, {-200, 0, 0}})

	got := LaningPhase(team, league)
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].Minute)
	assert.Equal(t, 25.0, got[0].GoldDiff)
	assert.Equal(t, 3.0, got[0].CSDiff)
	assert.Equal(t, 68.75, got[0].LeagueGold)
	assert.Equal(t, 1.5, got[0].LeagueCS)
}

// ---- Head-to-head tests ----

func h2hTable() *dataset.Table {
	header := []string{"gameid", "playername", "teamname", "champion", "result", "KDA"}
	return makeTable(header, [][]any{
		{"G1", "Faker", "T1", "Ahri", 1, 4.0},
		{"G1", "Chovy", "GEN", "Azir", 0, 2.0},
		{"G2", "Faker", "T1", "Orianna", 0, 1.5},
		{"G2", "Chovy", "GEN", "Syndra", 1, 6.0},
		{"G3", "Faker", "T1", "Ryze", 1, 3.0},
		{"G3", "Zeus", "T1", "Jax", 1, 5.0},
	})
}

func TestHeadToHead(t *testing.T) {
	rows, err := HeadToHead(h2hTable(), "Faker", "Chovy")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "G1", rows[0].GameID)
	assert.Equal(t, "Ahri", rows[0].ChampionA)
	assert.Equal(t, "Azir", rows[0].ChampionB)
	assert.Equal(t, "GEN", rows[0].TeamB)

	sum := SummarizeH2H("Faker", "Chovy", rows)
	assert.Equal(t, 2, sum.Games)
	assert.Equal(t, 50.0, sum.WinRate)
}

func TestHeadToHead_SameTeamIsEmpty(t *testing.T) {
	rows, err := HeadToHead(h2hTable(), "Faker", "Zeus")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, 0.0, SummarizeH2H("Faker", "Zeus", rows).WinRate)

	rows, err = HeadToHead(h2hTable(), "Faker", "Nobody")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestHeadToHead_MissingColumns(t *testing.T) {
	_, err := HeadToHead(makeTable([]string{"playername"}, nil), "a", "b")
	assert.ErrorIs(t, err, dataset.ErrSchema)
}

func TestCompareMetrics_SortedByAbsDiff(t *testing.T) {
	diffs := CompareMetrics(
		map[string]float64{"KDA": 3, "DPM": 500, "VSPM": 2},
		map[string]float64{"KDA": 4, "DPM": 450},
	)
	require.Len(t, diffs, 3)
	assert.Equal(t, "DPM", diffs[0].Metric)
	assert.Equal(t, 50.0, diffs[0].Diff)
	assert.Equal(t, "VSPM", diffs[1].Metric)
	assert.Equal(t, "KDA", diffs[2].Metric)
	assert.Equal(t, -1.0, diffs[2].Diff)
}

func TestSamePosition(t *testing.T) {
	players := makeTable([]string{"playername", "position"}, [][]any{
		{"Faker", "mid"}, {"Chovy", "mid"}, {"Zeus", "top"},
	})
	assert.NoError(t, SamePosition(players, "Faker", "Chovy"))
	assert.Error(t, SamePosition(players, "Faker", "Zeus"))
}

// ---- Overview tests ----

func TestSideWinRates(t *testing.T) {
	rows := makeTable([]string{"side", "result"}, [][]any{
		{"Blue", 1}, {"Red", 0}, {"Blue", 0}, {"Red", 1}, {"Blue", 1}, {"Red", 0},
	})
	got := SideWinRates(rows)
	require.Len(t, got, 2)
	assert.Equal(t, "Blue", got[0].Side)
	assert.Equal(t, 3, got[0].Games)
	assert.InDelta(t, 66.6667, got[0].WinRate, 1e-3)
	assert.InDelta(t, 33.3333, got[1].WinRate, 1e-3)
}

func TestGameDuration(t *testing.T) {
	rows := makeTable([]string{"gamelength"}, [][]any{{1800}, {2400}, {2100}})
	d, ok, err := GameDuration(rows)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, d.Games)
	assert.InDelta(t, 35.0, d.Mean, 1e-9)
	assert.InDelta(t, 35.0, d.Median, 1e-9)
	assert.Equal(t, 30.0, d.Min)
	assert.Equal(t, 40.0, d.Max)

	_, ok, err = GameDuration(makeTable([]string{"result"}, nil))
	require.NoError(t, err)
	assert.False(t, ok)
}
