// Package model holds the result types produced by the analytics engine and
// consumed by the report and JSON writers.
package model

// ChampionStat aggregates picks and bans for one champion over the filtered
// scope. Rates are percentages.
type ChampionStat struct {
	Champion  string  `json:"champion"`
	Picks     int     `json:"picks"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	Bans      int     `json:"bans"`
	PickRate  float64 `json:"pick_rate"`
	BanRate   float64 `json:"ban_rate"`
	WinRate   float64 `json:"win_rate"`
	LossRate  float64 `json:"loss_rate"`
	PBRate    float64 `json:"p_b_rate"`
	Positions string  `json:"positions"`
}

// ChampionAggregate is one row of a player's most-played champions.
type ChampionAggregate struct {
	Champion    string  `json:"champion"`
	Games       int     `json:"games"`
	WinRate     float64 `json:"win_rate"`
	KDA         float64 `json:"kda"`
	GD10        float64 `json:"gd10"`
	GD15        float64 `json:"gd15"`
	GD20        float64 `json:"gd20"`
	GD25        float64 `json:"gd25"`
	CSPM        float64 `json:"cspm"`
	DPM         float64 `json:"dpm"`
	VisionScore float64 `json:"visionscore"`
}

// PlayerSummary is the header of a player profile.
type PlayerSummary struct {
	Player   string  `json:"player"`
	Team     string  `json:"team"`
	Position string  `json:"position"`
	Games    int     `json:"games"`
	Wins     float64 `json:"wins"`
	WinRate  float64 `json:"win_rate"`
}

// Method names the reduction used for a factor score.
type Method string

const (
	MethodNone   Method = "none"
	MethodDirect Method = "direct"
	MethodFactor Method = "factor"
	MethodPCA    Method = "pca"
	MethodMean   Method = "mean"
)

// FactorScore is one playstyle dimension for one player. Score is the
// percentile after polarity inversion; RawPercentile is before it.
type FactorScore struct {
	ClusterID     int      `json:"cluster_id"`
	Name          string   `json:"name"`
	Variables     []string `json:"variables"`
	RawPercentile float64  `json:"raw_percentile"`
	Score         float64  `json:"score"`
	Inverted      bool     `json:"inverted"`
	Percent       float64  `json:"percent"`
	Method        Method   `json:"method"`
}

// H2HRow is one game where the two selected players met on opposing teams.
// RowA and RowB index the player table the join ran on.
type H2HRow struct {
	GameID    string  `json:"gameid"`
	TeamA     string  `json:"team_a"`
	TeamB     string  `json:"team_b"`
	ChampionA string  `json:"champion_a"`
	ChampionB string  `json:"champion_b"`
	ResultA   float64 `json:"result_a"`
	ResultB   float64 `json:"result_b"`
	KDAA      float64 `json:"kda_a"`
	KDAB      float64 `json:"kda_b"`
	RowA      int     `json:"-"`
	RowB      int     `json:"-"`
}

// H2HSummary totals a head-to-head join from player A's side.
type H2HSummary struct {
	PlayerA string  `json:"player_a"`
	PlayerB string  `json:"player_b"`
	Games   int     `json:"games"`
	WinsA   float64 `json:"wins_a"`
	WinRate float64 `json:"win_rate_a"`
}

// MetricDiff is one metric of a side-by-side comparison.
type MetricDiff struct {
	Metric string  `json:"metric"`
	A      float64 `json:"a"`
	B      float64 `json:"b"`
	Diff   float64 `json:"diff"`
}

// NormalizedMetric places a team's value and the league mean on the min-max
// scale of per-team means.
type NormalizedMetric struct {
	Metric     string  `json:"metric"`
	Team       float64 `json:"team"`
	League     float64 `json:"league"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	TeamNorm   float64 `json:"team_norm"`
	LeagueNorm float64 `json:"league_norm"`
}

// ObjectiveWinRate is the win rate in games where the first objective was
// secured.
type ObjectiveWinRate struct {
	Objective string  `json:"objective"`
	Games     int     `json:"games"`
	WinRate   float64 `json:"win_rate"`
}

// CountWinRate is the win rate in games where an objective was taken Count
// times.
type CountWinRate struct {
	Count   int     `json:"count"`
	Games   int     `json:"games"`
	WinRate float64 `json:"win_rate"`
}

// LaningPoint is the gold and CS difference at one minute mark.
type LaningPoint struct {
	Minute     int     `json:"minute"`
	GoldDiff   float64 `json:"gold_diff"`
	CSDiff     float64 `json:"cs_diff"`
	LeagueGold float64 `json:"league_gold"`
	LeagueCS   float64 `json:"league_cs"`
}

// SideWinRate is the win rate of one map side.
type SideWinRate struct {
	Side    string  `json:"side"`
	Games   int     `json:"games"`
	WinRate float64 `json:"win_rate"`
}

// DurationSummary describes game length in minutes.
type DurationSummary struct {
	Games  int     `json:"games"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}
