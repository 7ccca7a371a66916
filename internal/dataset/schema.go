package dataset

import "strings"

// Candidate is one way a logical field may be named in the source.
type Candidate struct {
	Label string
	Match func(col string) bool
}

// Exact matches a column named exactly name.
func Exact(name string) Candidate {
	return Candidate{Label: name, Match: func(col string) bool { return col == name }}
}

// Fold matches name case-insensitively.
func Fold(name string) Candidate {
	return Candidate{Label: name, Match: func(col string) bool { return strings.EqualFold(col, name) }}
}

// Contains matches any column whose lower-cased name contains sub.
func Contains(sub string) Candidate {
	sub = strings.ToLower(sub)
	return Candidate{Label: "*" + sub + "*", Match: func(col string) bool {
		return strings.Contains(strings.ToLower(col), sub)
	}}
}

// NearName matches a column equal to key after lower-casing, or one that
// contains key and is less than five characters longer.
func NearName(key string) Candidate {
	key = strings.ToLower(key)
	return Candidate{Label: "~" + key, Match: func(col string) bool {
		lc := strings.ToLower(col)
		return lc == key || (strings.Contains(lc, key) && len(col) < len(key)+5)
	}}
}

// Resolve returns the first column matched by the earliest candidate. Within
// one candidate, columns are tried in source order.
func Resolve(columns []string, candidates ...Candidate) (string, error) {
	for _, cand := range candidates {
		for _, col := range columns {
			if cand.Match(col) {
				return col, nil
			}
		}
	}
	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.Label
	}
	return "", &SchemaError{Candidates: labels}
}

// resolveOpt is Resolve without the error: an absent field maps to "".
func resolveOpt(columns []string, candidates ...Candidate) string {
	col, err := Resolve(columns, candidates...)
	if err != nil {
		return ""
	}
	return col
}

// Candidate lists per logical field, in priority order.
var (
	PositionCandidates = []Candidate{Exact("position"), Exact("Position")}
	PlayerIDCandidates = []Candidate{Exact("playerid"), Exact("playername"), Exact("participantid")}
	KillsCandidates    = []Candidate{Exact("Kills"), Exact("kills"), Fold("kills")}
	AssistsCandidates  = []Candidate{Exact("Assists"), Exact("assists"), Fold("assists")}
	DeathsCandidates   = []Candidate{Exact("Deaths"), Exact("deaths"), Fold("deaths")}
	TeamCandidates     = []Candidate{
		Exact("teamname"),
		Fold("teamname"),
		{Label: "*team*name*", Match: func(col string) bool {
			lc := strings.ToLower(col)
			return strings.Contains(lc, "team") && strings.Contains(lc, "name")
		}},
	}
)

// Schema maps logical fields to the concrete column names of a table. Empty
// strings mean the field is absent.
type Schema struct {
	Position   string
	PlayerID   string
	PlayerName string
	Kills      string
	Assists    string
	Deaths     string
	Team       string
	Game       string
	Result     string
	Champion   string
	Side       string
	DPM        string
	GPM        string
	EarnedGPM  string
	VSPM       string
}

// DetectSchema resolves every field it can against columns. Required fields
// are checked separately by RequireCore.
func DetectSchema(columns []string) Schema {
	s := Schema{
		Position:  resolveOpt(columns, PositionCandidates...),
		PlayerID:  resolveOpt(columns, PlayerIDCandidates...),
		Kills:     resolveOpt(columns, KillsCandidates...),
		Assists:   resolveOpt(columns, AssistsCandidates...),
		Deaths:    resolveOpt(columns, DeathsCandidates...),
		Team:      resolveOpt(columns, TeamCandidates...),
		Game:      resolveOpt(columns, Exact("gameid"), Fold("gameid")),
		Result:    resolveOpt(columns, Exact("result"), Fold("result")),
		Champion:  resolveOpt(columns, Exact("champion"), Fold("champion")),
		Side:      resolveOpt(columns, Exact("side"), Fold("side")),
		DPM:       resolveOpt(columns, Contains("dpm")),
		GPM:       resolveOpt(columns, Contains("gpm")),
		EarnedGPM: resolveOpt(columns, Contains("earned gpm"), Contains("earnedgpm")),
		VSPM:      resolveOpt(columns, Contains("vspm")),
	}
	s.PlayerName = resolveOpt(columns, Exact("playername"), Fold("playername"))
	if s.PlayerName == "" {
		s.PlayerName = s.PlayerID
	}
	return s
}

// RequireCore fails with a *SchemaError naming the first required field that
// could not be resolved.
func RequireCore(columns []string) (Schema, error) {
	required := []struct {
		field string
		cands []Candidate
	}{
		{"position", PositionCandidates},
		{"player identifier", PlayerIDCandidates},
		{"kills", KillsCandidates},
		{"assists", AssistsCandidates},
		{"deaths", DeathsCandidates},
	}
	for _, r := range required {
		if _, err := Resolve(columns, r.cands...); err != nil {
			se := err.(*SchemaError)
			se.Field = r.field
			return Schema{}, se
		}
	}
	return DetectSchema(columns), nil
}
