package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/lck-metrics/internal/dataset"
)

const scopeCSV = `gameid,year,split,position,playername,teamname,champion,result,kills,deaths,assists,gamelength
G1,2024,Spring,mid,Faker,T1,Ahri,1,4,2,6,1800
G1,2024,Spring,mid,Chovy,GEN,Azir,0,2,4,3,1800
G1,2024,Spring,team,,T1,,1,20,8,40,1800
G1,2024,Spring,team,,GEN,,0,8,20,15,1800
G2,2025,Spring,mid,Faker,T1,Azir,0,1,3,2,2400
G2,2025,Spring,mid,Chovy,GEN,Ahri,1,5,1,7,2400
G2,2025,Spring,team,,T1,,0,9,18,20,2400
G2,2025,Spring,team,,GEN,,1,18,9,35,2400
`

// withFlags points the global flags at a fresh dataset and restores them
// afterwards.
func withFlags(t *testing.T, year string) {
	t.Helper()
	for _, k := range []string{"LCK_DATA", "LCK_YEAR", "LCK_SPLIT", "LCK_PLAYOFFS", "LCK_PATCH", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "lck.csv")
	require.NoError(t, os.WriteFile(path, []byte(scopeCSV), 0o644))

	prevCfg, prevData, prevYear := cfgPath, dataPath, filterYear
	t.Cleanup(func() { cfgPath, dataPath, filterYear = prevCfg, prevData, prevYear })

	cfgPath = filepath.Join(dir, "config.toml")
	dataPath = path
	filterYear = year
	require.NoError(t, setup(rootCmd, nil))
}

func TestSetup_FlagsOverrideConfig(t *testing.T) {
	withFlags(t, "2024")
	assert.Equal(t, dataPath, cfg.Data.Path)
	assert.Equal(t, "2024", cfg.Filters.Year)
	assert.Equal(t, "All", cfg.Filters.Split)
}

func TestLoadScope_AppliesFilters(t *testing.T) {
	withFlags(t, "2024")
	s, err := loadScope()
	require.NoError(t, err)
	assert.Equal(t, 2, s.players.Len())
	assert.Equal(t, 2, s.teams.Len())
	assert.Equal(t, 4, s.ds.Players.Len())

	rows, err := s.playerRows("Faker")
	require.NoError(t, err)
	assert.Equal(t, 1, rows.Len())
}

func TestLoadScope_UnknownPlayer(t *testing.T) {
	withFlags(t, "All")
	s, err := loadScope()
	require.NoError(t, err)

	_, err = s.playerRows("Nobody")
	assert.True(t, errors.Is(err, dataset.ErrEmptyResult))
	_, err = s.teamRows("Nobody")
	assert.True(t, errors.Is(err, dataset.ErrEmptyResult))
}

func TestLoadScope_MissingFile(t *testing.T) {
	withFlags(t, "All")
	cfg.Data.Path = filepath.Join(t.TempDir(), "missing.csv")
	_, err := loadScope()
	assert.True(t, errors.Is(err, dataset.ErrNotFound))
}

func TestOnePerGame(t *testing.T) {
	ds, err := dataset.Load(strings.NewReader(scopeCSV), dataset.FormatCSV)
	require.NoError(t, err)

	games := onePerGame(ds.Teams)
	assert.Equal(t, 2, games.Len())
	assert.Equal(t, []string{"G1", "G2"}, games.Distinct("gameid"))
}

func TestToRecords(t *testing.T) {
	recs := toRecords([]string{"a", "b"}, [][]string{{"1", "2"}, {"3", "—"}})
	require.Len(t, recs, 2)
	assert.Equal(t, "2", recs[0]["b"])
	assert.Equal(t, "—", recs[1]["b"])
}
