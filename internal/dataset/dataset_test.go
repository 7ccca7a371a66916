package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `Unnamed: 0,gameid,position ,playername,teamname,champion,result,kills,deaths,assists,dpm
0,G1,top,Zeus,T1,Aatrox,1,3,0,2,600
1,G1,mid,Faker,T1,Ahri,1,4,2,6,700
2,G1,team,,T1,,1,7,2,8,1300
3,G1,top,Kiin,GEN,Jax,0,1,3,1,NA
4,G1,team,,GEN,,0,1,7,1,N/A
5,G1,jng,,GEN,Vi,0,0,1,0,200
6,G1,,Ghost,GEN,Ezreal,0,0,1,0,300
`

func loadSample(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Load(strings.NewReader(sampleCSV), FormatCSV)
	require.NoError(t, err)
	return ds
}

// ---- Schema resolver tests ----

func TestResolve_FirstCandidateWins(t *testing.T) {
	cols := []string{"playername", "playerid"}
	got, err := Resolve(cols, PlayerIDCandidates...)
	require.NoError(t, err)
	assert.Equal(t, "playerid", got)
}

func TestResolve_ContainsUsesColumnOrder(t *testing.T) {
	cols := []string{"champion", "earned gpm", "gpm"}
	got, err := Resolve(cols, Contains("GPM"))
	require.NoError(t, err)
	assert.Equal(t, "earned gpm", got)
}

func TestResolve_SchemaError(t *testing.T) {
	_, err := Resolve([]string{"a", "b"}, Exact("position"), Exact("Position"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
	var se *SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, []string{"position", "Position"}, se.Candidates)
}

func TestNearName(t *testing.T) {
	c := NearName("dpm")
	assert.True(t, c.Match("DPM"))
	assert.True(t, c.Match("teamdpm"))
	assert.False(t, c.Match("damage dpm total"))
	assert.False(t, c.Match("damage"))
}

func TestDetectSchema_Optional(t *testing.T) {
	s := DetectSchema([]string{"gameid", "position", "playerid", "playername", "Team Name", "vspm", "earned gpm"})
	assert.Equal(t, "playerid", s.PlayerID)
	assert.Equal(t, "playername", s.PlayerName)
	assert.Equal(t, "Team Name", s.Team)
	assert.Equal(t, "earned gpm", s.GPM)
	assert.Equal(t, "earned gpm", s.EarnedGPM)
	assert.Equal(t, "vspm", s.VSPM)
	assert.Empty(t, s.DPM)
	assert.Empty(t, s.Champion)
}

// ---- Normalizer tests ----

func TestLoad_Partition(t *testing.T) {
	ds := loadSample(t)

	// Row 5 has no player id and row 6 no position: both dropped.
	assert.Equal(t, 3, ds.Players.Len())
	assert.Equal(t, 2, ds.Teams.Len())

	for i := 0; i < ds.Teams.Len(); i++ {
		p, _ := ds.Teams.Str(i, "position")
		assert.Equal(t, "team", p)
	}
	for i := 0; i < ds.Players.Len(); i++ {
		p, _ := ds.Players.Str(i, "position")
		assert.NotEqual(t, "team", p)
		_, ok := ds.Players.Str(i, "playername")
		assert.True(t, ok)
	}
}

func TestLoad_DropsUnnamedAndTrimsHeaders(t *testing.T) {
	ds := loadSample(t)
	assert.False(t, ds.Players.Has("Unnamed: 0"))
	assert.True(t, ds.Players.Has("position"))
	assert.Equal(t, "position", ds.Schema.Position)
}

func TestLoad_NAValuesAreNull(t *testing.T) {
	ds := loadSample(t)
	_, ok := ds.Players.Str(2, "dpm")
	assert.False(t, ok)
	_, ok = ds.Teams.Str(1, "dpm")
	assert.False(t, ok)
	mean, ok := ds.Players.Mean("dpm")
	require.True(t, ok)
	assert.InDelta(t, 650.0, mean, 1e-9)
}

func TestLoad_KDA(t *testing.T) {
	ds := loadSample(t)
	kda := ds.Players.Column(KDAColumn)
	require.NotNil(t, kda)

	v, _ := kda.Float(0) // 3 kills, 2 assists, 0 deaths
	assert.Equal(t, 5.0, v)
	v, _ = kda.Float(1)
	assert.Equal(t, 5.0, v)
	v, _ = kda.Float(2)
	assert.InDelta(t, 2.0/3.0, v, 1e-12)

	assert.False(t, ds.Teams.Has(KDAColumn))
}

func TestLoad_KDANonNumericCoercesToZero(t *testing.T) {
	src := "position,playerid,kills,deaths,assists\ntop,p1,x,NA,4\nteam,t1,1,1,1\n"
	ds, err := Load(strings.NewReader(src), FormatCSV)
	require.NoError(t, err)
	v, ok := ds.Players.Float(0, KDAColumn)
	require.True(t, ok)
	assert.Equal(t, 4.0, v)
}

func TestLoad_SourceKDAReplaced(t *testing.T) {
	src := "position,playerid,kills,deaths,assists,KDA\ntop,p1,3,1,3,99\nteam,t1,1,1,1,7\n"
	ds, err := Load(strings.NewReader(src), FormatCSV)
	require.NoError(t, err)

	var kdaCols int
	for _, c := range ds.Players.Columns() {
		if strings.EqualFold(c, KDAColumn) {
			kdaCols++
		}
	}
	assert.Equal(t, 1, kdaCols)
	assert.Equal(t, "KDA", ds.Players.Columns()[len(ds.Players.Columns())-1])
	v, ok := ds.Players.Float(0, KDAColumn)
	require.True(t, ok)
	assert.Equal(t, 6.0, v)
}

func TestLoad_CaseVariantHeadersSuffixed(t *testing.T) {
	src := "position,playerid,Kills,kills,deaths,assists\ntop,p1,3,4,1,0\nteam,t1,1,1,1,1\n"
	ds, err := Load(strings.NewReader(src), FormatCSV)
	require.NoError(t, err)
	assert.True(t, ds.Players.Has("Kills"))
	assert.True(t, ds.Players.Has("kills.1"))
	assert.False(t, ds.Players.Has("kills"))
	assert.Equal(t, "Kills", ds.Schema.Kills)
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	src := "position,playername,kills,assists\ntop,a,1,1\nteam,t,1,1\n"
	_, err := Load(strings.NewReader(src), FormatCSV)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
	assert.Contains(t, err.Error(), "deaths")
}

func TestLoad_EmptyPartition(t *testing.T) {
	src := "position,playername,kills,deaths,assists\ntop,a,1,1,1\nmid,b,2,2,2\n"
	_, err := Load(strings.NewReader(src), FormatCSV)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyResult))

	var ee *EmptyResultError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "team", ee.Partition)
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadFile_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"position", "playername", "kills", "deaths", "assists"},
		{"top", "Zeus", 3, 0, 2},
		{"team", "", 10, 5, 20},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	path := filepath.Join(t.TempDir(), "lck.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Players.Len())
	assert.Equal(t, 1, ds.Teams.Len())
	v, _ := ds.Players.Float(0, KDAColumn)
	assert.Equal(t, 5.0, v)
	assert.Equal(t, path, ds.Source)
}

// ---- Filter tests ----

func TestApply_EmptyFilterIsIdentity(t *testing.T) {
	ds := loadSample(t)
	assert.Same(t, ds.Players, Apply(ds.Players, nil, nil))
	assert.Same(t, ds.Players, Apply(ds.Players, FilterSet{"teamname": "All", "patch": ""}, nil))
}

func TestApply_AndSemantics(t *testing.T) {
	ds := loadSample(t)
	out := Apply(ds.Players, FilterSet{"teamname": "T1", "position": "mid"}, nil)
	require.Equal(t, 1, out.Len())
	name, _ := out.Str(0, "playername")
	assert.Equal(t, "Faker", name)
	assert.Equal(t, 3, ds.Players.Len(), "input must not change")
}

func TestApply_StrictEquality(t *testing.T) {
	ds := loadSample(t)
	assert.Equal(t, 0, Apply(ds.Players, FilterSet{"teamname": "t1"}, nil).Len())
}

func TestApply_UnknownColumnWarns(t *testing.T) {
	ds := loadSample(t)
	var warned []string
	out := Apply(ds.Players, FilterSet{"year": "2024", "teamname": "GEN"}, func(col string) {
		warned = append(warned, col)
	})
	assert.Equal(t, []string{"year"}, warned)
	assert.Equal(t, 1, out.Len())
}

func TestApply_KeyOrderIndependent(t *testing.T) {
	ds := loadSample(t)
	a := Apply(ds.Players, FilterSet{"teamname": "T1", "result": "1"}, nil)
	b := Apply(ds.Players, FilterSet{"result": "1", "teamname": "T1"}, nil)
	assert.Equal(t, a.Len(), b.Len())
	assert.Equal(t, a.Distinct("playername"), b.Distinct("playername"))
}

func TestDistinctAndGroupBy(t *testing.T) {
	ds := loadSample(t)
	assert.Equal(t, []string{"Faker", "Kiin", "Zeus"}, ds.Players.Distinct("playername"))

	keys, groups := ds.Players.GroupBy("teamname")
	assert.Equal(t, []string{"GEN", "T1"}, keys)
	assert.Equal(t, []int{0, 1}, groups["T1"])
	assert.Nil(t, ds.Players.Distinct("nope"))
}

func TestDistinct_NumericOrder(t *testing.T) {
	tbl := NewTable([]string{"patch", "split"}, [][]string{
		{"10.1", "Summer"}, {"9.5", "Spring"}, {"11.3", "Spring"}, {"", "Summer"}, {"9.5", "Spring"},
	}, nil)
	assert.Equal(t, []string{"9.5", "10.1", "11.3"}, tbl.Distinct("patch"))
	assert.Equal(t, []string{"Spring", "Summer"}, tbl.Distinct("split"))
}

// ---- Cache tests ----

func TestCache_LoadsOnce(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(func(source string) (*Dataset, error) {
		calls.Add(1)
		return Load(strings.NewReader(sampleCSV), FormatCSV)
	})

	var wg sync.WaitGroup
	results := make([]*Dataset, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ds, err := c.Get("lck.csv")
			if err == nil {
				results[i] = ds
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, ds := range results {
		assert.Same(t, results[0], ds)
	}
	assert.Equal(t, 1, c.Len())
}

func TestCache_FailedLoadNotCached(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lck.csv")
	c := NewCache(LoadFile)

	_, err := c.Get(path)
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())

	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	ds, err := c.Get(path)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Players.Len())
}
