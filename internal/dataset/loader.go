package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/pable/lck-metrics/internal/logger"
)

// KDAColumn is the name of the column derived at load time on player rows.
const KDAColumn = "KDA"

// TeamPosition is the position value that marks a team-level row.
const TeamPosition = "team"

// Format selects the source decoder.
type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
)

// FormatFor picks the decoder from a file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// Dataset is the cleaned row partition of one source.
type Dataset struct {
	Source  string
	Players *Table
	Teams   *Table
	Schema  Schema
}

var naValues = map[string]struct{}{"": {}, "NA": {}, "N/A": {}}

func isNA(s string) bool {
	_, ok := naValues[s]
	return ok
}

// LoadFile opens path and loads it with the decoder matching its extension.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Source: path}
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Load(f, FormatFor(path))
	if err != nil {
		return nil, err
	}
	ds.Source = path
	return ds, nil
}

// Load decodes a byte stream and normalizes it into player and team rows.
func Load(r io.Reader, format Format) (*Dataset, error) {
	var (
		records [][]string
		err     error
	)
	switch format {
	case FormatXLSX:
		records, err = readXLSX(r)
	default:
		records, err = readCSV(r)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &SchemaError{Field: "header", Candidates: []string{"position"}}
	}
	return Normalize(records[0], records[1:])
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// Normalize cleans a raw header and row set, partitions it and derives KDA.
func Normalize(header []string, rows [][]string) (*Dataset, error) {
	log := logger.WithComponent("dataset")

	keep, names := cleanHeader(header)
	cleaned := make([][]string, len(rows))
	for i, row := range rows {
		out := make([]string, len(keep))
		for k, j := range keep {
			if j < len(row) {
				out[k] = row[j]
			}
		}
		cleaned[i] = out
	}
	raw := NewTable(names, cleaned, isNA)

	schema, err := RequireCore(names)
	if err != nil {
		return nil, err
	}

	pos := raw.Column(schema.Position)
	pid := raw.Column(schema.PlayerID)
	var playerRows, teamRows []int
	for i := 0; i < raw.Len(); i++ {
		p, ok := pos.Str(i)
		if !ok {
			continue
		}
		if strings.ToLower(strings.TrimSpace(p)) == TeamPosition {
			teamRows = append(teamRows, i)
			continue
		}
		if _, ok := pid.Str(i); ok {
			playerRows = append(playerRows, i)
		}
	}
	if len(playerRows) == 0 {
		return nil, &EmptyResultError{Partition: "player"}
	}
	if len(teamRows) == 0 {
		return nil, &EmptyResultError{Partition: "team"}
	}

	// A source KDA column is replaced by the derived one.
	players := raw.Select(playerRows)
	players = players.withColumn(kdaColumn(players, schema))

	log.WithFields(logrus.Fields{
		"player_id": schema.PlayerID,
		"players":   players.Len(),
		"teams":     len(teamRows),
		"dropped":   raw.Len() - len(playerRows) - len(teamRows),
	}).Debug("dataset normalized")

	return &Dataset{
		Players: players,
		Teams:   raw.Select(teamRows),
		Schema:  players.Schema(),
	}, nil
}

// cleanHeader drops unnamed columns and trims the rest. Names that repeat,
// ignoring case, get a ".N" suffix so every column stays addressable and
// the SQLite mirror never sees two columns it considers equal.
func cleanHeader(header []string) (keep []int, names []string) {
	seen := make(map[string]int)
	for j, h := range header {
		name := strings.TrimSpace(h)
		if name == "" || strings.HasPrefix(strings.ToLower(name), "unnamed") {
			continue
		}
		key := strings.ToLower(name)
		if n, dup := seen[key]; dup {
			seen[key] = n + 1
			name = name + "." + strconv.Itoa(n)
		} else {
			seen[key] = 1
		}
		keep = append(keep, j)
		names = append(names, name)
	}
	return keep, names
}

func kdaColumn(t *Table, s Schema) *Column {
	kills := t.Column(s.Kills)
	assists := t.Column(s.Assists)
	deaths := t.Column(s.Deaths)
	c := newColumn(KDAColumn, t.Len())
	for i := 0; i < t.Len(); i++ {
		d := deaths.FloatOr(i, 0)
		if d == 0 {
			d = 1
		}
		kda := (kills.FloatOr(i, 0) + assists.FloatOr(i, 0)) / d
		c.raw[i] = strconv.FormatFloat(kda, 'f', -1, 64)
		c.num[i] = kda
		c.isNum[i] = true
	}
	return c
}
