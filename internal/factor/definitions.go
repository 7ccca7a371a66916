// Package factor scores players on eight playstyle dimensions. Each dimension
// is a cluster of raw stat columns reduced to one composite per row and
// rescaled against the player's position cohort.
package factor

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pable/lck-metrics/internal/dataset"
)

// Cluster is one fixed playstyle dimension. Negative clusters measure things
// where more is worse, so their percentile is inverted.
type Cluster struct {
	ID       int
	Name     string
	Negative bool
}

// Clusters lists the eight dimensions in id order.
var Clusters = []Cluster{
	{1, "Resource & Vision Baseline", false},
	{2, "Late-Game Carry & Siege", false},
	{3, "Teamfight & Support", false},
	{4, "Laning Phase Dominance", false},
	{5, "Mortality & Risk", true},
	{6, "Frontline & Objective", false},
	{7, "Aggressive Initiative", false},
	{8, "Enemy Combat Advantage", true},
}

// Entry assigns one variable to a cluster.
type Entry struct {
	Variable string
	Cluster  int
}

// Definition is the variable-to-cluster table, in file order.
type Definition struct {
	Entries []Entry
}

var clusterNumber = regexp.MustCompile(`\d+`)

// ParseDefinitions reads a two-column table with a header row. The first
// column names the variable; the cluster id is the first run of digits in
// the second. Rows without digits are skipped.
func ParseDefinitions(r io.Reader) (*Definition, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read cluster definitions: %w", err)
	}
	def := &Definition{}
	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue
		}
		variable := strings.TrimSpace(rec[0])
		m := clusterNumber.FindString(rec[1])
		if variable == "" || m == "" {
			continue
		}
		id, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		def.Entries = append(def.Entries, Entry{Variable: variable, Cluster: id})
	}
	return def, nil
}

// LoadDefinitions opens and parses a cluster definition file.
func LoadDefinitions(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &dataset.NotFoundError{Source: path}
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ParseDefinitions(f)
}

// Len returns the number of variable assignments.
func (d *Definition) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Entries)
}

// Variables returns the distinct variables of a cluster in file order.
func (d *Definition) Variables(cluster int) []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, e := range d.Entries {
		if e.Cluster == cluster && !seen[e.Variable] {
			seen[e.Variable] = true
			out = append(out, e.Variable)
		}
	}
	return out
}
