package dataset

import "sort"

// AllValue means "no constraint" for a filter entry.
const AllValue = "All"

// FilterSet maps a column name to the value rows must equal. Empty values and
// AllValue are ignored.
type FilterSet map[string]string

// WarnFunc receives columns named by a filter but absent from the table.
type WarnFunc func(column string)

// Active returns the keys that constrain rows, sorted.
func (fs FilterSet) Active() []string {
	keys := make([]string, 0, len(fs))
	for k, v := range fs {
		if v == "" || v == AllValue {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Apply keeps the rows of t matching every active entry of fs. Unknown
// columns are reported to warn and skipped. t is never modified; with no
// active entries t itself is returned.
func Apply(t *Table, fs FilterSet, warn WarnFunc) *Table {
	keys := fs.Active()
	if len(keys) == 0 {
		return t
	}

	rows := make([]int, t.Len())
	for i := range rows {
		rows[i] = i
	}
	narrowed := false
	for _, k := range keys {
		c := t.Column(k)
		if c == nil {
			if warn != nil {
				warn(k)
			}
			continue
		}
		want := fs[k]
		kept := rows[:0]
		for _, r := range rows {
			if v, ok := c.Str(r); ok && v == want {
				kept = append(kept, r)
			}
		}
		rows = kept
		narrowed = true
	}
	if !narrowed {
		return t
	}
	return t.Select(rows)
}
