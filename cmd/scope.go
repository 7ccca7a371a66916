package cmd

import (
	"fmt"
	"os"

	"github.com/pable/lck-metrics/internal/dataset"
	"github.com/pable/lck-metrics/internal/factor"
	"github.com/pable/lck-metrics/internal/logger"
	"github.com/pable/lck-metrics/internal/report"
)

// filterColumns are the dataset columns the global filters apply to.
var filterColumns = []string{"year", "split", "playoffs", "patch"}

// scope is the filtered view every command works on.
type scope struct {
	ds      *dataset.Dataset
	players *dataset.Table
	teams   *dataset.Table
}

func filterSet() dataset.FilterSet {
	return dataset.FilterSet{
		"year":     cfg.Filters.Year,
		"split":    cfg.Filters.Split,
		"playoffs": cfg.Filters.Playoffs,
		"patch":    cfg.Filters.Patch,
	}
}

// loadScope fetches the dataset from the process cache and applies the
// global filters to both partitions.
func loadScope() (*scope, error) {
	ds, err := dataset.Default.Get(cfg.Data.Path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	log := logger.WithComponent("filter")
	warned := make(map[string]bool)
	warn := func(col string) {
		if warned[col] {
			return
		}
		warned[col] = true
		log.WithField("column", col).Warn("filter column not in dataset, ignored")
	}

	fs := filterSet()
	s := &scope{
		ds:      ds,
		players: dataset.Apply(ds.Players, fs, warn),
		teams:   dataset.Apply(ds.Teams, fs, warn),
	}
	if active := fs.Active(); len(active) > 0 {
		log.WithFields(map[string]any{
			"filters": active,
			"players": s.players.Len(),
			"teams":   s.teams.Len(),
		}).Debug("filters applied")
	}
	return s, nil
}

// playerRows returns the filtered rows of one player, matched on the
// player-name column.
func (s *scope) playerRows(name string) (*dataset.Table, error) {
	col := s.ds.Schema.PlayerName
	rows := s.players.Where(col, name)
	if rows.Len() == 0 {
		return nil, fmt.Errorf("player %q has no rows in the filtered data: %w", name, dataset.ErrEmptyResult)
	}
	return rows, nil
}

// teamRows returns the filtered team rows of one team.
func (s *scope) teamRows(name string) (*dataset.Table, error) {
	col := s.ds.Schema.Team
	if col == "" {
		return nil, &dataset.SchemaError{Field: "team name", Candidates: []string{"teamname"}}
	}
	rows := s.teams.Where(col, name)
	if rows.Len() == 0 {
		return nil, fmt.Errorf("team %q has no rows in the filtered data: %w", name, dataset.ErrEmptyResult)
	}
	return rows, nil
}

// loadScorer reads the cluster definitions. A missing file degrades to no
// playstyle scores with a warning rather than failing the command.
func loadScorer() *factor.Scorer {
	defs, err := factor.LoadDefinitions(cfg.Data.Clusters)
	if err != nil {
		logger.WithComponent("factor").WithError(err).Warn("cluster definitions unavailable")
		if !jsonOut {
			report.Warn(os.Stderr, "no playstyle scores: %v", err)
		}
		return factor.NewScorer(nil)
	}
	return factor.NewScorer(defs)
}

// emit writes v as JSON when --json is set and reports whether it did.
func emit(v any) (bool, error) {
	if !jsonOut {
		return false, nil
	}
	return true, report.WriteJSON(os.Stdout, v)
}
