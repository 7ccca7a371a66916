package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/lck-metrics/internal/report"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List players in the filtered data",
	Args:  cobra.NoArgs,
	RunE:  runPlayers,
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List teams in the filtered data",
	Args:  cobra.NoArgs,
	RunE:  runTeams,
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show the values each global filter accepts",
	Args:  cobra.NoArgs,
	RunE:  runFilters,
}

func runPlayers(cmd *cobra.Command, args []string) error {
	s, err := loadScope()
	if err != nil {
		return err
	}
	names := s.players.Distinct(s.ds.Schema.PlayerName)
	if ok, err := emit(names); ok {
		return err
	}
	report.PrintNameList(os.Stdout, "PLAYER", names)
	return nil
}

func runTeams(cmd *cobra.Command, args []string) error {
	s, err := loadScope()
	if err != nil {
		return err
	}
	if s.ds.Schema.Team == "" {
		return fmt.Errorf("list teams: no team name column in dataset")
	}
	names := s.teams.Distinct(s.ds.Schema.Team)
	if ok, err := emit(names); ok {
		return err
	}
	report.PrintNameList(os.Stdout, "TEAM", names)
	return nil
}

// runFilters lists the distinct values of each filter column over the
// unfiltered player rows.
func runFilters(cmd *cobra.Command, args []string) error {
	s, err := loadScope()
	if err != nil {
		return err
	}
	options := make(map[string][]string, len(filterColumns))
	for _, col := range filterColumns {
		if s.ds.Players.Has(col) {
			options[col] = s.ds.Players.Distinct(col)
		}
	}
	if ok, err := emit(options); ok {
		return err
	}
	for _, col := range filterColumns {
		vals, ok := options[col]
		if !ok {
			report.Note(os.Stdout, "%s: not in dataset", col)
			continue
		}
		report.Section(os.Stdout, col)
		report.PrintNameList(os.Stdout, "VALUE", append([]string{"All"}, vals...))
	}
	return nil
}
