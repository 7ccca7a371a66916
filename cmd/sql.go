package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/lck-metrics/internal/report"
	"github.com/pable/lck-metrics/internal/storage"
)

var sqlSchema bool

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the filtered data",
	Long: `Mirror the filtered player and team rows into an in-memory SQLite database and
run an arbitrary query against it. Nothing is written to disk.

Tables:
  players  one row per player-game, including the derived KDA column
  teams    one row per team-game

Numeric columns are REAL, everything else TEXT. Quote column names with spaces:
  SELECT playername, AVG("earned gpm") FROM players GROUP BY playername`,
	Args: func(cmd *cobra.Command, args []string) error {
		if sqlSchema {
			return nil
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: runSQL,
}

func init() {
	sqlCmd.Flags().BoolVar(&sqlSchema, "schema", false, "print the columns of both tables and exit")
}

func runSQL(cmd *cobra.Command, args []string) error {
	s, err := loadScope()
	if err != nil {
		return err
	}

	db, err := storage.Open()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := db.Mirror(s.players, s.teams); err != nil {
		return fmt.Errorf("mirror dataset: %w", err)
	}

	if sqlSchema {
		for _, table := range []string{storage.PlayersTable, storage.TeamsTable} {
			cols, err := db.Schema(table)
			if err != nil {
				return err
			}
			rows := make([][]string, len(cols))
			for i, c := range cols {
				rows[i] = []string{c[0], c[1]}
			}
			report.Section(os.Stdout, table)
			report.PrintRows(os.Stdout, []string{"COLUMN", "TYPE"}, rows)
		}
		return nil
	}

	cols, rows, err := db.QueryRaw(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if ok, err := emit(toRecords(cols, rows)); ok {
		return err
	}
	report.PrintRows(os.Stdout, cols, rows)
	return nil
}

func toRecords(cols []string, rows [][]string) []map[string]string {
	out := make([]map[string]string, len(rows))
	for i, row := range rows {
		rec := make(map[string]string, len(cols))
		for j, c := range cols {
			rec[c] = row[j]
		}
		out[i] = rec
	}
	return out
}
