package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/lck-metrics/internal/config"
	"github.com/pable/lck-metrics/internal/logger"
)

var (
	cfgPath      string
	dataPath     string
	clustersPath string
	logLevel     string
	jsonOut      bool

	filterYear     string
	filterSplit    string
	filterPlayoffs string
	filterPatch    string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lckmetrics",
	Short: "LCK match data analytics",
	Long: `Explore a League of Legends esports match dataset: champion picks and bans,
player and team profiles, playstyle scores, head-to-head records and league
comparisons. Global filters narrow every view by year, split, playoffs and patch.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", config.DefaultPath(), "path to TOML config file")
	pf.StringVar(&dataPath, "data", "", "match dataset (CSV or XLSX); overrides config")
	pf.StringVar(&clustersPath, "clusters", "", "cluster definition CSV; overrides config")
	pf.StringVar(&filterYear, "year", "", `filter by year ("All" for no filter)`)
	pf.StringVar(&filterSplit, "split", "", `filter by split ("All" for no filter)`)
	pf.StringVar(&filterPlayoffs, "playoffs", "", `filter by playoffs flag ("All" for no filter)`)
	pf.StringVar(&filterPatch, "patch", "", `filter by patch ("All" for no filter)`)
	pf.BoolVar(&jsonOut, "json", false, "print results as JSON")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(filtersCmd)
	rootCmd.AddCommand(championsCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(styleCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(comparePlayersCmd)
	rootCmd.AddCommand(compareTeamsCmd)
	rootCmd.AddCommand(h2hCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(sqlCmd)
}

// setup resolves the configuration (file, .env, environment, then flags) and
// initialises the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	config.LoadDotEnv()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	override := func(flag string, dst *string) {
		if flag != "" {
			*dst = flag
		}
	}
	override(dataPath, &c.Data.Path)
	override(clustersPath, &c.Data.Clusters)
	override(filterYear, &c.Filters.Year)
	override(filterSplit, &c.Filters.Split)
	override(filterPlayoffs, &c.Filters.Playoffs)
	override(filterPatch, &c.Filters.Patch)
	override(logLevel, &c.Log.Level)

	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger.Init(c.Log.Level, c.Log.Format)
	cfg = c
	return nil
}
