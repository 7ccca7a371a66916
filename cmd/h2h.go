package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/lck-metrics/internal/aggregator"
	"github.com/pable/lck-metrics/internal/model"
	"github.com/pable/lck-metrics/internal/report"
)

var h2hCmd = &cobra.Command{
	Use:   "h2h <a> <b>",
	Short: "Games where two players met on opposing teams",
	Args:  cobra.ExactArgs(2),
	RunE:  runH2H,
}

func runH2H(cmd *cobra.Command, args []string) error {
	a, b := args[0], args[1]
	s, err := loadScope()
	if err != nil {
		return err
	}
	rows, err := aggregator.HeadToHead(s.players, a, b)
	if err != nil {
		return fmt.Errorf("head to head: %w", err)
	}
	sum := aggregator.SummarizeH2H(a, b, rows)

	if ok, err := emit(struct {
		Summary model.H2HSummary `json:"summary"`
		Games   []model.H2HRow   `json:"games"`
	}{sum, rows}); ok {
		return err
	}
	report.Heading(os.Stdout, "Head to head")
	report.PrintH2H(os.Stdout, sum, rows)
	return nil
}
