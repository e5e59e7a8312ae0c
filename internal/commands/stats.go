package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func addStats(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show this month's dashboard.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			now := time.Now()
			stats, err := a.Gateway.GetMonthlyStats(context.Background(), now.Year(), int(now.Month()))
			if err != nil {
				return err
			}

			table := uitable.New()
			table.AddRow("Longest streak:", fmt.Sprintf("%d days", stats.LongestStreak))
			table.AddRow("Perfect days:", stats.PerfectDays)
			if stats.MostConsistent != nil {
				table.AddRow("Most consistent:", fmt.Sprintf("%s (%.0f%%)",
					stats.MostConsistent.Name, stats.MostConsistent.Percentage))
			} else {
				table.AddRow("Most consistent:", "no data")
			}
			table.AddRow("Monthly completion:", fmt.Sprintf("%.0f%%", stats.MonthlyCompletion))
			fmt.Println(table)

			if len(stats.WeeklyTrend) > 0 {
				fmt.Println("\nLast 7 days:")
				for _, p := range stats.WeeklyTrend {
					fmt.Printf("  %s  %3.0f%%  %s\n", p.Date, p.Percentage, bar(p.Percentage))
				}
			}

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func bar(pct float64) string {
	n := int(pct / 10)
	out := ""
	for i := 0; i < 10; i++ {
		if i < n {
			out += "█"
		} else {
			out += "░"
		}
	}
	return out
}
