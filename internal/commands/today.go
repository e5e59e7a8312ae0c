package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/vaneapp/vane/internal/core/services"
)

func addToday(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's habits ordered by priority.",
		Example: `
vane today
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := a.Habits.Refresh(ctx); err != nil {
				return err
			}

			scored := services.SelectTodayHabits(a.Store.List(), time.Now())
			if len(scored) == 0 {
				fmt.Println("No habits scheduled for today.")
				return nil
			}

			done := 0
			for _, h := range scored {
				if h.Done {
					done++
				}
			}

			pct := done * 100 / len(scored)
			fmt.Printf("Today: %d of %d completed (%d%%)\n\n", done, len(scored), pct)

			table := uitable.New()
			table.AddRow("", "ID", "NAME", "STREAK", "SCORE")
			for _, h := range scored {
				mark := color.RedString("✗")
				if h.Done {
					mark = color.GreenString("✓")
				}
				table.AddRow(mark, shortID(h.ID), h.Name, h.Stats.Streak, h.Score)
			}
			fmt.Println(table)

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
