package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vaneapp/vane/internal/core/services"
)

func addCalendar(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "calendar [year month]",
		Short: "Show a month of completion history.",
		Example: `
vane calendar
vane calendar 2024 1
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected no arguments or a year and a month")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			now := time.Now()
			year, month := now.Year(), now.Month()
			if len(args) == 2 {
				y, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
				m, err := strconv.Atoi(args[1])
				if err != nil || m < 1 || m > 12 {
					return fmt.Errorf("invalid month %q", args[1])
				}
				year, month = y, time.Month(m)
			}

			view, err := a.Calendar.MonthView(context.Background(), year, month)
			if err != nil {
				return err
			}

			fmt.Printf("%s %d\n\n", month, year)
			for _, day := range view.Days {
				if day.Total == 0 {
					fmt.Printf("  %2d  %s\n", day.Day, color.HiBlackString("·"))
					continue
				}
				fmt.Printf("  %2d  %s  %d/%d (%.0f%%)\n",
					day.Day, levelMark(day.Level), day.Completed, day.Total, day.Percentage)
			}

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func levelMark(level services.CompletionLevel) string {
	switch level {
	case services.LevelPerfect:
		return color.GreenString("●")
	case services.LevelHigh:
		return color.HiGreenString("●")
	case services.LevelMedium:
		return color.YellowString("●")
	case services.LevelLow:
		return color.HiYellowString("●")
	default:
		return color.HiBlackString("○")
	}
}
