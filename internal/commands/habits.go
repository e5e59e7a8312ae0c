package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/vaneapp/vane/internal/core/domain"
	"github.com/vaneapp/vane/internal/core/services"
)

func addHabits(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "habits",
		Short: "Manage habit definitions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addHabitsList(cmd)
	addHabitsAdd(cmd)
	addHabitsRm(cmd)

	topLevel.AddCommand(cmd)
}

func addHabitsList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all habits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			if err := a.Habits.Refresh(context.Background()); err != nil {
				return err
			}

			habits := a.Habits.List()
			if len(habits) == 0 {
				fmt.Println("No habits yet. Add one with: vane habits add")
				return nil
			}

			table := uitable.New()
			table.MaxColWidth = 40
			table.AddRow("ID", "NAME", "DAYS", "TOTAL", "STREAK")
			for _, h := range habits {
				table.AddRow(shortID(h.ID), h.Name, formatDays(h.Days), h.Stats.TotalCompleted, h.Stats.Streak)
			}
			fmt.Println(table)

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addHabitsAdd(topLevel *cobra.Command) {
	var description string
	var days []string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a habit.",
		Example: `
vane habits add "Morning run" --days mon,wed,fri
vane habits add "Read" --days mon,tue,wed,thu,fri --description "20 pages"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			parsed := make([]domain.Weekday, 0, len(days))
			for _, d := range days {
				day, err := domain.ParseWeekday(strings.ToLower(strings.TrimSpace(d)))
				if err != nil {
					return fmt.Errorf("%w: %q", domain.ErrInvalidWeekday, d)
				}
				parsed = append(parsed, day)
			}

			habit, err := a.Habits.Create(context.Background(), services.CreateHabitInput{
				Name:        strings.Join(args, " "),
				Description: description,
				Days:        parsed,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created %s (%s)\n", habit.Name, shortID(habit.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Optional habit description.")
	cmd.Flags().StringSliceVar(&days, "days", nil, "Weekdays the habit recurs on (mon..sun).")

	topLevel.AddCommand(cmd)
}

func addHabitsRm(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm [habit id]",
		Short: "Delete a habit.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := a.Habits.Refresh(ctx); err != nil {
				return err
			}

			id, err := resolveHabitID(a, args[0])
			if err != nil {
				return err
			}

			if err := a.Habits.Delete(ctx, id); err != nil {
				return err
			}

			fmt.Printf("Deleted %s\n", shortID(id))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func formatDays(days []domain.Weekday) string {
	if len(days) == 0 {
		return "-"
	}
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = string(d)
	}
	return strings.Join(out, ",")
}
