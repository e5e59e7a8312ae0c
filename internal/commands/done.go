package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vaneapp/vane/internal/core/domain"
)

func addDone(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "done [habit id]",
		Short: "Toggle a habit's completion for today.",
		Example: `
vane done 7f3a91c2
`,
		Args: cobra.ExactArgs(1),
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

			result, err := a.Toggle.Toggle(ctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrHabitNotFound) {
					return fmt.Errorf("no habit with id %q", args[0])
				}
				return err
			}

			if result.Completed {
				fmt.Printf("%s %s (streak %d)\n",
					color.GreenString("Completed"), result.Habit.Name, result.Habit.Stats.Streak)
			} else {
				fmt.Printf("%s %s\n", color.YellowString("Reverted"), result.Habit.Name)
			}

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

// resolveHabitID accepts a full id or an unambiguous prefix.
func resolveHabitID(a *app, arg string) (string, error) {
	var match string
	for _, h := range a.Store.List() {
		if h.ID == arg {
			return h.ID, nil
		}
		if strings.HasPrefix(h.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("habit id %q is ambiguous", arg)
			}
			match = h.ID
		}
	}
	if match == "" {
		return arg, nil
	}
	return match, nil
}
