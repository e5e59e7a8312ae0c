package commands

import (
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vaneapp/vane/internal/adapters/gateway"
	"github.com/vaneapp/vane/internal/core/domain"
	"github.com/vaneapp/vane/internal/core/services"
	"github.com/vaneapp/vane/internal/core/store"
)

// app bundles everything a command needs: the gateway, the shared habit
// cache and the services wired over them.
type app struct {
	Gateway  domain.Gateway
	Store    *store.Store
	Habits   *services.HabitService
	Toggle   *services.ToggleService
	Calendar *services.CalendarService
}

func loadApp() (*app, error) {
	viper.SetConfigName(".vane")
	viper.SetConfigType("yaml")
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("vane")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("api-url", "http://localhost:3000/api")

	// Missing config file is fine, env and defaults cover it.
	_ = viper.ReadInConfig()

	gw := gateway.NewClient(viper.GetString("api-url"), viper.GetString("api-key"))
	st := store.New()

	return &app{
		Gateway:  gw,
		Store:    st,
		Habits:   services.NewHabitService(st, gw),
		Toggle:   services.NewToggleService(st, gw),
		Calendar: services.NewCalendarService(gw),
	}, nil
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vane",
		Short: "Habit tracking on the command line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addToday(topLevel)
	addDone(topLevel)
	addHabits(topLevel)
	addCalendar(topLevel)
	addStats(topLevel)
	addVersion(topLevel)
}
