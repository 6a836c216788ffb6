package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arkadyv/bellhop/internal/adapters/tui"
	"github.com/arkadyv/bellhop/internal/scheduler"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the live countdown view",
	Long: `Open a fullscreen view of every scheduled session. Alarms ring in
place; press d to dismiss or s to snooze.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := setupSignalHandler()

		loop := scheduler.NewLoop(eng)
		go loop.Run(ctx)

		return tui.Watch(ctx, eng)
	},
}
