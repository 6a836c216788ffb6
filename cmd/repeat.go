package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/arkadyv/bellhop/internal/engine"
	"github.com/arkadyv/bellhop/internal/timeformat"
)

// repeatCmd represents the repeat command
var repeatCmd = &cobra.Command{
	Use:   "repeat <id>",
	Short: "Re-run a timer or pomodoro",
	Long: `Re-run a duration-based session from its original duration under a
fresh ID. Reminders have no duration and cannot repeat.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid session ID %q", args[0])
		}

		s, err := eng.Apply(engine.Repeat{ID: id})
		if err != nil {
			return fmt.Errorf("failed to repeat session: %w", err)
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"id":          s.ID,
				"name":        s.Name,
				"target_time": s.TargetTime.Format(time.RFC3339),
			})
		}

		fmt.Printf("%s %s restarted (ID: %d), rings at %s\n",
			kindIcon(s.Kind), s.Name, s.ID, timeformat.Stamp(s.TargetTime))
		return nil
	},
}
