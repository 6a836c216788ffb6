package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arkadyv/bellhop/internal/engine"
	"github.com/arkadyv/bellhop/internal/timeformat"
)

var (
	remindName   string
	remindDesc   string
	remindSound  string
	remindVolume float64
)

// remindCmd represents the remind command
var remindCmd = &cobra.Command{
	Use:   "remind <time> [date]",
	Short: "Schedule a reminder at a date and time",
	Long: `Schedule a reminder that rings at an absolute time. The time is
"15:04"; the date is optional and defaults to today, rolling to tomorrow
when the time has already passed. A full date is "2006-01-02".

Examples:
  bellhop remind 17:30 --name "Stand-up notes"
  bellhop remind 09:00 2026-09-15`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseRemindArgs(args, time.Now())
		if err != nil {
			return err
		}

		profile, err := defaultSound(remindSound, remindVolume)
		if err != nil {
			return err
		}

		s, err := eng.Apply(engine.CreateReminder{
			Name:        remindName,
			Description: remindDesc,
			Sound:       profile,
			At:          at,
		})
		if err != nil {
			return fmt.Errorf("failed to create reminder: %w", err)
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"id":          s.ID,
				"name":        s.Name,
				"target_time": s.TargetTime.Format(time.RFC3339),
			})
		}

		fmt.Printf("🔔 %s set for %s (ID: %d)\n", s.Name, timeformat.Stamp(s.TargetTime), s.ID)
		return nil
	},
}

func init() {
	remindCmd.Flags().StringVarP(&remindName, "name", "n", "", "Reminder name")
	remindCmd.Flags().StringVar(&remindDesc, "desc", "", "Note shown when the reminder rings")
	remindCmd.Flags().StringVar(&remindSound, "sound", "", "Alarm sound: light, strong, school, siren")
	remindCmd.Flags().Float64Var(&remindVolume, "volume", 0, "Alarm volume between 0 and 1")
}

// parseRemindArgs resolves <time> [date] to an absolute local instant.
// A bare time that already passed today lands on tomorrow.
func parseRemindArgs(args []string, now time.Time) (time.Time, error) {
	clock, err := time.Parse("15:04", args[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected HH:MM): %w", args[0], err)
	}

	day := now
	explicitDate := len(args) == 2
	if explicitDate {
		day, err = time.ParseInLocation("2006-01-02", args[1], now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", args[1], err)
		}
	}

	at := time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, now.Location())
	if !explicitDate && !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at, nil
}
