package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arkadyv/bellhop/internal/domain"
	"github.com/arkadyv/bellhop/internal/engine"
)

var (
	pomoName     string
	pomoWork     int
	pomoBreak    int
	pomoLong     int
	pomoSessions int
	pomoCycles   int
	pomoSound    string
	pomoVolume   float64
)

// pomodoroCmd represents the pomodoro command
var pomodoroCmd = &cobra.Command{
	Use:   "pomodoro",
	Short: "Start a pomodoro work/break cycle",
	Long: `Start a pomodoro cycle: work sessions separated by breaks, with a
long break closing each cycle. Defaults to 25m work, 5m break, 15m long
break, 4 sessions per cycle, and a single cycle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := defaultSound(pomoSound, pomoVolume)
		if err != nil {
			return err
		}

		s, err := eng.Apply(engine.CreatePomodoro{
			Name:  pomoName,
			Sound: profile,
			Config: domain.PomodoroConfig{
				WorkDuration:      time.Duration(pomoWork) * time.Minute,
				BreakDuration:     time.Duration(pomoBreak) * time.Minute,
				LongBreakDuration: time.Duration(pomoLong) * time.Minute,
				SessionsPerCycle:  pomoSessions,
				TotalCycles:       pomoCycles,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to start pomodoro: %w", err)
		}

		p := s.Pomodoro
		if jsonOutput {
			return printJSON(map[string]interface{}{
				"id":                 s.ID,
				"name":               s.Name,
				"phase":              string(p.Phase),
				"sessions_per_cycle": p.SessionsPerCycle,
				"total_cycles":       p.TotalCycles,
			})
		}

		fmt.Printf("🍅 %s started (ID: %d)\n", s.Name, s.ID)
		fmt.Printf("   %s work, %s break, %s long break\n",
			p.WorkDuration, p.BreakDuration, p.LongBreakDuration)
		fmt.Printf("   %d sessions per cycle, %d cycle(s)\n", p.SessionsPerCycle, p.TotalCycles)
		fmt.Println("   Run \"bellhop watch\" to follow the cycle.")
		return nil
	},
}

func init() {
	pomodoroCmd.Flags().StringVarP(&pomoName, "name", "n", "", "Pomodoro name")
	pomodoroCmd.Flags().IntVar(&pomoWork, "work", 0, "Work phase length in minutes (default 25)")
	pomodoroCmd.Flags().IntVar(&pomoBreak, "break", 0, "Break length in minutes (default 5)")
	pomodoroCmd.Flags().IntVar(&pomoLong, "long-break", 0, "Long break length in minutes (default 15)")
	pomodoroCmd.Flags().IntVar(&pomoSessions, "sessions", 0, "Work sessions before a long break (default 4)")
	pomodoroCmd.Flags().IntVar(&pomoCycles, "cycles", 0, "Number of full cycles (default 1)")
	pomodoroCmd.Flags().StringVar(&pomoSound, "sound", "", "Phase-change sound: light, strong, school, siren")
	pomodoroCmd.Flags().Float64Var(&pomoVolume, "volume", 0, "Sound volume between 0 and 1")
}
