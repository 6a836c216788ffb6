package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arkadyv/bellhop/internal/engine"
	"github.com/arkadyv/bellhop/internal/timeformat"
)

var (
	timerHours   int
	timerMinutes int
	timerSeconds int
	timerName    string
	timerDesc    string
	timerSound   string
	timerVolume  float64
	timerFile    string
	timerRecent  bool
)

// timerCmd represents the timer command
var timerCmd = &cobra.Command{
	Use:   "timer [duration]",
	Short: "Start a countdown timer",
	Long: `Start a countdown timer. The duration can be given as a single
argument like "25m", "1h30m" or "90s", or with the --hours/--minutes/--seconds
flags. Use --recent to list recently used durations.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if timerRecent {
			return printRecentTimers()
		}

		hours, minutes, seconds := timerHours, timerMinutes, timerSeconds
		if len(args) == 1 {
			d, err := parseTimerArg(args[0])
			if err != nil {
				return err
			}
			hours = int(d / time.Hour)
			minutes = int(d % time.Hour / time.Minute)
			seconds = int(d % time.Minute / time.Second)
		}

		profile, err := defaultSound(timerSound, timerVolume)
		if err != nil {
			return err
		}

		s, err := eng.Apply(engine.CreateTimer{
			Name:        timerName,
			Description: timerDesc,
			Sound:       profile,
			Hours:       hours,
			Minutes:     minutes,
			Seconds:     seconds,
		})
		if err != nil {
			return fmt.Errorf("failed to create timer: %w", err)
		}

		if timerFile != "" {
			payload, err := os.ReadFile(timerFile)
			if err != nil {
				return fmt.Errorf("failed to read sound file: %w", err)
			}
			if err := eng.AttachSound(s.ID, filepath.Base(timerFile), payload); err != nil {
				return fmt.Errorf("failed to attach sound: %w", err)
			}
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"id":          s.ID,
				"name":        s.Name,
				"target_time": s.TargetTime.Format(time.RFC3339),
				"duration":    s.OriginalDuration.String(),
			})
		}

		fmt.Printf("⏱️  %s set for %s (ID: %d)\n", s.Name,
			timeformat.TimerLabel(hours, minutes, seconds), s.ID)
		fmt.Printf("   Rings at %s\n", timeformat.Stamp(s.TargetTime))
		return nil
	},
}

func init() {
	timerCmd.Flags().IntVar(&timerHours, "hours", 0, "Hours component of the duration")
	timerCmd.Flags().IntVar(&timerMinutes, "minutes", 0, "Minutes component of the duration")
	timerCmd.Flags().IntVar(&timerSeconds, "seconds", 0, "Seconds component of the duration")
	timerCmd.Flags().StringVarP(&timerName, "name", "n", "", "Timer name")
	timerCmd.Flags().StringVar(&timerDesc, "desc", "", "Note shown when the timer rings")
	timerCmd.Flags().StringVar(&timerSound, "sound", "", "Alarm sound: light, strong, school, siren")
	timerCmd.Flags().Float64Var(&timerVolume, "volume", 0, "Alarm volume between 0 and 1")
	timerCmd.Flags().StringVar(&timerFile, "sound-file", "", "WAV file to play instead of a built-in sound")
	timerCmd.Flags().BoolVar(&timerRecent, "recent", false, "List recently used timer durations")
}

// parseTimerArg accepts Go duration syntax ("1h30m") and a bare minute
// count ("25").
func parseTimerArg(arg string) (time.Duration, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		return time.Duration(n) * time.Minute, nil
	}
	d, err := time.ParseDuration(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", arg, err)
	}
	return d, nil
}

func printRecentTimers() error {
	presets := eng.Presets()

	if jsonOutput {
		list := []map[string]interface{}{}
		for _, p := range presets {
			list = append(list, map[string]interface{}{
				"hours":   p.Hours,
				"minutes": p.Minutes,
				"seconds": p.Seconds,
			})
		}
		return printJSON(map[string]interface{}{"recent": list})
	}

	if len(presets) == 0 {
		fmt.Println("No recent timers.")
		return nil
	}
	var labels []string
	for _, p := range presets {
		labels = append(labels, timeformat.TimerLabel(p.Hours, p.Minutes, p.Seconds))
	}
	fmt.Printf("Recent timers: %s\n", strings.Join(labels, ", "))
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
