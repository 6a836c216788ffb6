package cmd

import (
	"fmt"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/arkadyv/bellhop/internal/domain"
	"github.com/arkadyv/bellhop/internal/timeformat"
)

var listFilter string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled sessions",
	Long:  `List all scheduled sessions ordered by soonest first, optionally fuzzy-filtered by name.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "Fuzzy-filter sessions by name")
}

func runList(cmd *cobra.Command, args []string) error {
	sessions := eng.Sessions()
	now := eng.Now()

	if listFilter != "" {
		names := make([]string, len(sessions))
		for i, s := range sessions {
			names[i] = s.Name
		}
		matches := fuzzy.Find(listFilter, names)
		filtered := make([]*domain.Session, 0, len(matches))
		for _, m := range matches {
			filtered = append(filtered, sessions[m.Index])
		}
		sessions = filtered
	}

	if jsonOutput {
		list := []map[string]interface{}{}
		for _, s := range sessions {
			entry := map[string]interface{}{
				"id":           s.ID,
				"type":         string(s.Kind),
				"name":         s.Name,
				"target_time":  s.TargetTime.Format(time.RFC3339),
				"remaining":    timeformat.Countdown(s.Remaining(now)),
				"snooze_count": s.SnoozeCount,
			}
			if p := s.Pomodoro; p != nil {
				entry["phase"] = string(p.Phase)
				entry["current_session"] = p.CurrentSession
				entry["current_cycle"] = p.CurrentCycle
			}
			list = append(list, entry)
		}
		return printJSON(map[string]interface{}{
			"sessions": list,
			"count":    len(list),
		})
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions scheduled.")
		return nil
	}

	fmt.Printf("⏰ Sessions (%d):\n\n", len(sessions))
	for _, s := range sessions {
		fmt.Printf("%s %s (ID: %d)\n", kindIcon(s.Kind), s.Name, s.ID)
		fmt.Printf("   %s remaining, rings at %s\n",
			timeformat.Countdown(s.Remaining(now)), timeformat.Stamp(s.TargetTime))
		if p := s.Pomodoro; p != nil {
			fmt.Printf("   %s · Session %d/%d · Cycle %d/%d\n",
				domain.PhaseLabel(p.Phase), p.CurrentSession, p.SessionsPerCycle,
				p.CurrentCycle, p.TotalCycles)
		}
		if s.SnoozeCount > 0 {
			fmt.Printf("   Snoozed %d times\n", s.SnoozeCount)
		}
	}
	return nil
}

func kindIcon(k domain.Kind) string {
	switch k {
	case domain.KindTimer:
		return "⏱️"
	case domain.KindReminder:
		return "🔔"
	case domain.KindPomodoro:
		return "🍅"
	default:
		return "❓"
	}
}
