package cmd

import (
	"fmt"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/arkadyv/bellhop/internal/domain"
	"github.com/arkadyv/bellhop/internal/engine"
	"github.com/arkadyv/bellhop/internal/timeformat"
)

var (
	historyFilter string
	historyClear  bool
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show completed reminders and pomodoros",
	Long:  `Show the completed-session log, newest first. Timers are not logged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyClear {
			if _, err := eng.Apply(engine.ClearHistory{}); err != nil {
				return err
			}
			fmt.Println("History cleared.")
			return nil
		}

		entries := eng.History()
		now := eng.Now()

		if historyFilter != "" {
			names := make([]string, len(entries))
			for i, e := range entries {
				names[i] = e.Name
			}
			matches := fuzzy.Find(historyFilter, names)
			filtered := make([]domain.HistoryEntry, 0, len(matches))
			for _, m := range matches {
				filtered = append(filtered, entries[m.Index])
			}
			entries = filtered
		}

		if jsonOutput {
			list := []map[string]interface{}{}
			for _, e := range entries {
				entry := map[string]interface{}{
					"name":         e.Name,
					"type":         string(e.Kind),
					"completed_at": e.CompletedAt.Format(time.RFC3339),
				}
				if e.Kind == domain.KindPomodoro {
					entry["completed_sessions"] = e.CompletedSessions
					entry["total_cycles"] = e.TotalCycles
				}
				list = append(list, entry)
			}
			return printJSON(map[string]interface{}{
				"history": list,
				"count":   len(list),
			})
		}

		if len(entries) == 0 {
			fmt.Println("No completed sessions.")
			return nil
		}

		fmt.Printf("📜 History (%d):\n\n", len(entries))
		for _, e := range entries {
			fmt.Printf("%s %s · %s\n", kindIcon(e.Kind), e.Name, timeformat.Ago(e.CompletedAt, now))
			if e.Kind == domain.KindPomodoro {
				fmt.Printf("   %d sessions over %d cycle(s)\n", e.CompletedSessions, e.TotalCycles)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyFilter, "filter", "f", "", "Fuzzy-filter entries by name")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Clear the history log")
}
