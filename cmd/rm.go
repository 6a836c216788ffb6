package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arkadyv/bellhop/internal/engine"
)

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Cancel and delete scheduled sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session ID %q", arg)
			}
			if _, err := eng.Apply(engine.Remove{ID: id}); err != nil {
				return err
			}
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{"removed": len(args)})
		}
		fmt.Printf("Removed %d session(s).\n", len(args))
		return nil
	},
}
