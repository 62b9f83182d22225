package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/serene-app/serene/internal/daemon"
	"github.com/serene-app/serene/internal/domain"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats <user-id>",
	Short: "Show a user's engagement stats",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	userID := args[0]
	stats, err := d.Tracker.Stats(userID)
	if err != nil {
		return err
	}
	if stats == nil {
		fmt.Printf("No activity recorded for %s yet.\n", userID)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CURRENT STREAK\tLONGEST STREAK\tTOTAL POINTS\tLAST ACTIVITY")
	fmt.Fprintf(w, "%d\t%d\t%d\t%s\n",
		stats.CurrentStreak,
		stats.LongestStreak,
		stats.TotalPoints,
		stats.LastActivityDate.Format(domain.DayFormat),
	)
	return w.Flush()
}
