package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/serene-app/serene/internal/daemon"
)

func init() {
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install the default badge catalog",
	Long:  `Insert or update the default badge set. Safe to run repeatedly.`,
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	n, err := d.SeedBadges()
	if err != nil {
		return err
	}
	fmt.Printf("Seeded %d badges.\n", n)
	return nil
}
