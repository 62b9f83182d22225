package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/serene-app/serene/internal/daemon"
)

func init() {
	rootCmd.AddCommand(badgesCmd)
}

var badgesCmd = &cobra.Command{
	Use:   "badges [user-id]",
	Short: "List the badge catalog, or a user's earned badges",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBadges,
}

func runBadges(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if len(args) == 0 {
		return printCatalog(d)
	}
	return printEarned(d, args[0])
}

func printCatalog(d *daemon.Daemon) error {
	badges, err := d.DB.AllBadges()
	if err != nil {
		return err
	}
	if len(badges) == 0 {
		fmt.Println("Badge catalog is empty. Run 'serene seed' to install it.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tREQUIREMENT\tTHRESHOLD")
	for _, b := range badges {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%d\n", b.ID, b.Icon, b.Name, b.RequirementType, b.RequirementValue)
	}
	return w.Flush()
}

func printEarned(d *daemon.Daemon, userID string) error {
	awards, err := d.DB.ListUserBadges(userID)
	if err != nil {
		return err
	}
	if len(awards) == 0 {
		fmt.Printf("%s has not earned any badges yet.\n", userID)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BADGE\tEARNED")
	for _, a := range awards {
		fmt.Fprintf(w, "%s\t%s\n", a.BadgeID, a.EarnedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
