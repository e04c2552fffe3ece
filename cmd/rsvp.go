package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var rsvpCmd = &cobra.Command{
	Use:   "rsvp",
	Short: "View guest RSVPs",
}

var rsvpListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all RSVPs",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		rsvps, err := provider.ListRsvps(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing RSVPs: %v\n", err)
			os.Exit(1)
		}

		if len(rsvps) == 0 {
			fmt.Println("No RSVPs found.")
			return
		}

		var attending, companions int
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tATTENDING\tCOMPANIONS\tCREATED AT")
		for _, r := range rsvps {
			verdict := "no"
			if r.Attending {
				verdict = "yes"
				attending++
				companions += r.CompanionsCount
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
				r.GuestName, verdict, r.CompanionsCount, r.CreatedAt.Format(time.RFC3339))
		}
		w.Flush()

		fmt.Printf("\n%d attending, %d companions, %d total guests expected.\n",
			attending, companions, attending+companions)
	},
}

func init() {
	rootCmd.AddCommand(rsvpCmd)
	rsvpCmd.AddCommand(rsvpListCmd)
}
