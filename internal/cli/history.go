package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"hubscan/internal/hubcache"
	"hubscan/internal/storage/sqlite"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of scans to show")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent cache scans",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.RecentScans(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No scans recorded yet. Run 'hubscan serve' and refresh at least once.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tORGS\tMODELS\tTOTAL\tDURATION")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
			humanize.Time(rec.ScannedAt),
			rec.OrgCount,
			rec.ModelCount,
			hubcache.FormatSize(rec.TotalBytes, hubcache.FormatAuto),
			rec.Duration,
		)
	}
	return w.Flush()
}
