package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hubscan/internal/hubcache"
)

var (
	listOrg string
	listGB  bool
)

func init() {
	listCmd.Flags().StringVar(&listOrg, "org", "", "only show models from this organization")
	listCmd.Flags().BoolVar(&listGB, "gb", false, "report every size in gigabytes")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List cached models and their disk usage",
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root := cfg.HubCacheDir()
	snap, err := hubcache.BuildSnapshot(root)
	if err != nil {
		return err
	}

	if listOrg != "" {
		snap = hubcache.FilterByOrganization(snap, listOrg)
	}

	if snap.ModelCount == 0 {
		fmt.Printf("No cached models found under %s\n", root)
		return nil
	}

	mode := hubcache.FormatAuto
	if listGB {
		mode = hubcache.FormatGB
	}

	fmt.Printf("Model cache: %s\n\n", root)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORGANIZATION\tMODEL\tSIZE")
	for _, agg := range snap.Orgs {
		for _, rec := range agg.Models {
			fmt.Fprintf(w, "%s\t%s\t%s\n", rec.Organization, rec.Model, hubcache.FormatSize(rec.SizeBytes, mode))
		}
		if len(snap.Orgs) > 1 {
			fmt.Fprintf(w, "%s total\t\t%s\n", agg.Organization, hubcache.FormatSize(agg.TotalBytes, mode))
		}
	}
	fmt.Fprintf(w, "TOTAL\t\t%s\n", snap.TotalHuman(mode))
	return w.Flush()
}
