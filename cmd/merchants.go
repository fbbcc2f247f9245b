package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"payboard/clients"
	"payboard/internal/ui"
	"payboard/labels"
	"payboard/output"
	"payboard/report"
	"payboard/snapshot"
)

func newMerchantsCmd() *cobra.Command {
	var (
		searchFlag string
		statusFlag string
		pageFlag   int
		jsonFlag   bool
		cachedFlag bool
	)

	cmd := &cobra.Command{
		Use:   "merchants",
		Short: "List merchants with filters and pagination",
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher, cfg, err := newFetcher()
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			cache := openCache(cfg)
			if cache != nil {
				defer func() { _ = cache.Close() }()
			}

			snap, err := loadSnapshot(ctx, cache, "merchants", cachedFlag, fetcher.Merchants)
			if err != nil {
				return err
			}

			state := report.NewListState()
			state.SetSearch(searchFlag)
			state.SetStatus(statusFlag)
			state.SetPage(pageFlag)

			filtered := report.FilterMerchants(snap.Merchants, state.MerchantFilter())
			page := report.Paginate(filtered, state.Page(), report.DefaultPageSize)

			if jsonFlag {
				output.PrintJSON(page)
				return nil
			}
			printMerchantsPage(page, snap)
			return nil
		},
	}

	cmd.Flags().StringVarP(&searchFlag, "search", "s", "", "Substring match against the merchant name")
	cmd.Flags().StringVar(&statusFlag, "status", "", "Exact merchant status code")
	cmd.Flags().IntVarP(&pageFlag, "page", "p", 1, "Page number (1-indexed)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the page as JSON")
	cmd.Flags().BoolVar(&cachedFlag, "cached", false, "Prefer the local snapshot cache over a fresh fetch")

	return cmd
}

func printMerchantsPage(page report.Page[clients.Merchant], snap *snapshot.Merchants) {
	if page.TotalItems == 0 {
		fmt.Println("No merchants match the current filter.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tSTATUS\tBIZ TYPE")
	for _, m := range page.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			m.MchtCode,
			ui.TruncateText(m.MchtName, 28),
			labels.Resolve(snap.StatusLabels, m.Status),
			m.BizType,
		)
	}
	_ = w.Flush()

	totalPages := page.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}
	fmt.Printf("\nPage %d/%d · %d merchants\n", page.Page, totalPages, page.TotalItems)
}
