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

func newPaymentsCmd() *cobra.Command {
	var (
		searchFlag string
		statusFlag string
		typeFlag   string
		pageFlag   int
		jsonFlag   bool
		cachedFlag bool
	)

	cmd := &cobra.Command{
		Use:   "payments",
		Short: "List transactions with filters and pagination",
		Long: `List transactions from the portal backend. The search term matches the
merchant display name or the payment code case-insensitively; status and
type filters are exact matches. Filters are ANDed; an empty filter passes
everything through.`,
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

			snap, err := loadSnapshot(ctx, cache, "payments", cachedFlag, fetcher.Payments)
			if err != nil {
				return err
			}

			state := report.NewListState()
			state.SetSearch(searchFlag)
			state.SetStatus(statusFlag)
			state.SetPayType(typeFlag)
			state.SetPage(pageFlag)

			names := report.NameIndex(snap.Merchants)
			filtered := report.FilterPayments(snap.Payments, names, state.PaymentFilter())
			page := report.Paginate(filtered, state.Page(), report.DefaultPageSize)

			if jsonFlag {
				output.PrintJSON(page)
				return nil
			}
			printPaymentsPage(page, names, snap)
			return nil
		},
	}

	cmd.Flags().StringVarP(&searchFlag, "search", "s", "", "Substring match against merchant name or payment code")
	cmd.Flags().StringVar(&statusFlag, "status", "", "Exact payment status (PENDING|SUCCESS|FAILED|CANCELLED)")
	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "Exact payment method (ONLINE|DEVICE|MOBILE|VACT|BILLING)")
	cmd.Flags().IntVarP(&pageFlag, "page", "p", 1, "Page number (1-indexed)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the page as JSON")
	cmd.Flags().BoolVar(&cachedFlag, "cached", false, "Prefer the local snapshot cache over a fresh fetch")

	return cmd
}

func printPaymentsPage(page report.Page[clients.Payment], names map[string]string, snap *snapshot.Payments) {
	if page.TotalItems == 0 {
		fmt.Println("No transactions match the current filter.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tPAYMENT\tMERCHANT\tTYPE\tSTATUS\tAMOUNT")
	for _, p := range page.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ui.FormatTimestamp(p.PaymentAt),
			p.PaymentCode,
			ui.TruncateText(report.MerchantName(names, p.MchtCode), 24),
			labels.Resolve(snap.PayTypeLabels, string(p.PayType)),
			labels.Resolve(snap.StatusLabels, string(p.Status)),
			ui.FormatWon(p.Amount),
		)
	}
	_ = w.Flush()

	totalPages := page.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}
	fmt.Printf("\nPage %d/%d · %d transactions\n", page.Page, totalPages, page.TotalItems)
}
