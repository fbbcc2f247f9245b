package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"payboard/clients"
	"payboard/internal/ui"
	"payboard/labels"
	"payboard/output"
	"payboard/report"
	"payboard/snapshot"
)

func newMerchantCmd() *cobra.Command {
	var (
		pageFlag   int
		jsonFlag   bool
		cachedFlag bool
		openFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "merchant [mchtCode]",
		Short: "Show merchant registration details and transaction history",
		Long: `Show one merchant's registration record plus its transaction history
(most recent first, all statuses). Without an argument an interactive
picker over the merchant list is shown.`,
		Args: cobra.MaximumNArgs(1),
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

			var code string
			if len(args) == 1 {
				code = args[0]
			} else {
				listSnap, err := loadSnapshot(ctx, cache, "merchants", cachedFlag, fetcher.Merchants)
				if err != nil {
					return err
				}
				picked, err := ui.PickMerchant(listSnap.Merchants, listSnap.StatusLabels)
				if err != nil {
					if errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrInterrupt) {
						return nil
					}
					return err
				}
				code = picked.MchtCode
			}

			snap, err := loadSnapshot(ctx, cache, "merchant:"+code, cachedFlag,
				func(ctx2 context.Context) (*snapshot.MerchantDetail, error) {
					return fetcher.MerchantDetail(ctx2, code)
				})
			if err != nil {
				return err
			}

			if openFlag {
				pageURL := cfg.Portal.WebURL + "/merchants/" + code
				if err := browser.OpenURL(pageURL); err != nil {
					output.LogEvent("browser_open_error", map[string]any{"url": pageURL, "error": err.Error()})
				}
			}

			activity := report.ActivityFor(snap.Payments, code)
			history := report.Paginate(activity.Payments, pageFlag, report.DetailPageSize)

			if jsonFlag {
				output.PrintJSON(map[string]any{
					"merchant": snap.Detail,
					"summary": map[string]any{
						"transactionCount": activity.Count,
						"totalAmount":      activity.TotalAmount,
					},
					"history": history,
				})
				return nil
			}

			printMerchantDetail(snap, activity, history)
			return nil
		},
	}

	cmd.Flags().IntVarP(&pageFlag, "page", "p", 1, "History page number (1-indexed)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the detail as JSON")
	cmd.Flags().BoolVar(&cachedFlag, "cached", false, "Prefer the local snapshot cache over a fresh fetch")
	cmd.Flags().BoolVar(&openFlag, "open", false, "Open the merchant page in the web portal")

	return cmd
}

func printMerchantDetail(snap *snapshot.MerchantDetail, activity report.MerchantActivity, history report.Page[clients.Payment]) {
	d := snap.Detail

	fmt.Printf("%s\n\n", d.MchtName)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Code\t%s\n", d.MchtCode)
	fmt.Fprintf(w, "Status\t%s\n", labels.Resolve(snap.StatusLabels, d.Status))
	fmt.Fprintf(w, "Biz type\t%s\n", d.BizType)
	fmt.Fprintf(w, "Biz no\t%s\n", d.BizNo)
	fmt.Fprintf(w, "Address\t%s\n", d.Address)
	fmt.Fprintf(w, "Phone\t%s\n", d.Phone)
	fmt.Fprintf(w, "Email\t%s\n", d.Email)
	fmt.Fprintf(w, "Registered\t%s\n", ui.FormatTimestamp(d.RegisteredAt))
	fmt.Fprintf(w, "Updated\t%s\n", ui.FormatTimestamp(d.UpdatedAt))
	_ = w.Flush()

	fmt.Printf("\nTransactions: 총 %d건 / ₩%s\n", activity.Count, activity.TotalAmount)
	if activity.Count == 0 {
		fmt.Println("해당 가맹점의 거래 내역이 없습니다.")
		return
	}

	hw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(hw, "DATE\tPAYMENT\tTYPE\tSTATUS\tAMOUNT")
	for _, p := range history.Items {
		fmt.Fprintf(hw, "%s\t%s\t%s\t%s\t%s\n",
			ui.FormatTimestamp(p.PaymentAt),
			p.PaymentCode,
			labels.Resolve(snap.PayTypeLabels, string(p.PayType)),
			labels.Resolve(labels.PaymentStatus(), string(p.Status)),
			ui.FormatWon(p.Amount),
		)
	}
	_ = hw.Flush()

	totalPages := history.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}
	fmt.Printf("\nPage %d/%d\n", history.Page, totalPages)
}
