package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"payboard/tui"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive payment-operations dashboard",
		Long:  `Open a full-screen dashboard with revenue KPIs, a 30-day daily revenue chart, a payment-method breakdown and the most recent transactions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher, _, err := newFetcher()
			if err != nil {
				return err
			}
			p := tea.NewProgram(tui.NewDashboardModel(fetcher), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
