package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talentops/agency-ledger/internal/cli"
)

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch the full dataset from the spreadsheet",
		Long:  `Reload every income and expense row from the remote spreadsheet into the local ledger.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newLedgerService(cmd.Context())
			if err != nil {
				return err
			}

			income := svc.Ledger().IncomeCount()
			expenses := len(svc.Ledger().AllExpenses())
			pending := len(svc.Ledger().Pending())

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Synced %d income rows and %d expense rows", income, expenses)))
			if pending > 0 {
				fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("%s %d records awaiting approval", cli.PendingIcon, pending)))
			}
			return nil
		},
	}
}
