package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/talentops/agency-ledger/internal/cli"
	"github.com/talentops/agency-ledger/internal/mapper"
	"github.com/talentops/agency-ledger/internal/model"
)

func approvalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approvals",
		Short: "Review pending income transactions",
		Long:  `List, approve, reject and cancel income transactions awaiting review.`,
	}

	cmd.AddCommand(listApprovalsCmd())
	cmd.AddCommand(approveCmd())
	cmd.AddCommand(approveAllCmd())
	cmd.AddCommand(rejectCmd())
	cmd.AddCommand(cancelCmd())
	cmd.AddCommand(togglePaidCmd())

	return cmd
}

func listApprovalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List transactions awaiting approval",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newLedgerService(cmd.Context())
			if err != nil {
				return err
			}

			pending := svc.Ledger().Pending()
			if len(pending) == 0 {
				fmt.Println(cli.FormatSuccess("Nothing awaiting approval."))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%d pending transactions", len(pending))))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "ROW\tDATE\tAGENT\tCLIENT\tAMOUNT\tPAID DIRECT\n")
			for _, t := range pending {
				direct := ""
				if t.PaidToClientDirectly {
					direct = cli.SuccessIcon
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t₪%.0f\t%s\n",
					t.SourceRow, mapper.FormatDate(t.Date), t.AgentName, t.ClientName, t.AmountILS, direct)
			}
			return nil
		},
	}
}

func approveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <row>",
		Short: "Approve a pending transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, row, err := serviceAndRow(cmd, args[0])
			if err != nil {
				return err
			}
			t, err := findIncomeByRow(svc, row)
			if err != nil {
				return err
			}

			approved, err := svc.Approve(cmd.Context(), t.ID)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Approved row %d (%s, %s)",
				row, approved.ClientName, cli.FormatILS(approved.AmountILS))))
			return nil
		},
	}
}

func approveAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve-all",
		Short: "Approve every pending transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newLedgerService(cmd.Context())
			if err != nil {
				return err
			}

			pending := svc.Ledger().Pending()
			if len(pending) == 0 {
				fmt.Println(cli.FormatSuccess("Nothing awaiting approval."))
				return nil
			}

			bar := progressbar.NewOptions(len(pending),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Approving transactions..."),
			)

			// Approvals are individually idempotent, so one pass over the
			// whole pending set is safe to re-run after a partial failure.
			result, err := svc.ApproveAll(cmd.Context(), func(model.IncomeTransaction) {
				_ = bar.Add(1)
			})
			_ = bar.Finish()
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Approved %d transactions", result.Approved)))
			if result.RemoteFailures > 0 {
				fmt.Println(cli.FormatWarning(fmt.Sprintf(
					"%d remote writes failed; the next sync will reconcile them", result.RemoteFailures)))
			}
			return nil
		},
	}
}

func rejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <row>",
		Short: "Reject and delete a pending transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, row, err := serviceAndRow(cmd, args[0])
			if err != nil {
				return err
			}
			t, err := findIncomeByRow(svc, row)
			if err != nil {
				return err
			}

			if err := svc.Reject(cmd.Context(), t.ID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Rejected row %d (%s)", row, t.ClientName)))
			return nil
		},
	}
}

func cancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <row>",
		Short: "Cancel a transaction, keeping it for audit",
		Long:  `Mark a transaction cancelled. The row stays on the spreadsheet with its original amount; the ledger stops counting it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, row, err := serviceAndRow(cmd, args[0])
			if err != nil {
				return err
			}
			t, err := findIncomeByRow(svc, row)
			if err != nil {
				return err
			}

			cancelled, err := svc.Cancel(cmd.Context(), t.ID)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Cancelled row %d (original amount %s)",
				row, cli.FormatILS(cancelled.OriginalAmount))))
			return nil
		},
	}
}

func togglePaidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-paid <row>",
		Short: "Flip the paid-to-client-directly flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, row, err := serviceAndRow(cmd, args[0])
			if err != nil {
				return err
			}
			t, err := findIncomeByRow(svc, row)
			if err != nil {
				return err
			}

			updated, err := svc.ToggleDirectPayment(cmd.Context(), t.ID)
			if err != nil {
				return err
			}

			state := "not paid directly"
			if updated.PaidToClientDirectly {
				state = "paid directly to client"
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Row %d is now %s", row, state)))
			return nil
		},
	}
}
