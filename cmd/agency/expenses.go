package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/talentops/agency-ledger/internal/cli"
	"github.com/talentops/agency-ledger/internal/mapper"
	"github.com/talentops/agency-ledger/internal/model"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Manage expense records",
	}

	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(retagExpenseCmd())
	cmd.AddCommand(deleteExpenseCmd())
	cmd.AddCommand(categoriesCmd())

	return cmd
}

func listExpensesCmd() *cobra.Command {
	var monthValue string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expense records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newLedgerService(cmd.Context())
			if err != nil {
				return err
			}

			expenses := svc.Ledger().AllExpenses()
			if monthValue != "" {
				month, err := parseMonth(monthValue)
				if err != nil {
					return err
				}
				expenses = expensesForMonth(expenses, month)
			}

			if len(expenses) == 0 {
				fmt.Println(cli.StyleSubtle("No expense records."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "ROW\tDATE\tCATEGORY\tDESCRIPTION\tPAYER\tAMOUNT\tTAG\n")
			for _, e := range expenses {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t₪%.0f\t%s\n",
					e.SourceRow, mapper.FormatDate(e.Date), e.Category,
					e.Description, e.Payer, e.Amount, e.Classification)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&monthValue, "month", "", "Limit to a month (YYYY-MM)")

	return cmd
}

func addExpenseCmd() *cobra.Command {
	var (
		category    string
		description string
		amount      float64
		payer       string
		date        string
		docType     string
		vat         bool
		tax         bool
		receipt     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newLedgerService(cmd.Context())
			if err != nil {
				return err
			}

			when := time.Now()
			if date != "" {
				when, err = time.Parse("02/01/2006", date)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected DD/MM/YYYY", date)
				}
			}

			recorded, err := svc.AddExpense(cmd.Context(), model.Expense{
				Category:         category,
				Description:      description,
				Amount:           amount,
				Payer:            payer,
				Date:             when,
				DocumentType:     docType,
				VATEligible:      vat,
				TaxEligible:      tax,
				ReceiptReference: receipt,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s expense of %s paid by %s",
				recorded.Category, cli.FormatILS(recorded.Amount), recorded.Payer)))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Expense category (see 'expenses categories')")
	cmd.Flags().StringVar(&description, "description", "", "What the expense was for")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount in ILS")
	cmd.Flags().StringVar(&payer, "payer", "", "Cost-bearer who paid")
	cmd.Flags().StringVar(&date, "date", "", "Expense date as DD/MM/YYYY (default today)")
	cmd.Flags().StringVar(&docType, "doc-type", "", "Document type (invoice, receipt)")
	cmd.Flags().BoolVar(&vat, "vat", false, "Expense is VAT-eligible")
	cmd.Flags().BoolVar(&tax, "tax", false, "Expense is tax-deductible")
	cmd.Flags().StringVar(&receipt, "receipt", "", "Receipt reference")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("payer")

	return cmd
}

func retagExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retag <row> <classification>",
		Short: "Change the secondary classification tag of an expense",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, row, err := serviceAndRow(cmd, args[0])
			if err != nil {
				return err
			}
			e, err := findExpenseByRow(svc, row)
			if err != nil {
				return err
			}

			e.Classification = args[1]
			if err := svc.UpdateExpense(cmd.Context(), e); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Retagged row %d as %q", row, args[1])))
			return nil
		},
	}
}

func deleteExpenseCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <row>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, row, err := serviceAndRow(cmd, args[0])
			if err != nil {
				return err
			}
			e, err := findExpenseByRow(svc, row)
			if err != nil {
				return err
			}

			if !force {
				fmt.Printf("Delete %s expense of ₪%.0f at row %d? (y/N): ", e.Category, e.Amount, row)
				var response string
				fmt.Scanln(&response)
				if strings.ToLower(response) != "y" {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			if err := svc.DeleteExpense(cmd.Context(), e.ID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted expense at row %d", row)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the allowed expense categories",
		Run: func(_ *cobra.Command, _ []string) {
			for _, c := range model.ExpenseCategories {
				fmt.Println(c)
			}
		},
	}
}
