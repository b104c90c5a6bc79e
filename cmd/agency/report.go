package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talentops/agency-ledger/internal/calc"
	"github.com/talentops/agency-ledger/internal/cli"
	"github.com/talentops/agency-ledger/internal/config"
	"github.com/talentops/agency-ledger/internal/model"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial reports over the ledger",
	}

	cmd.AddCommand(payrollCmd())
	cmd.AddCommand(balanceCmd())
	cmd.AddCommand(offsetCmd())
	cmd.AddCommand(profitCmd())

	return cmd
}

func payrollCmd() *cobra.Command {
	var (
		agent      string
		monthValue string
	)

	cmd := &cobra.Command{
		Use:   "payroll",
		Short: "Compute an agent's salary for a month",
		Long:  `Salary is a percentage of the sales the agent worked: office shifts pay 17%, remote shifts 15%.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			month, err := parseMonth(monthValue)
			if err != nil {
				return err
			}

			svc, err := newLedgerService(cmd.Context())
			if err != nil {
				return err
			}

			records := incomeForMonth(svc.Ledger().AllIncome(), month)
			var mine []model.IncomeTransaction
			for _, t := range records {
				if strings.EqualFold(t.AgentName, agent) {
					mine = append(mine, t)
				}
			}

			split := calc.Payroll(mine)

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Payroll for %s, %s", agent, month.Format("2006-01"))))
			fmt.Printf("  Office sales:  %s  -> salary %s\n", cli.FormatILS(split.OfficeSales), cli.FormatILS(split.OfficeSalary))
			fmt.Printf("  Remote sales:  %s  -> salary %s\n", cli.FormatILS(split.RemoteSales), cli.FormatILS(split.RemoteSalary))
			fmt.Printf("  Total salary:  %s\n", cli.FormatILS(split.Total))
			return nil
		},
	}

	cmd.Flags().StringVar(&agent, "agent", "", "Agent to compute payroll for")
	cmd.Flags().StringVar(&monthValue, "month", "", "Month (YYYY-MM, default current)")
	_ = cmd.MarkFlagRequired("agent")

	return cmd
}

func balanceCmd() *cobra.Command {
	var (
		client     string
		monthValue string
	)

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Compute a client's commission balance for a month",
		Long: `The client is entitled to her commission percentage of everything earned
under her name. Income paid straight to her counts against that
entitlement; the balance is what the agency still owes (positive) or is
owed back (negative).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			month, err := parseMonth(monthValue)
			if err != nil {
				return err
			}

			registry, err := openRegistry()
			if err != nil {
				return err
			}
			defer registry.Close()

			pct, err := registry.Rate(cmd.Context(), client, month)
			if err != nil {
				return err
			}

			svc, err := newLedgerService(cmd.Context())
			if err != nil {
				return err
			}

			records := incomeForMonth(svc.Ledger().AllIncome(), month)
			b := calc.Balance(records, client, pct)

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Balance for %s, %s", client, month.Format("2006-01"))))
			fmt.Printf("  Total income:    %s\n", cli.FormatILS(b.TotalIncome))
			fmt.Printf("  Paid directly:   %s\n", cli.FormatILS(b.Direct))
			fmt.Printf("  Through agency:  %s\n", cli.FormatILS(b.ThroughAgency))
			fmt.Printf("  Commission:      %.1f%% -> %s\n", b.Percent, cli.FormatILS(b.Entitlement))
			switch {
			case b.Balance > 0:
				fmt.Printf("  Agency owes %s %s\n", client, cli.FormatILS(b.Balance))
			case b.Balance < 0:
				fmt.Printf("  %s owes the agency %s\n", client, cli.FormatILS(-b.Balance))
			default:
				fmt.Println(cli.FormatSuccess("  Settled."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&client, "client", "", "Client to compute the balance for")
	cmd.Flags().StringVar(&monthValue, "month", "", "Month (YYYY-MM, default current)")
	_ = cmd.MarkFlagRequired("client")

	return cmd
}

func offsetCmd() *cobra.Command {
	var monthValue string

	cmd := &cobra.Command{
		Use:   "offset",
		Short: "Compute the expense offset between the cost-bearers",
		Long:  `Shared expenses are split equally: whoever paid more is owed half the difference by the other.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			month, err := parseMonth(monthValue)
			if err != nil {
				return err
			}

			svc, err := newLedgerService(cmd.Context())
			if err != nil {
				return err
			}

			bearerA, bearerB := config.CostBearers()
			expenses := expensesForMonth(svc.Ledger().AllExpenses(), month)
			o := calc.ExpenseOffset(expenses, bearerA, bearerB)

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Expense offset, %s", month.Format("2006-01"))))
			fmt.Printf("  %s paid: %s\n", bearerA, cli.FormatILS(o.PaidA))
			fmt.Printf("  %s paid: %s\n", bearerB, cli.FormatILS(o.PaidB))
			if o.Amount == 0 {
				fmt.Println(cli.FormatSuccess("  Even."))
			} else {
				fmt.Printf("  %s owes %s %s\n", o.Owes, o.OwedTo, cli.FormatILS(o.Amount))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&monthValue, "month", "", "Month (YYYY-MM, default current)")

	return cmd
}

func profitCmd() *cobra.Command {
	var monthValue string

	cmd := &cobra.Command{
		Use:   "profit",
		Short: "Income minus expenses for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			month, err := parseMonth(monthValue)
			if err != nil {
				return err
			}

			svc, err := newLedgerService(cmd.Context())
			if err != nil {
				return err
			}

			income := incomeForMonth(svc.Ledger().AllIncome(), month)
			expenses := expensesForMonth(svc.Ledger().AllExpenses(), month)
			p := calc.Profit(income, expenses)

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Profit, %s", month.Format("2006-01"))))
			fmt.Printf("  Income:   %s\n", cli.FormatILS(p.Income))
			fmt.Printf("  Expenses: %s\n", cli.FormatILS(p.Expenses))
			style := cli.SuccessStyle
			if p.Profit < 0 {
				style = cli.ErrorStyle
			}
			fmt.Printf("  Profit:   %s\n", style.Render(fmt.Sprintf("₪%.2f", p.Profit)))
			return nil
		},
	}

	cmd.Flags().StringVar(&monthValue, "month", "", "Month (YYYY-MM, default current)")

	return cmd
}
