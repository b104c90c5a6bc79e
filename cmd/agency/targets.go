package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talentops/agency-ledger/internal/calc"
	"github.com/talentops/agency-ledger/internal/cli"
	"github.com/talentops/agency-ledger/internal/model"
)

func targetsCmd() *cobra.Command {
	var monthValue string

	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Growth targets derived from the prior month",
		Long: `Projects the prior month's daily income average over the current month
at +5%, +10% and +15%. Without prior-month data every target is zero.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			month, err := parseMonth(monthValue)
			if err != nil {
				return err
			}

			svc, err := newLedgerService(cmd.Context())
			if err != nil {
				return err
			}

			prior := month.AddDate(0, -1, 0)
			priorIncome := incomeForMonth(svc.Ledger().AllIncome(), prior)
			priorTotal := sumEffective(priorIncome)

			targets := calc.GrowthTargets(priorTotal, calc.DaysInMonth(prior), calc.DaysInMonth(month))

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Targets for %s", month.Format("2006-01"))))
			if targets.DailyAverage == 0 {
				fmt.Println(cli.StyleSubtle("  No baseline from the prior month."))
				return nil
			}
			fmt.Printf("  Prior month total: %s (%.0f/day)\n", cli.FormatILS(priorTotal), targets.DailyAverage)
			fmt.Printf("  Target +5%%:   %s\n", cli.FormatILS(targets.Target1))
			fmt.Printf("  Target +10%%:  %s\n", cli.FormatILS(targets.Target2))
			fmt.Printf("  Target +15%%:  %s\n", cli.FormatILS(targets.Target3))

			current := sumEffective(incomeForMonth(svc.Ledger().AllIncome(), month))
			fmt.Printf("  So far:       %s\n", cli.FormatILS(current))
			return nil
		},
	}

	cmd.Flags().StringVar(&monthValue, "month", "", "Month (YYYY-MM, default current)")

	return cmd
}

func sumEffective(records []model.IncomeTransaction) float64 {
	var total float64
	for _, t := range records {
		total += t.EffectiveILS()
	}
	return total
}
