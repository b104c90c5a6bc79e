package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/talentops/agency-ledger/internal/cli"
	"github.com/talentops/agency-ledger/internal/config"
	"github.com/talentops/agency-ledger/internal/mapper"
	"github.com/talentops/agency-ledger/internal/model"
)

func incomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Record and inspect income transactions",
	}

	cmd.AddCommand(addIncomeCmd())
	cmd.AddCommand(listIncomeCmd())

	return cmd
}

func addIncomeCmd() *cobra.Command {
	var (
		agent    string
		client   string
		payer    string
		usd      float64
		ils      float64
		rate     float64
		platform string
		location string
		date     string
		hour     string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new income transaction",
		Long:  `Append a new income row to the spreadsheet and the local ledger. Provide either an ILS amount or a USD amount; USD is converted at the given (or default) rate.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !config.KnownAgent(agent) {
				return fmt.Errorf("unknown agent %q, configured agents: %s",
					agent, strings.Join(config.Agents(), ", "))
			}

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

			draft := model.IncomeTransaction{
				AgentName:     agent,
				ClientName:    client,
				PayerName:     payer,
				AmountUSD:     usd,
				AmountILS:     ils,
				USDRate:       rate,
				Platform:      platform,
				ShiftLocation: location,
				Date:          when,
				Hour:          hour,
				Notes:         notes,
			}

			recorded, err := svc.SubmitIncome(cmd.Context(), draft)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s for %s (%s)",
				cli.FormatILS(recorded.AmountILS), recorded.ClientName, recorded.ShiftLocation)))
			return nil
		},
	}

	cmd.Flags().StringVar(&agent, "agent", "", "Agent who worked the shift")
	cmd.Flags().StringVar(&client, "client", "", "Client the income belongs to")
	cmd.Flags().StringVar(&payer, "payer", "", "Paying account name")
	cmd.Flags().Float64Var(&usd, "usd", 0, "Amount in USD")
	cmd.Flags().Float64Var(&ils, "ils", 0, "Amount in ILS")
	cmd.Flags().Float64Var(&rate, "rate", 0, "USD/ILS conversion rate (default from config)")
	cmd.Flags().StringVar(&platform, "platform", "", "Platform the income came from")
	cmd.Flags().StringVar(&location, "location", model.LocationRemote, "Shift location (office or remote)")
	cmd.Flags().StringVar(&date, "date", "", "Income date as DD/MM/YYYY (default today)")
	cmd.Flags().StringVar(&hour, "hour", "", "Shift hour as HH:MM")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	_ = cmd.MarkFlagRequired("client")

	return cmd
}

func listIncomeCmd() *cobra.Command {
	var (
		monthValue string
		agent      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List income transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newLedgerService(cmd.Context())
			if err != nil {
				return err
			}

			records := svc.Ledger().AllIncome()
			if monthValue != "" {
				month, err := parseMonth(monthValue)
				if err != nil {
					return err
				}
				records = incomeForMonth(records, month)
			}

			if len(records) == 0 {
				fmt.Println(cli.StyleSubtle("No income records."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "ROW\tDATE\tAGENT\tCLIENT\tPLATFORM\tLOCATION\tAMOUNT\tSTATUS\n")
			for _, t := range records {
				if agent != "" && !strings.EqualFold(t.AgentName, agent) {
					continue
				}
				amount := fmt.Sprintf("₪%.0f", t.EffectiveILS())
				status := string(t.Status())
				if t.Cancelled {
					amount = cli.CancelledStyle.Render(fmt.Sprintf("₪%.0f", t.OriginalAmount))
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					t.SourceRow, mapper.FormatDate(t.Date), t.AgentName, t.ClientName,
					t.Platform, t.ShiftLocation, amount, status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&monthValue, "month", "", "Limit to a month (YYYY-MM)")
	cmd.Flags().StringVar(&agent, "agent", "", "Limit to one agent")

	return cmd
}
