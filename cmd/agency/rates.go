package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/talentops/agency-ledger/internal/cli"
)

func ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Manage per-client commission rates",
		Long:  `Commission rates are stored locally per client and month. A client with no rate set for a month defaults to 0%.`,
	}

	cmd.AddCommand(getRateCmd())
	cmd.AddCommand(setRateCmd())
	cmd.AddCommand(listRatesCmd())

	return cmd
}

func getRateCmd() *cobra.Command {
	var monthValue string

	cmd := &cobra.Command{
		Use:   "get <client>",
		Short: "Show a client's commission rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(monthValue)
			if err != nil {
				return err
			}

			registry, err := openRegistry()
			if err != nil {
				return err
			}
			defer registry.Close()

			pct, err := registry.Rate(cmd.Context(), args[0], month)
			if err != nil {
				return err
			}

			fmt.Printf("%s %s: %.1f%%\n", args[0], month.Format("2006-01"), pct)
			return nil
		},
	}

	cmd.Flags().StringVar(&monthValue, "month", "", "Month (YYYY-MM, default current)")

	return cmd
}

func setRateCmd() *cobra.Command {
	var monthValue string

	cmd := &cobra.Command{
		Use:   "set <client> <percent>",
		Short: "Set a client's commission rate for a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid percentage %q", args[1])
			}

			month, err := parseMonth(monthValue)
			if err != nil {
				return err
			}

			registry, err := openRegistry()
			if err != nil {
				return err
			}
			defer registry.Close()

			if err := registry.SetRate(cmd.Context(), args[0], month, pct); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Set %s to %.1f%% for %s",
				args[0], pct, month.Format("2006-01"))))
			return nil
		},
	}

	cmd.Flags().StringVar(&monthValue, "month", "", "Month (YYYY-MM, default current)")

	return cmd
}

func listRatesCmd() *cobra.Command {
	var monthValue string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every commission rate set for a month",
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

			all, err := registry.RatesForMonth(cmd.Context(), month)
			if err != nil {
				return err
			}

			if len(all) == 0 {
				fmt.Println(cli.StyleSubtle(fmt.Sprintf("No rates set for %s.", month.Format("2006-01"))))
				return nil
			}

			clients := make([]string, 0, len(all))
			for client := range all {
				clients = append(clients, client)
			}
			sort.Strings(clients)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "CLIENT\tRATE\n")
			for _, client := range clients {
				fmt.Fprintf(w, "%s\t%.1f%%\n", client, all[client])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&monthValue, "month", "", "Month (YYYY-MM, default current)")

	return cmd
}
