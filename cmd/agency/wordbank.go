package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talentops/agency-ledger/internal/cli"
)

func wordbankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordbank",
		Short: "Manage the content word lists",
		Long:  `Word lists feed content planning. Unset lists fall back to built-in defaults.`,
	}

	cmd.AddCommand(listWordsCmd())
	cmd.AddCommand(setWordsCmd())

	return cmd
}

func listWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every word list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := openRegistry()
			if err != nil {
				return err
			}
			defer registry.Close()

			bank, err := registry.WordBank(cmd.Context())
			if err != nil {
				return err
			}

			names := make([]string, 0, len(bank))
			for name := range bank {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				fmt.Printf("%s: %s\n", cli.FormatTitle(name), strings.Join(bank[name], ", "))
			}
			return nil
		},
	}
}

func setWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <word>...",
		Short: "Replace a word list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := openRegistry()
			if err != nil {
				return err
			}
			defer registry.Close()

			if err := registry.SaveWordList(cmd.Context(), args[0], args[1:]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved %d words to %q", len(args)-1, args[0])))
			return nil
		},
	}
}
