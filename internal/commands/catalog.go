package commands

import (
	"github.com/spf13/cobra"
)

func newCatalogCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the methodology catalog",
	}

	var standard string
	list := &cobra.Command{
		Use:   "list",
		Short: "List methodologies, optionally for one standard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := root.service()
			if err != nil {
				return err
			}
			defer service.Close()

			methodologies, err := service.ListMethodologies(cmd.Context(), standard)
			if err != nil {
				return err
			}
			return printJSON(cmd, methodologies)
		},
	}
	list.Flags().StringVarP(&standard, "standard", "s", "", "Standard name or key, e.g. \"Gold Standard\" or goldstandard")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one methodology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := root.service()
			if err != nil {
				return err
			}
			defer service.Close()

			m, err := service.GetMethodology(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, m)
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func printJSON(cmd *cobra.Command, value interface{}) error {
	return encodeJSON(cmd.OutOrStdout(), value)
}
