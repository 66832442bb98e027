package commands

import (
	"github.com/spf13/cobra"

	"carbon-scribe/project-portal/methodology-engine/internal/matching/export"
)

func newMatchCommand(root *rootOptions) *cobra.Command {
	var (
		mode string
		out  outputOptions
	)

	cmd := &cobra.Command{
		Use:   "match [project.json]",
		Short: "Rank catalog methodologies for a project",
		Long: `Scores every methodology in the catalog against a project descriptor and
prints the ranked matches. Reads the descriptor from stdin when no file is given.

Example:
  matchctl match project.json --mode precise
  cat project.json | matchctl match --format csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := readProject(cmd, args)
			if err != nil {
				return err
			}

			service, err := root.service()
			if err != nil {
				return err
			}
			defer service.Close()

			matches, err := service.Match(cmd.Context(), project, mode)
			if err != nil {
				return err
			}
			return out.write(cmd, matches, "methodology-matches", export.MatchTable(matches))
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Assessment mode: discovery or precise (default discovery)")
	out.register(cmd)
	return cmd
}

func newFeasibilityCommand(root *rootOptions) *cobra.Command {
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "feasibility [project.json]",
		Short: "Assess feasibility of a project under each standard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := readProject(cmd, args)
			if err != nil {
				return err
			}

			service, err := root.service()
			if err != nil {
				return err
			}
			defer service.Close()

			results, err := service.Assess(cmd.Context(), project)
			if err != nil {
				return err
			}
			return out.write(cmd, results, "feasibility", export.FeasibilityTable(results))
		},
	}

	out.register(cmd)
	return cmd
}
