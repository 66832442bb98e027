package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"carbon-scribe/project-portal/methodology-engine/internal/matching"
	"carbon-scribe/project-portal/methodology-engine/internal/methodology"
)

// Version of matchctl
const Version = "0.1.0"

type rootOptions struct {
	catalogPath string
	verbose     bool
}

// NewRootCommand builds the matchctl command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "matchctl",
		Short: "matchctl - carbon methodology matching from the command line",
		Long: `matchctl scores a project descriptor against the methodology catalog
of the supported carbon standards and reports eligibility and feasibility.

Project descriptors are JSON documents in the same shape the portal API accepts.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "Path to a JSON or YAML methodology catalog (default: built-in catalog)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log engine decisions to stderr")

	root.AddCommand(
		newMatchCommand(opts),
		newFeasibilityCommand(opts),
		newCatalogCommand(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "matchctl v%s\n", Version)
			},
		},
	)

	return root
}

// service wires a non-caching matching service for a single invocation
func (o *rootOptions) service() (*matching.Service, error) {
	logger := zap.NewNop()
	if o.verbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		logger = dev
	}

	catalog, err := methodology.LoadCatalog(o.catalogPath)
	if err != nil {
		return nil, err
	}

	matcher := methodology.NewMatcher(catalog, methodology.WithLogger(logger))
	return matching.NewService(matcher, logger, matching.WithCacheTTL(0)), nil
}
