package webhelp

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCommand returns a hidden "help-site" command that builds the help site of root.
// The command is hidden so it does not document itself.
func NewCommand(root *cobra.Command, opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "help-site",
		Short:  "Generate the HTML help site",
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := Build(cmd.Context(), root, opts)
			if err != nil {
				return err
			}
			if res.Skipped {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Nothing has changed, skipping help generation")
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Generated %d pages in %s\n", res.Pages, res.OutputDir)
			return err
		},
	}
	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", opts.OutputDir, "output directory for the generated site")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", opts.Force, "rebuild even when the version is unchanged")
	cmd.Flags().BoolVar(&opts.VerifyLinks, "verify-links", opts.VerifyLinks, "fail when a page links to a missing page")
	return cmd
}
