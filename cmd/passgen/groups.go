package passgen

import (
	"fmt"
	"text/tabwriter"

	"github.com/edgeflare/passgen/pkg/password"
	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:     "groups",
	Aliases: []string{"g"},
	Short:   "List the predefined symbol groups",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSIZE\tCHARACTERS")
		for _, g := range password.Groups() {
			cs, err := password.BuildCharset([]string{g.Name}, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%d\t%q\n", g.Name, cs.Size(), g.Chars)
		}
		return w.Flush()
	},
}
