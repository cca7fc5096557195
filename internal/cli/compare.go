package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/coalition/pkg/io"
)

// compareCommand creates the compare command for diffing two profile files.
func (c *CLI) compareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <original> <manipulated>",
		Short: "Count the ballots that differ between two profile files",
		Long: `Compare two profile files written by manipulate, one ballot per line.

Ballots are matched by line number; a line present in only one file counts
as changed.`,
		Example: `  coalition compare original.txt manipulated.txt`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmp, err := pkgio.CompareFiles(args[0], args[1])
			if err != nil {
				return err
			}
			printKeyValue("Original", fmt.Sprintf("%d ballots", cmp.Original))
			printKeyValue("Manipulated", fmt.Sprintf("%d ballots", cmp.Manipulated))
			printKeyValue("Changed", StyleNumber.Render(fmt.Sprint(cmp.Changed)))
			return nil
		},
	}
}
