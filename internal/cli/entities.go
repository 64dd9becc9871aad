package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlpad/pkg/plantuml"
)

// entitiesCommand creates the entities command.
func (c *CLI) entitiesCommand() *cobra.Command {
	var (
		prefix string
		plain  bool
	)

	cmd := &cobra.Command{
		Use:   "entities [file|-]",
		Short: "List the participants, actors and classes declared in a diagram",
		Long: `Entities lists the names declared with participant, actor, class, interface,
abstract and enum. With --prefix it prints the completions an editor would
offer for that prefix.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := c.readSource(args)
			if err != nil {
				return err
			}

			var names []string
			if prefix != "" {
				names = plantuml.Complete(code, prefix)
			} else {
				names = plantuml.ExtractEntities(code)
			}

			out := cmd.OutOrStdout()
			if plain {
				for _, n := range names {
					if _, err := fmt.Fprintln(out, n); err != nil {
						return err
					}
				}
				return nil
			}

			if len(names) == 0 {
				printInfo("No entities found")
				return nil
			}
			rows := make([][]string, len(names))
			for i, n := range names {
				rows[i] = []string{fmt.Sprintf("%d", i+1), n}
			}
			_, err = fmt.Fprintln(out, renderTable([]string{"#", "Entity"}, rows))
			return err
		},
	}

	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "only show completions for this prefix")
	cmd.Flags().BoolVar(&plain, "plain", false, "print one name per line")
	return cmd
}
