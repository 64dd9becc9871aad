package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlpad/pkg/errors"
	"github.com/matzehuels/umlpad/pkg/plantuml"
)

// encodeCommand creates the encode command.
func (c *CLI) encodeCommand() *cobra.Command {
	var (
		flags   renderFlags
		showURL bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "encode [file|-]",
		Short: "Encode diagram source into a PlantUML URL token",
		Long: `Encode compresses the diagram source and prints the token used in PlantUML
server URLs. Source is read from the file argument or stdin.`,
		Example: `  umlpad encode diagram.puml
  echo "Alice -> Bob" | umlpad encode --url
  umlpad encode --json diagram.puml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			code, err := c.readSource(args)
			if err != nil {
				return err
			}

			r, cleanup, err := c.newRenderer(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := r.Render(ctx, code)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			case showURL:
				_, err = fmt.Fprintln(out, res.URL)
			default:
				_, err = fmt.Fprintln(out, res.Encoded)
			}
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&showURL, "url", false, "print the full render URL")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the render result as JSON")
	return cmd
}

// decodeCommand creates the decode command.
func (c *CLI) decodeCommand() *cobra.Command {
	var zlib bool

	cmd := &cobra.Command{
		Use:   "decode <token|url>",
		Short: "Decode a PlantUML URL token back into diagram source",
		Example: `  umlpad decode SyfFKj2rKt3CoKnELR1Io4ZDoSa70000
  umlpad decode https://www.plantuml.com/plantuml/png/~1SyfFKj2rKt3CoKnELR1Io4ZDoSa70000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := tokenFromArg(args[0])
			code, err := plantuml.Encoder{Zlib: zlib}.Decode(token)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidToken, err, "cannot decode %q", token)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), code)
			return err
		},
	}

	cmd.Flags().BoolVar(&zlib, "zlib", false, "expect a zlib-wrapped deflate stream")
	return cmd
}
