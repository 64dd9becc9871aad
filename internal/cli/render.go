package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlpad/pkg/errors"
	"github.com/matzehuels/umlpad/pkg/viewer"
)

// renderCommand creates the render command, which downloads the rendered
// diagram from the rendering service.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  renderFlags
		output string
		open   bool
	)

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a diagram through the PlantUML server",
		Long: `Render encodes the diagram and downloads the image from the rendering service.

The image is written to --output, or next to the input file with the format's
extension. Use "-o -" to write to stdout, or --open to show the diagram in the
browser without downloading it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			code, err := c.readSource(args)
			if err != nil {
				return err
			}

			r, cleanup, err := c.newRenderer(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			if open {
				res, err := r.Render(ctx, code)
				if err != nil {
					return err
				}
				v := viewer.New(viewer.BrowserFactory(nil))
				defer v.Close()
				if err := v.Show(ctx, res.URL); err != nil {
					return err
				}
				printSuccess("Opened diagram")
				printURL(res.URL)
				return nil
			}

			prog := newProgress(logger)
			spinner := newSpinnerWithContext(ctx, "Rendering diagram...")
			spinner.Start()
			img, err := r.Fetch(ctx, code)
			spinner.Stop()
			if err != nil {
				if errors.Is(err, errors.ErrCodeRenderFailed) {
					printError("The server could not render the diagram")
				}
				return err
			}
			prog.done(fmt.Sprintf("Fetched %d bytes", len(img.Data)))

			path := outputPath(output, args, r.Format())
			if err := writeOutput(cmd.OutOrStdout(), path, img.Data); err != nil {
				return err
			}
			if path != "-" {
				printSuccess("Rendered diagram")
				printFile(path)
				printURL(img.Result.URL)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (\"-\" for stdout)")
	cmd.Flags().BoolVar(&open, "open", false, "open the diagram in the browser instead of downloading it")
	return cmd
}

// outputPath picks where a rendered image goes: the explicit output, the
// input file with its extension replaced, or diagram.<format>.
func outputPath(output string, args []string, format string) string {
	if output != "" {
		return output
	}
	if len(args) == 0 || args[0] == "-" {
		return "diagram." + format
	}
	input := args[0]
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

// writeOutput writes data to path, or to stdout for "-".
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
