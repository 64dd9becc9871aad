package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlpad/internal/editor"
	"github.com/matzehuels/umlpad/pkg/viewer"
)

// editCommand creates the edit command, which opens the terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	var (
		flags renderFlags
		id    string
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a diagram in the terminal",
		Long: `Edit opens the terminal editor on a stored draft. Changes are saved
automatically a moment after you stop typing, and again on exit.

  ctrl+r       render and open the diagram in the browser
  ctrl+s       save now
  ctrl+o/t/k   insert a loop / alt / class snippet
  tab          complete an entity name
  ctrl+x       clear the draft and restore the example document
  esc          save and quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			r, cleanup, err := c.newRenderer(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			store, err := c.openDraftStore(ctx)
			if err != nil {
				return fmt.Errorf("open draft store: %w", err)
			}
			defer store.Close()

			if id == "" {
				id = c.Config.Drafts.ID
			}
			v := viewer.New(viewer.BrowserFactory(nil))
			defer v.Close()

			m, err := editor.New(ctx, editor.Options{
				Store:         store,
				DraftID:       id,
				Renderer:      r,
				Viewer:        v,
				AutosaveDelay: c.Config.Drafts.AutosaveDelay.Duration,
				Logger:        logger,
			})
			if err != nil {
				return err
			}

			final, err := editor.Run(ctx, m)
			if err != nil {
				return err
			}
			printSuccess("Saved draft %s", id)
			if url := final.LastURL(); url != "" {
				printURL(url)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "draft to edit (default from config, \"plantuml-code\")")
	return cmd
}
