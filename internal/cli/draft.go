package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlpad/pkg/draft"
	"github.com/matzehuels/umlpad/pkg/plantuml"
)

// draftCommand creates the draft management command.
func (c *CLI) draftCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage stored drafts",
	}

	cmd.AddCommand(c.draftShowCommand())
	cmd.AddCommand(c.draftSaveCommand())
	cmd.AddCommand(c.draftNewCommand())
	cmd.AddCommand(c.draftClearCommand())
	cmd.AddCommand(c.draftListCommand())

	return cmd
}

// withDraftStore opens the configured store for the duration of fn.
func (c *CLI) withDraftStore(ctx context.Context, fn func(draft.Store) error) error {
	store, err := c.openDraftStore(ctx)
	if err != nil {
		return fmt.Errorf("open draft store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func (c *CLI) draftID(id string) string {
	if id != "" {
		return id
	}
	return c.Config.Drafts.ID
}

func (c *CLI) draftShowCommand() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a draft (the example document if none is saved)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDraftStore(cmd.Context(), func(s draft.Store) error {
				code, err := draft.LoadOrDefault(cmd.Context(), s, c.draftID(id), plantuml.DefaultCode)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), code)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "draft id")
	return cmd
}

func (c *CLI) draftSaveCommand() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "save [file|-]",
		Short: "Save diagram source as a draft",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := c.readSource(args)
			if err != nil {
				return err
			}
			d := draft.New(c.draftID(id), code)
			return c.withDraftStore(cmd.Context(), func(s draft.Store) error {
				if err := s.Save(cmd.Context(), d); err != nil {
					return err
				}
				printSuccess("Saved draft %s", d.ID)
				printDetail("Backend: %s", draft.BackendName(s))
				printNextStep("Edit it with", "umlpad edit --id "+d.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "draft id")
	return cmd
}

func (c *CLI) draftNewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new [file|-]",
		Short: "Save diagram source as a draft with a new id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := c.readSource(args)
			if err != nil {
				return err
			}
			d := draft.New(draft.NewID(), code)
			return c.withDraftStore(cmd.Context(), func(s draft.Store) error {
				if err := s.Save(cmd.Context(), d); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), d.ID)
				return err
			})
		},
	}
}

func (c *CLI) draftClearCommand() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete a draft so the editors start from the example document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDraftStore(cmd.Context(), func(s draft.Store) error {
				if err := s.Delete(cmd.Context(), c.draftID(id)); err != nil {
					return err
				}
				printSuccess("Cleared draft %s", c.draftID(id))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "draft id")
	return cmd
}

func (c *CLI) draftListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List drafts in the file store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withDraftStore(ctx, func(s draft.Store) error {
				fs, ok := s.(*draft.FileStore)
				if !ok {
					return fmt.Errorf("listing is only supported by the file backend (configured: %s)", draft.BackendName(s))
				}
				ids, err := fs.List(ctx)
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					printInfo("No drafts in %s", fs.Path())
					return nil
				}

				rows := make([][]string, 0, len(ids))
				for _, id := range ids {
					d, err := fs.Load(ctx, id)
					if err != nil || d == nil {
						loggerFromContext(ctx).Debug("skip unreadable draft", "id", id, "err", err)
						continue
					}
					rows = append(rows, []string{
						d.ID,
						d.SavedAt.Local().Format(time.DateTime),
						fmt.Sprintf("%d", len(d.Code)),
					})
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Saved", "Bytes"}, rows))
				return err
			})
		},
	}
}
