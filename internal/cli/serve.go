package cli

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umlpad/internal/server"
	"github.com/matzehuels/umlpad/pkg/draft"
	"github.com/matzehuels/umlpad/pkg/viewer"
)

// serveCommand creates the serve command, which runs the browser editor.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags renderFlags
		addr  string
		open  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the browser editor and render API",
		Long: `Serve starts an HTTP server hosting the umlpad editor page and its JSON API.
The server stops gracefully on interrupt.`,
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
			logger.Debug("draft store ready", "backend", draft.BackendName(store))

			srv, err := server.New(server.Options{
				Renderer: r,
				Drafts:   store,
				Logger:   logger,
			})
			if err != nil {
				return err
			}

			sc := c.Config.Server
			if addr != "" {
				sc.Addr = addr
			}
			ln, err := net.Listen("tcp", sc.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", sc.Addr, err)
			}

			pageURL := "http://" + ln.Addr().String() + "/"
			printSuccess("Editor running")
			printURL(pageURL)
			printKeyValue("Format", r.Format())
			printKeyValue("Drafts", draft.BackendName(store))
			if open {
				if err := viewer.OpenURL(pageURL); err != nil {
					printWarning("Could not open browser: %v", err)
				}
			}

			return srv.Serve(ctx, ln, sc)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().BoolVar(&open, "open", false, "open the editor in the browser")
	return cmd
}
