package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/foodtree/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tree over a read-only JSON HTTP API",
		Long: `Serve the tree over a read-only JSON HTTP API.

Endpoints: /healthz, /tree, /trace?node=, /depth?node=, /levels, /rank?k=,
/report?trace=, /diagram.dot and /diagram.svg.`,
		Example: `  foodtree serve --addr :8080
  curl 'localhost:8080/trace?node=Cola'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			ctx := cmd.Context()

			e, err := c.loadEngine(ctx)
			if err != nil {
				return err
			}
			store, keyer, err := c.openCache(ctx, noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			srv, err := server.New(server.Config{
				Engine:   e,
				Logger:   c.Logger,
				Cache:    store,
				Keyer:    keyer,
				CacheTTL: c.Config.Cache.TTL.Duration,
				TopK:     c.Config.Analysis.TopK,
				Title:    c.Config.Render.Title,
			})
			if err != nil {
				return err
			}
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "render diagrams on every request")
	return cmd
}
