package cli

import (
	"github.com/spf13/cobra"

	"github.com/driftboard/driftboard/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the driftboard HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			st, err := c.newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			ca := c.newCache(ctx, cfg, noCache)
			defer ca.Close()

			srv := server.New(c.Logger, cfg.Engine(), st, ca)
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable render artifact caching")

	return cmd
}
