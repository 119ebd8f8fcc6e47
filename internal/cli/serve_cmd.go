package cli

import (
	"github.com/alexanderramin/buildcost/internal/app"
	"github.com/alexanderramin/buildcost/internal/config"
	"github.com/alexanderramin/buildcost/internal/httpapi"
	"github.com/spf13/cobra"
)

func newServeCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the estimation API over HTTP until interrupted",
		Args:  cobra.NoArgs,
		RunE: s.withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			srv := httpapi.NewServer(httpapi.Config{
				Addr:      a.Config.Server.Addr,
				Estimates: a.Estimates,
				Saved:     a.Saved,
				Logger:    a.Logger,
			})
			return srv.Serve(cmd.Context())
		}),
	}

	cmd.Flags().String("addr", config.DefaultAddr, "Listen address")
	return cmd
}
