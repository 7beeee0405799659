package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"traduco.dev/pkg/traduco/internal/web"
)

var serveAddrFlag string

// serveCmd represents the serve command.
var serveCmd = newServeCmd()

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve evaluations over HTTP",
		Long: `Run the HTTP server: POST /api/evaluate evaluates a submission,
GET /api/leaderboard returns point totals, /healthz and /metrics expose
liveness and Prometheus metrics.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr := viper.GetString(serverAddrKey)
			server := web.NewServer(workflow, aggregator)

			return server.ListenAndServe(cmd.Context(), addr)
		},
	}

	configureServeFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func configureServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&serveAddrFlag, addrFlagName, "a", viper.GetString(serverAddrKey), "listen address")
	bindFlagToConfig(cmd.Flags().Lookup(addrFlagName), serverAddrKey)
}
