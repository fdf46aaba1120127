package cmd

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/mockmentor/internal/api"
	"github.com/abhisek/mockmentor/internal/coach"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and Prometheus metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics := api.NewMetrics()
		a, err := setup(cmd, func(d *coach.Deps) { d.Recorder = metrics })
		if err != nil {
			return err
		}
		defer a.Close()

		addr := a.cfg.Server.Addr
		if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
			addr = flagAddr
		}

		gin.SetMode(gin.ReleaseMode)
		router := api.NewRouter(api.NewHandler(a.svc, a.user, a.logger), metrics, a.logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return api.Serve(ctx, addr, router, a.cfg.Server.ShutdownTimeout, a.logger)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides MOCKMENTOR_ADDR)")
}
