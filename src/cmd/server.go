package cmd

import (
	"github.com/warp-contracts/batch-registry/src/gateway"
	"github.com/warp-contracts/batch-registry/src/utils/logger"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(serverCmd)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the batch registry REST API",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		log := logger.NewSublogger("server-cmd")

		controller, err := gateway.NewController(conf)
		if err != nil {
			return
		}

		err = controller.Start()
		if err != nil {
			log.WithError(err).Error("Failed to start")
			controller.StopWait()
			return
		}

		select {
		case <-ctx.Done():
			log.Info("Signal received, stopping")
		case <-controller.CtxRunning.Done():
			log.Warn("Controller stopped on its own")
		}

		controller.StopWait()
		return
	},
}
