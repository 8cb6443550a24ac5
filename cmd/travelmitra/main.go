package main

import (
	"os"

	"github.com/spf13/cobra"

	"travelmitra-backend/internal/config"
)

func main() {
	if err := newRootCmd(config.LoadClient()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg config.ClientConfig) *cobra.Command {
	root := &cobra.Command{
		Use:          "travelmitra",
		Short:        "Plan a trip through the TravelMitra relay",
		SilenceUsage: true,
	}
	root.AddCommand(newPlanCmd(cfg))
	return root
}
