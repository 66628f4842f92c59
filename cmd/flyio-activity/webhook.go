package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/obeli-sk/components-flyio/pkg/webhook"
)

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Webhook endpoints",
}

var webhookServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the secret update webhook",
	Long: `Serve an HTTP endpoint that stages app secrets on POST /. The
process runs until interrupted; /healthz and /metrics are exposed on the
same listener.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		client, err := newClient()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return webhook.NewServer(client).ListenAndServe(ctx, addr)
	},
}

func init() {
	webhookCmd.AddCommand(webhookServeCmd)
	webhookServeCmd.Flags().String("addr", "127.0.0.1:8787", "Listen address")
}
