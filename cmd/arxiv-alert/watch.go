// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-alert/internal/alert"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the alert pass repeatedly on a cron schedule",
	Long: `Watch keeps the process alive and executes the alert pass on a cron
schedule (default daily at 08:00). A failing pass is logged and the
schedule continues; only SIGINT/SIGTERM stops the loop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule, _ := cmd.Flags().GetString("schedule")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		runner := alert.New(cfg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c := cron.New()
		_, err = c.AddFunc(schedule, func() {
			if _, runErr := runner.Run(ctx, os.Stdout); runErr != nil {
				fmt.Fprintf(os.Stderr, "warning: scheduled run failed: %v\n", runErr)
			}
		})
		if err != nil {
			return fmt.Errorf("invalid schedule %q: %w", schedule, err)
		}

		fmt.Printf("watching arXiv on schedule %q; press Ctrl-C to stop\n", schedule)
		c.Start()
		<-ctx.Done()

		// Let an in-flight pass finish before exiting.
		<-c.Stop().Done()
		return nil
	},
}

func init() {
	watchCmd.Flags().String("schedule", "0 8 * * *", "cron schedule for alert passes")
	rootCmd.AddCommand(watchCmd)
}
