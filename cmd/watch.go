package cmd

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	config "taskboard.com/taskboard/internal/configs"
	"taskboard.com/taskboard/internal/events"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print change events published by running servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if !cfg.RedisEnabled() {
			return errors.New("watch needs REDIS_HOST to be set")
		}

		client := config.NewRedisClient(cfg.RedisAddr)
		defer client.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Printf("watching %s", cfg.RedisEventsChannel)
		err := events.NewRedisPublisher(client, cfg.RedisEventsChannel).Subscribe(ctx, func(e events.Event) {
			log.Printf("%s %s %s at %s", e.Entity, e.ID, e.Action, e.At.Format("15:04:05"))
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
