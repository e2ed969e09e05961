/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/inkwell-blog/apiserver/config"
	"github.com/inkwell-blog/apiserver/internal/db"
	"github.com/inkwell-blog/apiserver/internal/mailer"
	"github.com/inkwell-blog/apiserver/internal/mq"
	"github.com/inkwell-blog/apiserver/internal/store"
)

// workerCmd represents the worker command.
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the comment notification worker",
	Long: `Consumes comment events from the message broker and sends
notification mail: new pending comments to the admin, moderation
decisions to the comment author.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		queue, err := mq.NewFromConfig(cmd.Context(), cfg.MQ)
		if err != nil {
			return err
		}
		if queue == nil {
			return errors.New("MQ_BACKEND is required for the worker")
		}
		defer queue.Close()

		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		worker := mailer.NewWorker(
			mailer.New(cfg.SMTP),
			store.NewUserRepository(dbConn),
			cfg.Admin.Email,
		)
		return worker.Run(cmd.Context(), queue, cfg.MQ.Channel)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
