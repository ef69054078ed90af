package main

import (
	"github.com/muhammadheryan/mogadishu-rentals/thirdparty/rabbitmq"
	"github.com/muhammadheryan/mogadishu-rentals/utils/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func consumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consume",
		Short: "Refresh the cached feed on listing events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Close()

			consumer, err := rabbitmq.NewConsumer(cfg.GetRabbitMQDSN(), cfg.Internal.APIURL, cfg.Internal.APIKey, cfg.Internal.RetryDelay)
			if err != nil {
				logger.Error("err connect rabbitmq", zap.Error(err))
				return err
			}
			defer func() {
				_ = consumer.Close()
			}()

			ctx := cmd.Context()
			if err := consumer.Start(ctx); err != nil {
				logger.Error("err start consumer", zap.Error(err))
				return err
			}

			logger.Info("Consuming listing events")
			<-ctx.Done()
			return nil
		},
	}
}
