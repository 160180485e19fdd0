package main

import (
	"context"
	"log/slog"

	"github.com/BearBump/ParcelDesk/config"
	"github.com/BearBump/ParcelDesk/internal/broker/kafka"
	"github.com/BearBump/ParcelDesk/internal/services/notifier"
	"github.com/pkg/errors"
)

type eventSource interface {
	notifier.Source
	Close() error
}

type notifierFactories struct {
	newSource func(cfg *config.Config) eventSource
	newMailer func(cfg *config.Config) notifier.Mailer
}

func defaultNotifierFactories() notifierFactories {
	return notifierFactories{
		newSource: func(cfg *config.Config) eventSource {
			return kafka.NewConsumer(cfg.KafkaBrokers(), cfg.Kafka.StatusChangedTopicName, cfg.ParcelDesk.KafkaConsumerGroup)
		},
		newMailer: func(cfg *config.Config) notifier.Mailer {
			if cfg.SMTP.Host == "" {
				return notifier.LogMailer{}
			}
			return notifier.NewSMTPMailer(notifier.SMTPConfig{
				Host:     cfg.SMTP.Host,
				Port:     cfg.SMTP.Port,
				Username: cfg.SMTP.Username,
				Password: cfg.SMTP.Password,
				From:     cfg.SMTP.From,
			})
		},
	}
}

// runNotifier consumes status events and serves the ops endpoints until ctx
// is done or either side fails.
func runNotifier(ctx context.Context, cfg *config.Config, f notifierFactories, opts opsHTTPOpts) error {
	src := f.newSource(cfg)
	defer func() { _ = src.Close() }()

	n := notifier.New(f.newMailer(cfg))
	opts.notifier = n
	opts.cfg = cfg

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// A dead ops listener stops the consumer too.
	httpErr := make(chan error, 1)
	go func() {
		err := runOpsHTTPServer(ctx, opts)
		if err != nil {
			slog.Error("ops http server failed", "error", err.Error())
			cancel()
		}
		httpErr <- err
	}()

	slog.Info("kafka consumer started",
		"topic", cfg.Kafka.StatusChangedTopicName,
		"group", cfg.ParcelDesk.KafkaConsumerGroup,
	)
	consumeErr := n.Run(ctx, src)
	cancel()
	if err := <-httpErr; err != nil {
		return errors.Wrap(err, "ops http server")
	}
	return consumeErr
}
