// Package sender содержит сборку воркера отправки писем-напоминаний.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/fieldray/fieldops/internal/config"
	"github.com/fieldray/fieldops/internal/lib/rabbitmq"
	"github.com/fieldray/fieldops/internal/lib/smtp"
	senderservice "github.com/fieldray/fieldops/internal/services/sender"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitConnection, cfg.ConnectRetries, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetReminderQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		conn.Close()
		return nil, err
	}

	mailer := smtp.NewMailer(cfg.SMTP, logger)
	senderService := senderservice.NewSenderService(mailer, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumeReminders(ctx, a.ch, "reminders.due_tomorrow", a.senderService.HandleReminder)
	if err != nil {
		a.logger.Error("failed to start reminders.due_tomorrow consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("Sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
