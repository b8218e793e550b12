package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/preyapanngam2004-art/leave-project/internal/events"
	"github.com/preyapanngam2004-art/leave-project/internal/mailer"
	"github.com/preyapanngam2004-art/leave-project/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer starts the notification consumer and blocks until a shutdown
// signal. It reads the leave notification topic and delivers email through
// the configured SMTP relay.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	mail, err := buildMailer()
	if err != nil {
		return err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.LeaveNotificationsTopic,
		GroupID:        "leave-project-notifications",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLeaveNotifications(ctx, reader, mail, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}

func buildMailer() (mailer.Mailer, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, fmt.Errorf("SMTP_HOST is required")
	}

	port := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
		}
		port = p
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USERNAME")
	}

	return mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     host,
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     from,
	}), nil
}
