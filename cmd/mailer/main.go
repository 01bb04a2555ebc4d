// Command mailer drains the email queue and delivers each message over SMTP.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hongminglow/finance-tracker-be/internal/amqp"
	"github.com/hongminglow/finance-tracker-be/internal/config"
	applog "github.com/hongminglow/finance-tracker-be/internal/log"
	"github.com/hongminglow/finance-tracker-be/internal/mail"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := applog.New(applog.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Component: applog.ComponentMail})

	if cfg.AMQPURL == "" || cfg.SMTPHost == "" {
		logger.Error("mailer requires AMQP_URL and SMTP_HOST")
		os.Exit(1)
	}

	smtp, err := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})
	if err != nil {
		logger.Error("init SMTP", applog.FieldError, err)
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("connect to AMQP", applog.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := client.ConsumeEmails(ctx, smtp.Send); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("mailer stopped")
}
