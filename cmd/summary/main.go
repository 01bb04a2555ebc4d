// Command summary emails each user their weekly income and expense totals.
// It runs once by default, or on a fixed interval with -every.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/finance-tracker-be/internal/amqp"
	"github.com/hongminglow/finance-tracker-be/internal/backend"
	"github.com/hongminglow/finance-tracker-be/internal/config"
	applog "github.com/hongminglow/finance-tracker-be/internal/log"
	"github.com/hongminglow/finance-tracker-be/internal/mail"
	"github.com/hongminglow/finance-tracker-be/internal/summary"
)

func main() {
	every := flag.Duration("every", 0, "repeat interval, e.g. 168h; 0 runs once")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := applog.New(applog.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Component: applog.ComponentSummary})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := backend.Open(ctx, cfg)
	if err != nil {
		logger.Error("init storage", applog.FieldError, err)
		os.Exit(1)
	}
	defer store.Close()

	sender, closeSender, err := newSender(cfg, logger)
	if err != nil {
		logger.Error("init mail transport", applog.FieldError, err)
		os.Exit(1)
	}
	defer closeSender()

	job := summary.NewJob(store, sender, cfg.Location, cfg.SummaryConcurrency, logger)

	if *every <= 0 {
		if _, err := job.Run(ctx); err != nil {
			logger.Error("weekly summary aborted", applog.FieldError, err)
			os.Exit(1)
		}
		return
	}

	ticker := time.NewTicker(*every)
	defer ticker.Stop()
	for {
		if _, err := job.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("weekly summary aborted", applog.FieldError, err)
		}
		select {
		case <-ctx.Done():
			logger.Info("summary scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}

// newSender picks SMTP when configured, then the queue, then the log.
func newSender(cfg config.Config, logger *applog.Logger) (mail.Sender, func(), error) {
	switch {
	case cfg.SMTPHost != "":
		sender, err := mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
		return sender, func() {}, err
	case cfg.AMQPURL != "":
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { client.Close() }, nil
	default:
		logger.Warn("no SMTP_HOST or AMQP_URL configured; summaries will only be logged")
		return mail.NewLogSender(logger), func() {}, nil
	}
}
