// Package summary emails every user their income and expense totals for the
// current week.
package summary

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	applog "github.com/hongminglow/finance-tracker-be/internal/log"
	"github.com/hongminglow/finance-tracker-be/internal/mail"
	"github.com/hongminglow/finance-tracker-be/internal/models"
)

const Subject = "Your Weekly Financial Summary"

// Store is the data the job reads.
type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetProfile(ctx context.Context, userID int64) (models.UserProfile, error)
	SumByType(ctx context.Context, userID int64, from, to time.Time) (models.WeeklyTotals, error)
}

// Report counts the outcome of one run.
type Report struct {
	Processed int64
	Sent      int64
	Skipped   int64
	Failed    int64
}

// Job computes and sends weekly summaries.
type Job struct {
	store       Store
	sender      mail.Sender
	loc         *time.Location
	concurrency int
	logger      *applog.Logger
	now         func() time.Time
}

func NewJob(store Store, sender mail.Sender, loc *time.Location, concurrency int, logger *applog.Logger) *Job {
	if loc == nil {
		loc = time.UTC
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Job{
		store:       store,
		sender:      sender,
		loc:         loc,
		concurrency: concurrency,
		logger:      logger.WithComponent(applog.ComponentSummary),
		now:         time.Now,
	}
}

// WeekBounds returns Monday 00:00 of the week containing now and the Monday
// after it, both in loc.
func WeekBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	offset := (int(local.Weekday()) + 6) % 7
	start := time.Date(local.Year(), local.Month(), local.Day()-offset, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 7)
}

// Run sends one summary per user with an email address. A failure for one
// user is logged and counted without stopping the others; only a failure to
// list users is returned.
func (j *Job) Run(ctx context.Context) (Report, error) {
	var report Report

	users, err := j.store.ListUsers(ctx)
	if err != nil {
		return report, fmt.Errorf("list users: %w", err)
	}

	from, to := WeekBounds(j.now(), j.loc)
	j.logger.InfoContext(ctx, "weekly summary started", "users", len(users), "from", from, "to", to)

	var processed, sent, skipped, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.concurrency)

	for _, user := range users {
		g.Go(func() error {
			processed.Add(1)
			if strings.TrimSpace(user.Email) == "" {
				skipped.Add(1)
				return nil
			}
			if err := j.sendOne(gctx, user, from, to); err != nil {
				failed.Add(1)
				j.logger.ErrorContext(gctx, "weekly summary failed",
					applog.FieldUserID, user.ID, applog.FieldError, err)
				return nil
			}
			sent.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	report = Report{
		Processed: processed.Load(),
		Sent:      sent.Load(),
		Skipped:   skipped.Load(),
		Failed:    failed.Load(),
	}
	j.logger.InfoContext(ctx, "weekly summary finished",
		"processed", report.Processed, "sent", report.Sent,
		"skipped", report.Skipped, "failed", report.Failed)
	return report, ctx.Err()
}

func (j *Job) sendOne(ctx context.Context, user models.User, from, to time.Time) error {
	profile, err := j.store.GetProfile(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	totals, err := j.store.SumByType(ctx, user.ID, from, to)
	if err != nil {
		return fmt.Errorf("sum transactions: %w", err)
	}
	msg := mail.Message{
		To:      user.Email,
		Subject: Subject,
		Body:    Body(user.Username, profile.Currency, totals),
	}
	if err := j.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

// Body renders the summary text.
func Body(username, currency string, totals models.WeeklyTotals) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", username)
	b.WriteString("Here is your financial summary for this week:\n\n")
	fmt.Fprintf(&b, "Total Income: %s %s\n", totals.Income.String(), currency)
	fmt.Fprintf(&b, "Total Expenses: %s %s\n", totals.Expense.String(), currency)
	return b.String()
}
