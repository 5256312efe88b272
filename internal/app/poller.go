// internal/app/poller.go
package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"homework_status_bot/internal/domain/failure"
	"homework_status_bot/internal/domain/homework"
)

const (
	GreetingMessage  = "Привет! Я готов тебе помочь!"
	NoChangesMessage = "Статус проверки работы не изменился."
)

// StatusFetcher returns the decoded review API payload for statuses changed since fromDate.
type StatusFetcher interface {
	FetchStatuses(ctx context.Context, fromDate int64) (any, error)
}

// Poller owns the polling state: the from_date watermark and the last reported status.
// It is not safe for concurrent use; ticks are expected to run one after another.
type Poller struct {
	fetcher    StatusFetcher
	notifier   *Notifier
	logger     *logrus.Entry
	watermark  int64
	lastStatus homework.Status
}

// NewPoller creates a poller whose first request covers statuses changed since now.
func NewPoller(fetcher StatusFetcher, notifier *Notifier, logger *logrus.Entry, now time.Time) *Poller {
	return &Poller{
		fetcher:   fetcher,
		notifier:  notifier,
		logger:    logger,
		watermark: now.Unix(),
	}
}

// Greet sends the one-time startup message.
func (p *Poller) Greet() Outcome {
	return p.notifier.Notify(GreetingMessage)
}

// Watermark returns the from_date used by the next tick.
func (p *Poller) Watermark() int64 { return p.watermark }

// LastStatus returns the status of the most recently reported homework.
func (p *Poller) LastStatus() homework.Status { return p.lastStatus }

// Tick runs one fetch-validate-notify cycle. On error neither the watermark
// nor the last status is changed and nothing is sent.
func (p *Poller) Tick(ctx context.Context) error {
	return p.tick(ctx, p.tickLogger())
}

func (p *Poller) tickLogger() *logrus.Entry {
	return p.logger.WithFields(logrus.Fields{
		"tick_id":   uuid.NewString(),
		"from_date": p.watermark,
	})
}

func (p *Poller) tick(ctx context.Context, logCtx *logrus.Entry) error {
	payload, err := p.fetcher.FetchStatuses(ctx, p.watermark)
	if err != nil {
		return err
	}
	records, err := homework.CheckResponse(payload)
	if err != nil {
		return err
	}
	logCtx.WithField("records", len(records)).Debug("API response is valid")

	message := NoChangesMessage
	var newStatus homework.Status
	if len(records) > 0 {
		// Only the most recent record is inspected.
		status, err := homework.StatusOf(records[0])
		if err != nil {
			return err
		}
		if status != p.lastStatus {
			message, err = homework.ParseStatus(records[0])
			if err != nil {
				return err
			}
			newStatus = status
		}
	}

	if newStatus != "" {
		logCtx.WithField("status", newStatus).Info("Homework status changed")
		p.lastStatus = newStatus
	} else {
		logCtx.Debug("No homework status changes")
	}
	p.notifier.Notify(message)

	p.advance(logCtx, payload)
	return nil
}

func (p *Poller) advance(logCtx *logrus.Entry, payload any) {
	ts, present, ok := homework.CurrentDate(payload)
	switch {
	case ok:
		p.watermark = ts
	case present:
		logCtx.Warn("current_date is not an integer, keeping previous watermark")
	}
}

// Poll runs a tick and logs its failure, if any. It is the scheduler job.
func (p *Poller) Poll(ctx context.Context) {
	logCtx := p.tickLogger()
	if err := p.tick(ctx, logCtx); err != nil {
		reportFailure(logCtx, err)
	}
}

func reportFailure(logCtx *logrus.Entry, err error) {
	fields := logrus.Fields{
		"kind":     failure.KindOf(err),
		"severity": "critical",
	}
	var fe *failure.Error
	if errors.As(err, &fe) && fe.StatusCode != 0 {
		fields["status_code"] = fe.StatusCode
	}
	logCtx.WithFields(fields).WithError(err).Error("Program failure, will retry on next tick")
}
