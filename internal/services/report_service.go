// Package services orchestrates report generation: data loading, report
// computation, persistence of the resulting payloads and job dispatch.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"finreport/internal/amqp"
	"finreport/internal/core"
	"finreport/internal/events"
	"finreport/internal/ledger"
	"finreport/internal/reports"
	"finreport/internal/sink"
)

// ReportService builds report payloads from the configured transaction
// source. Every generated payload is also persisted through the sink; a
// failed write is logged but never fails the report.
type ReportService struct {
	reader   ledger.TransactionReader
	sink     *sink.Writer
	jobs     *amqp.Client
	calendar reports.HolidayCalendar
}

// NewReportService creates a report service. The sink, jobs client and
// calendar are optional; nil disables the corresponding behavior.
func NewReportService(reader ledger.TransactionReader, w *sink.Writer, jobs *amqp.Client, cal reports.HolidayCalendar) *ReportService {
	return &ReportService{
		reader:   reader,
		sink:     w,
		jobs:     jobs,
		calendar: cal,
	}
}

// Transactions returns the full transaction snapshot from the backend.
func (s *ReportService) Transactions(ctx context.Context) ([]core.Transaction, error) {
	return s.reader.ListTransactions(ctx)
}

// Weekly builds the weekday distribution payload for the 90 days ending at
// end. The result is always a JSON-marshalable payload, never an error.
func (s *ReportService) Weekly(ctx context.Context, end core.Date) (payload any) {
	defer s.recoverToPayload(ctx, "weekly", &payload)

	txs, err := s.reader.ListTransactions(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load transactions", "report", "weekly", "error", err)
		return s.persisted(ctx, reports.InternalErrorPayload())
	}
	report, err := reports.Weekly(txs, end)
	return s.persisted(ctx, reports.Payload(report, err))
}

// CategorySpending builds the category payload for the 90 days starting at
// start.
func (s *ReportService) CategorySpending(ctx context.Context, category string, start core.Date) (payload any) {
	defer s.recoverToPayload(ctx, "category", &payload)

	txs, err := s.reader.ListTransactions(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load transactions", "report", "category", "error", err)
		return s.persisted(ctx, reports.InternalErrorPayload())
	}
	report, err := reports.CategorySpending(txs, category, start)
	return s.persisted(ctx, reports.Payload(report, err))
}

// WorkdayWeekend builds the workday/weekend split payload for the 90 days
// starting at start.
func (s *ReportService) WorkdayWeekend(ctx context.Context, category string, start core.Date) (payload any) {
	defer s.recoverToPayload(ctx, "workday", &payload)

	txs, err := s.reader.ListTransactions(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load transactions", "report", "workday", "error", err)
		return s.persisted(ctx, reports.InternalErrorPayload())
	}
	report, err := reports.WorkdayWeekend(txs, category, start, s.calendar)
	return s.persisted(ctx, reports.Payload(report, err))
}

// Events builds the dashboard summary for the window resolved from the
// reference date and scope. An invalid scope is the caller's error and is
// returned as-is.
func (s *ReportService) Events(ctx context.Context, ref core.Date, scope core.Scope) (events.Summary, error) {
	txs, err := s.reader.ListTransactions(ctx)
	if err != nil {
		return events.Summary{}, fmt.Errorf("load transactions: %w", err)
	}
	return events.Compose(txs, ref, scope)
}

// EnqueueJob publishes a report job for asynchronous processing. Without a
// configured jobs client the job is dropped with a warning.
func (s *ReportService) EnqueueJob(ctx context.Context, job *amqp.ReportJob) error {
	if s.jobs == nil {
		slog.WarnContext(ctx, "AMQP not configured, dropping report job", "kind", job.Kind)
		return nil
	}
	return s.jobs.PublishReportJob(ctx, job)
}

// RunJob executes a consumed report job. The payload lands in the sink; the
// returned error only reflects job-level problems such as an unknown kind.
func (s *ReportService) RunJob(ctx context.Context, job *amqp.ReportJob) error {
	date := core.Today()
	if job.Date != "" {
		parsed, err := core.ParseDate(job.Date)
		if err != nil {
			return fmt.Errorf("job date: %w", err)
		}
		date = parsed
	}

	switch job.Kind {
	case amqp.ReportWeekly:
		s.Weekly(ctx, date)
	case amqp.ReportCategory:
		s.CategorySpending(ctx, job.Category, date)
	case amqp.ReportWorkday:
		s.WorkdayWeekend(ctx, job.Category, date)
	default:
		return fmt.Errorf("unknown report kind %q", job.Kind)
	}
	return nil
}

// persisted writes the payload through the sink, logging failures, and
// returns the payload unchanged.
func (s *ReportService) persisted(ctx context.Context, payload any) any {
	if s.sink == nil {
		return payload
	}
	path, err := s.sink.Write(payload)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to persist report", "error", err)
		return payload
	}
	slog.DebugContext(ctx, "Report persisted", "path", path)
	return payload
}

// recoverToPayload converts a panic inside report generation into the
// generic internal error payload.
func (s *ReportService) recoverToPayload(ctx context.Context, report string, payload *any) {
	if r := recover(); r != nil {
		slog.ErrorContext(ctx, "Recovered panic in report generation", "report", report, "panic", r)
		*payload = reports.InternalErrorPayload()
	}
}
