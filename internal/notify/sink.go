// Package notify implements the interview NotificationSink as a structured
// event log. A real deployment would fan these events out to email/SMS; the
// contract is fire-and-forget either way, so the engine never observes a
// delivery failure.
package notify

import (
	"go-jobify-backend/internal/domain"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType labels an interview lifecycle event
type EventType string

const (
	EventInterviewScheduled EventType = "interview_scheduled"
	EventInterviewUpdated   EventType = "interview_updated"
	EventInterviewCancelled EventType = "interview_cancelled"
	EventInterviewReminder  EventType = "interview_reminder"
)

// LogSink writes interview events as structured JSON via zap.
type LogSink struct {
	logger      *zap.Logger
	serviceName string
}

// NewLogSink builds the logging sink. serviceName tags every event so a
// log aggregator can separate services sharing one stream.
func NewLogSink(serviceName string) (*LogSink, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return &LogSink{logger: logger, serviceName: serviceName}, nil
}

func (s *LogSink) emit(event EventType, iv *domain.Interview, extra ...zap.Field) {
	fields := []zap.Field{
		zap.String("service", s.serviceName),
		zap.String("event", string(event)),
		zap.Int64("interview_id", iv.ID),
		zap.String("application_id", iv.ApplicationID),
		zap.String("job_seeker_id", iv.JobSeekerID),
		zap.String("recruiter_id", iv.RecruiterID),
		zap.Time("scheduled_date", iv.ScheduledDate),
		zap.String("interview_type", string(iv.InterviewType)),
		zap.String("status", string(iv.Status)),
	}
	if iv.Location != nil {
		fields = append(fields, zap.String("location", *iv.Location))
	}
	if iv.MeetingLink != nil {
		fields = append(fields, zap.String("meeting_link", *iv.MeetingLink))
	}
	fields = append(fields, extra...)
	s.logger.Info("interview notification", fields...)
}

func (s *LogSink) InterviewScheduled(iv *domain.Interview) {
	s.emit(EventInterviewScheduled, iv)
}

func (s *LogSink) InterviewUpdated(iv *domain.Interview) {
	s.emit(EventInterviewUpdated, iv)
}

func (s *LogSink) InterviewCancelled(iv *domain.Interview) {
	s.emit(EventInterviewCancelled, iv)
}

func (s *LogSink) InterviewReminder(iv *domain.Interview) {
	s.emit(EventInterviewReminder, iv, zap.String("reminder_lead", domain.ReminderLeadTime.String()))
}

// Sync flushes buffered log entries. Call on shutdown.
func (s *LogSink) Sync() error {
	return s.logger.Sync()
}
