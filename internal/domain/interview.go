package domain

import (
	"context"
	"fmt"
	"time"
)

// InterviewStatus is the lifecycle status of an interview.
//
// Valid status graph:
//
//	SCHEDULED ──(date change)──► RESCHEDULED ──(date change)──► RESCHEDULED
//	    │                             │
//	    └─────────────┬───────────────┘
//	                  ▼
//	  COMPLETED | CANCELLED | NO_SHOW   (terminal)
type InterviewStatus string

const (
	InterviewStatusScheduled   InterviewStatus = "SCHEDULED"
	InterviewStatusRescheduled InterviewStatus = "RESCHEDULED"
	InterviewStatusCompleted   InterviewStatus = "COMPLETED"
	InterviewStatusCancelled   InterviewStatus = "CANCELLED"
	InterviewStatusNoShow      InterviewStatus = "NO_SHOW"
)

// ParseInterviewStatus converts a raw string to an InterviewStatus,
// returning an error for unknown values.
func ParseInterviewStatus(s string) (InterviewStatus, error) {
	st := InterviewStatus(s)
	switch st {
	case InterviewStatusScheduled, InterviewStatusRescheduled,
		InterviewStatusCompleted, InterviewStatusCancelled, InterviewStatusNoShow:
		return st, nil
	}
	return "", fmt.Errorf("unknown interview status %q", s)
}

// IsActive reports whether the interview still occupies its application's
// single active slot.
func (s InterviewStatus) IsActive() bool {
	return s == InterviewStatusScheduled || s == InterviewStatusRescheduled
}

// IsFinal reports whether the status is terminal. A final interview is
// immutable except to read.
func (s InterviewStatus) IsFinal() bool {
	return s == InterviewStatusCompleted || s == InterviewStatusCancelled || s == InterviewStatusNoShow
}

// ActiveInterviewStatuses lists the statuses counted by the one-active-
// interview-per-application guard.
func ActiveInterviewStatuses() []InterviewStatus {
	return []InterviewStatus{InterviewStatusScheduled, InterviewStatusRescheduled}
}

// InterviewType classifies how an interview is conducted.
type InterviewType string

const (
	InterviewTypeTechnical  InterviewType = "TECHNICAL"
	InterviewTypeHR         InterviewType = "HR"
	InterviewTypeManagerial InterviewType = "MANAGERIAL"
	InterviewTypeOnSite     InterviewType = "ON_SITE"
	InterviewTypeRemote     InterviewType = "REMOTE"
)

// ParseInterviewType converts a raw string to an InterviewType.
func ParseInterviewType(s string) (InterviewType, error) {
	t := InterviewType(s)
	switch t {
	case InterviewTypeTechnical, InterviewTypeHR, InterviewTypeManagerial,
		InterviewTypeOnSite, InterviewTypeRemote:
		return t, nil
	}
	return "", fmt.Errorf("unknown interview type %q", s)
}

const (
	// InterviewMinDuration and InterviewMaxDuration bound the duration in minutes.
	InterviewMinDuration = 15
	InterviewMaxDuration = 480
	// InterviewNotesMaxLen bounds free-text notes.
	InterviewNotesMaxLen = 1000
	// ReminderLeadTime is how far ahead of the scheduled date the reminder
	// window opens.
	ReminderLeadTime = 24 * time.Hour
)

// Interview is a scheduled meeting tied to exactly one Application.
type Interview struct {
	ID            int64           `json:"id"`
	ApplicationID string          `json:"application_id"`
	JobSeekerID   string          `json:"job_seeker_id"`
	RecruiterID   string          `json:"recruiter_id"`
	ScheduledDate time.Time       `json:"scheduled_date"`
	Duration      int             `json:"duration"` // minutes
	Location      *string         `json:"location,omitempty"`
	InterviewType InterviewType   `json:"interview_type"`
	Status        InterviewStatus `json:"status"`
	Notes         *string         `json:"notes,omitempty"`
	MeetingLink   *string         `json:"meeting_link,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Denormalized display data, best-effort (omitted when the user
	// directory cannot be reached).
	JobSeekerDetails *UserDetails `json:"job_seeker_details,omitempty"`
	RecruiterDetails *UserDetails `json:"recruiter_details,omitempty"`
}

// IsUpcoming reports whether the interview is still ahead of now and scheduled.
func (i *Interview) IsUpcoming(now time.Time) bool {
	return i.ScheduledDate.After(now) && i.Status == InterviewStatusScheduled
}

// ShouldSendReminder reports whether now falls strictly within the reminder
// window [scheduledDate-24h, scheduledDate).
func (i *Interview) ShouldSendReminder(now time.Time) bool {
	if !i.IsUpcoming(now) {
		return false
	}
	windowStart := i.ScheduledDate.Add(-ReminderLeadTime)
	return now.After(windowStart) && now.Before(i.ScheduledDate)
}

// ScheduleInterviewInput is the payload for scheduling an interview.
// The status on the stored interview is always forced to SCHEDULED.
type ScheduleInterviewInput struct {
	ApplicationID string        `json:"application_id" validate:"required"`
	JobSeekerID   string        `json:"job_seeker_id" validate:"required"`
	RecruiterID   string        `json:"recruiter_id" validate:"required"`
	ScheduledDate time.Time     `json:"scheduled_date" validate:"required"`
	Duration      int           `json:"duration" validate:"required,min=15,max=480"`
	InterviewType InterviewType `json:"interview_type" validate:"required"`
	Location      *string       `json:"location,omitempty"`
	MeetingLink   *string       `json:"meeting_link,omitempty"`
	Notes         *string       `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// InterviewPatch carries a partial update. Nil means "leave untouched".
// A changed ScheduledDate forces status RESCHEDULED, overriding any Status
// supplied in the same patch.
type InterviewPatch struct {
	ScheduledDate *time.Time       `json:"scheduled_date,omitempty"`
	Duration      *int             `json:"duration,omitempty"`
	Location      *string          `json:"location,omitempty"`
	InterviewType *InterviewType   `json:"interview_type,omitempty"`
	Status        *InterviewStatus `json:"status,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	MeetingLink   *string          `json:"meeting_link,omitempty"`
}

// InterviewStats aggregates a recruiter's interviews by outcome.
type InterviewStats struct {
	RecruiterID string `json:"recruiter_id"`
	Scheduled   int64  `json:"scheduled"`
	Rescheduled int64  `json:"rescheduled"`
	Completed   int64  `json:"completed"`
	Cancelled   int64  `json:"cancelled"`
	NoShow      int64  `json:"no_show"`
}

// InterviewRepository defines data access methods for interviews
type InterviewRepository interface {
	Create(ctx context.Context, iv *Interview) error
	GetByID(ctx context.Context, id int64) (*Interview, error)
	GetByApplicationID(ctx context.Context, applicationID string) ([]Interview, error)
	GetByJobSeekerID(ctx context.Context, jobSeekerID string) ([]Interview, error)
	GetByRecruiterID(ctx context.Context, recruiterID string) ([]Interview, error)
	GetUpcomingByJobSeekerID(ctx context.Context, jobSeekerID string, now time.Time) ([]Interview, error)
	GetUpcomingByRecruiterID(ctx context.Context, recruiterID string, now time.Time) ([]Interview, error)
	HasActive(ctx context.Context, applicationID string) (bool, error)
	Update(ctx context.Context, iv *Interview) error
	FindScheduledBetween(ctx context.Context, start, end time.Time) ([]Interview, error)
	CountByRecruiterAndStatus(ctx context.Context, recruiterID string, status InterviewStatus) (int64, error)
}

// InterviewUsecase defines business logic for the interview lifecycle
type InterviewUsecase interface {
	Schedule(ctx context.Context, in ScheduleInterviewInput) (*Interview, error)
	GetByID(ctx context.Context, id int64) (*Interview, error)
	GetByApplicationID(ctx context.Context, applicationID string) ([]Interview, error)
	GetByJobSeekerID(ctx context.Context, jobSeekerID string) ([]Interview, error)
	GetUpcomingByJobSeekerID(ctx context.Context, jobSeekerID string) ([]Interview, error)
	GetByRecruiterID(ctx context.Context, recruiterID string) ([]Interview, error)
	GetUpcomingByRecruiterID(ctx context.Context, recruiterID string) ([]Interview, error)
	GetRecruiterStats(ctx context.Context, recruiterID string) (*InterviewStats, error)
	Update(ctx context.Context, id int64, patch InterviewPatch) (*Interview, error)
	Cancel(ctx context.Context, id int64) error
	SendReminders(ctx context.Context) (int, error)
}
