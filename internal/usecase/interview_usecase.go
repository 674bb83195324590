package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-jobify-backend/internal/domain"
	"go-jobify-backend/pkg/apperror"
	"go-jobify-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type interviewUsecase struct {
	interviewRepo domain.InterviewRepository
	applications  domain.ApplicationGateway
	users         domain.UserDirectory
	sink          domain.NotificationSink
	validate      *validator.Validate
}

// NewInterviewUsecase creates a new interview usecase
func NewInterviewUsecase(
	ivRepo domain.InterviewRepository,
	applications domain.ApplicationGateway,
	users domain.UserDirectory,
	sink domain.NotificationSink,
	validate *validator.Validate,
) domain.InterviewUsecase {
	return &interviewUsecase{
		interviewRepo: ivRepo,
		applications:  applications,
		users:         users,
		sink:          sink,
		validate:      validate,
	}
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// validateScheduleInput checks the request shape before anything touches
// a store or a remote service.
func (uc *interviewUsecase) validateScheduleInput(in domain.ScheduleInterviewInput) error {
	if err := uc.validate.Struct(in); err != nil {
		return apperror.InvalidInterview(err.Error())
	}
	if _, err := domain.ParseInterviewType(string(in.InterviewType)); err != nil {
		return apperror.InvalidInterview(err.Error())
	}
	if !in.ScheduledDate.After(time.Now()) {
		return apperror.InvalidInterview("Interview cannot be scheduled in the past")
	}
	if in.InterviewType == domain.InterviewTypeRemote && isBlank(in.MeetingLink) {
		return apperror.InvalidInterview("Meeting link is required for remote interviews")
	}
	if in.InterviewType == domain.InterviewTypeOnSite && isBlank(in.Location) {
		return apperror.InvalidInterview("Location is required for on-site interviews")
	}
	return nil
}

// Schedule validates the request, confirms the application exists across the
// service boundary, enforces the one-active-interview guard and persists.
// The application-status push afterwards is best-effort: its failure is
// logged and swallowed, never rolled back into the committed write.
func (uc *interviewUsecase) Schedule(ctx context.Context, in domain.ScheduleInterviewInput) (*domain.Interview, error) {
	// 1. Request shape
	if err := uc.validateScheduleInput(in); err != nil {
		return nil, err
	}

	// 2. Application existence, fail-closed: unreachable counts as missing
	if _, err := uc.applications.GetApplicationByID(ctx, in.ApplicationID); err != nil {
		return nil, apperror.InvalidInterview("Application not found: " + in.ApplicationID)
	}

	// 3. Active-interview pre-check (fast path; the partial unique index is
	// authoritative)
	hasActive, err := uc.interviewRepo.HasActive(ctx, in.ApplicationID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if hasActive {
		return nil, apperror.InvalidInterview("An active interview already exists for this application")
	}

	// 4. Persist with status forced to SCHEDULED, whatever the request said
	iv := &domain.Interview{
		ApplicationID: in.ApplicationID,
		JobSeekerID:   in.JobSeekerID,
		RecruiterID:   in.RecruiterID,
		ScheduledDate: in.ScheduledDate,
		Duration:      in.Duration,
		Location:      in.Location,
		InterviewType: in.InterviewType,
		Status:        domain.InterviewStatusScheduled,
		Notes:         in.Notes,
		MeetingLink:   in.MeetingLink,
	}
	if err := uc.interviewRepo.Create(ctx, iv); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.InvalidInterview("An active interview already exists for this application")
		}
		return nil, apperror.Internal(err)
	}

	// 5. Best-effort status push back into the application engine. Failure
	// here is the system's accepted eventual inconsistency.
	if err := uc.applications.UpdateApplicationStatus(ctx, in.ApplicationID, domain.ApplicationStatusInterviewScheduled); err != nil {
		logger.Log.Error("failed to update application status after scheduling",
			"application_id", in.ApplicationID, "interview_id", iv.ID, "error", err)
	}

	// 6. Notify
	uc.sink.InterviewScheduled(iv)

	return uc.withUserDetails(ctx, iv), nil
}

func (uc *interviewUsecase) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	iv, err := uc.loadInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.withUserDetails(ctx, iv), nil
}

func (uc *interviewUsecase) loadInterview(ctx context.Context, id int64) (*domain.Interview, error) {
	iv, err := uc.interviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Interview not found with ID: %d", id))
		}
		return nil, apperror.Internal(err)
	}
	return iv, nil
}

func (uc *interviewUsecase) GetByApplicationID(ctx context.Context, applicationID string) ([]domain.Interview, error) {
	return uc.interviewRepo.GetByApplicationID(ctx, applicationID)
}

func (uc *interviewUsecase) GetByJobSeekerID(ctx context.Context, jobSeekerID string) ([]domain.Interview, error) {
	return uc.interviewRepo.GetByJobSeekerID(ctx, jobSeekerID)
}

func (uc *interviewUsecase) GetUpcomingByJobSeekerID(ctx context.Context, jobSeekerID string) ([]domain.Interview, error) {
	return uc.interviewRepo.GetUpcomingByJobSeekerID(ctx, jobSeekerID, time.Now())
}

func (uc *interviewUsecase) GetByRecruiterID(ctx context.Context, recruiterID string) ([]domain.Interview, error) {
	return uc.interviewRepo.GetByRecruiterID(ctx, recruiterID)
}

func (uc *interviewUsecase) GetUpcomingByRecruiterID(ctx context.Context, recruiterID string) ([]domain.Interview, error) {
	return uc.interviewRepo.GetUpcomingByRecruiterID(ctx, recruiterID, time.Now())
}

// GetRecruiterStats aggregates a recruiter's interviews per status.
func (uc *interviewUsecase) GetRecruiterStats(ctx context.Context, recruiterID string) (*domain.InterviewStats, error) {
	stats := &domain.InterviewStats{RecruiterID: recruiterID}
	counters := []struct {
		status domain.InterviewStatus
		target *int64
	}{
		{domain.InterviewStatusScheduled, &stats.Scheduled},
		{domain.InterviewStatusRescheduled, &stats.Rescheduled},
		{domain.InterviewStatusCompleted, &stats.Completed},
		{domain.InterviewStatusCancelled, &stats.Cancelled},
		{domain.InterviewStatusNoShow, &stats.NoShow},
	}
	for _, c := range counters {
		n, err := uc.interviewRepo.CountByRecruiterAndStatus(ctx, recruiterID, c.status)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		*c.target = n
	}
	return stats, nil
}

// Update applies a partial update to a non-final interview. A changed
// scheduled date forces RESCHEDULED and overrides any status in the same
// patch. No cross-field re-validation happens here: switching the type to
// REMOTE without a meeting link is accepted, matching the status quo of the
// service contract.
func (uc *interviewUsecase) Update(ctx context.Context, id int64, patch domain.InterviewPatch) (*domain.Interview, error) {
	iv, err := uc.loadInterview(ctx, id)
	if err != nil {
		return nil, err
	}

	if iv.Status.IsFinal() {
		return nil, apperror.InvalidInterview("Cannot update interview with final status: " + string(iv.Status))
	}

	wasRescheduled := false
	if patch.ScheduledDate != nil && !patch.ScheduledDate.Equal(iv.ScheduledDate) {
		iv.ScheduledDate = *patch.ScheduledDate
		iv.Status = domain.InterviewStatusRescheduled
		wasRescheduled = true
	}
	if patch.Duration != nil {
		iv.Duration = *patch.Duration
	}
	if patch.Location != nil {
		iv.Location = patch.Location
	}
	if patch.InterviewType != nil {
		if _, err := domain.ParseInterviewType(string(*patch.InterviewType)); err != nil {
			return nil, apperror.InvalidInterview(err.Error())
		}
		iv.InterviewType = *patch.InterviewType
	}
	if patch.Notes != nil {
		if len(*patch.Notes) > domain.InterviewNotesMaxLen {
			return nil, apperror.InvalidInterview("Notes must not exceed 1000 characters")
		}
		iv.Notes = patch.Notes
	}
	if patch.MeetingLink != nil {
		iv.MeetingLink = patch.MeetingLink
	}
	if patch.Status != nil && !wasRescheduled {
		status, err := domain.ParseInterviewStatus(string(*patch.Status))
		if err != nil {
			return nil, apperror.InvalidInterview(err.Error())
		}
		iv.Status = status
	}

	if err := uc.interviewRepo.Update(ctx, iv); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.sink.InterviewUpdated(iv)

	return uc.withUserDetails(ctx, iv), nil
}

// Cancel moves a non-final interview to CANCELLED.
func (uc *interviewUsecase) Cancel(ctx context.Context, id int64) error {
	iv, err := uc.loadInterview(ctx, id)
	if err != nil {
		return err
	}

	if iv.Status.IsFinal() {
		return apperror.InvalidInterview("Cannot cancel interview with final status: " + string(iv.Status))
	}

	iv.Status = domain.InterviewStatusCancelled
	if err := uc.interviewRepo.Update(ctx, iv); err != nil {
		return apperror.Internal(err)
	}

	uc.sink.InterviewCancelled(iv)
	return nil
}

// SendReminders emits one reminder per SCHEDULED interview inside the 24h
// window. Running it twice within the same window re-sends: idempotency
// belongs to the external trigger, not this core.
func (uc *interviewUsecase) SendReminders(ctx context.Context) (int, error) {
	now := time.Now()
	candidates, err := uc.interviewRepo.FindScheduledBetween(ctx, now, now.Add(domain.ReminderLeadTime))
	if err != nil {
		return 0, apperror.Internal(err)
	}

	sent := 0
	for i := range candidates {
		iv := &candidates[i]
		if !iv.ShouldSendReminder(now) {
			continue
		}
		uc.sink.InterviewReminder(iv)
		sent++
	}

	logger.Log.Info("interview reminders sent", "count", sent, "candidates", len(candidates))
	return sent, nil
}

// withUserDetails decorates the interview with denormalized display data.
// Failure to reach the user service never fails the read; the response just
// omits the details.
func (uc *interviewUsecase) withUserDetails(ctx context.Context, iv *domain.Interview) *domain.Interview {
	if uc.users == nil {
		return iv
	}
	seeker, err := uc.users.GetUserDetails(ctx, iv.JobSeekerID)
	if err != nil {
		logger.Log.Warn("failed to fetch job seeker details", "user_id", iv.JobSeekerID, "error", err)
	} else {
		iv.JobSeekerDetails = seeker
	}
	recruiter, err := uc.users.GetUserDetails(ctx, iv.RecruiterID)
	if err != nil {
		logger.Log.Warn("failed to fetch recruiter details", "user_id", iv.RecruiterID, "error", err)
	} else {
		iv.RecruiterDetails = recruiter
	}
	return iv
}
