package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-jobify-backend/internal/domain"
	"go-jobify-backend/internal/usecase"
	"go-jobify-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	return m.Called(ctx, iv).Error(0)
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) GetByApplicationID(ctx context.Context, applicationID string) ([]domain.Interview, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) GetByJobSeekerID(ctx context.Context, jobSeekerID string) ([]domain.Interview, error) {
	args := m.Called(ctx, jobSeekerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) GetByRecruiterID(ctx context.Context, recruiterID string) ([]domain.Interview, error) {
	args := m.Called(ctx, recruiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) GetUpcomingByJobSeekerID(ctx context.Context, jobSeekerID string, now time.Time) ([]domain.Interview, error) {
	args := m.Called(ctx, jobSeekerID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) GetUpcomingByRecruiterID(ctx context.Context, recruiterID string, now time.Time) ([]domain.Interview, error) {
	args := m.Called(ctx, recruiterID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) HasActive(ctx context.Context, applicationID string) (bool, error) {
	args := m.Called(ctx, applicationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInterviewRepo) Update(ctx context.Context, iv *domain.Interview) error {
	return m.Called(ctx, iv).Error(0)
}

func (m *MockInterviewRepo) FindScheduledBetween(ctx context.Context, start, end time.Time) ([]domain.Interview, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) CountByRecruiterAndStatus(ctx context.Context, recruiterID string, status domain.InterviewStatus) (int64, error) {
	args := m.Called(ctx, recruiterID, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockApplicationGateway struct {
	mock.Mock
}

func (m *MockApplicationGateway) GetApplicationByID(ctx context.Context, id string) (*domain.ApplicationDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationDetails), args.Error(1)
}

func (m *MockApplicationGateway) UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

// recordingSink counts lifecycle events without ever failing.
type recordingSink struct {
	scheduled int
	updated   int
	cancelled int
	reminders int
}

func (s *recordingSink) InterviewScheduled(*domain.Interview) { s.scheduled++ }
func (s *recordingSink) InterviewUpdated(*domain.Interview)   { s.updated++ }
func (s *recordingSink) InterviewCancelled(*domain.Interview) { s.cancelled++ }
func (s *recordingSink) InterviewReminder(*domain.Interview)  { s.reminders++ }

func newInterviewUC(repo *MockInterviewRepo, gw *MockApplicationGateway, sink *recordingSink) domain.InterviewUsecase {
	return usecase.NewInterviewUsecase(repo, gw, nil, sink, validator.New())
}

func validScheduleInput() domain.ScheduleInterviewInput {
	link := "https://meet.example.com/abc"
	return domain.ScheduleInterviewInput{
		ApplicationID: "a1",
		JobSeekerID:   "seeker-1",
		RecruiterID:   "recruiter-1",
		ScheduledDate: time.Now().Add(48 * time.Hour),
		Duration:      60,
		InterviewType: domain.InterviewTypeRemote,
		MeetingLink:   &link,
	}
}

func appDetails() *domain.ApplicationDetails {
	return &domain.ApplicationDetails{ID: "a1", JobSeekerID: 7, JobOfferID: 42, Status: domain.ApplicationStatusNew}
}

func TestInterviewScheduleValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a date in the past", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newInterviewUC(repo, new(MockApplicationGateway), &recordingSink{})

		in := validScheduleInput()
		in.ScheduledDate = time.Now().Add(-time.Hour)

		_, err := uc.Schedule(ctx, in)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindInvalidInterviewData, appErr.Kind)
		assert.Contains(t, appErr.Message, "past")
	})

	t.Run("Should reject a remote interview without a meeting link", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newInterviewUC(repo, new(MockApplicationGateway), &recordingSink{})

		in := validScheduleInput()
		blank := "   "
		in.MeetingLink = &blank

		_, err := uc.Schedule(ctx, in)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Message, "Meeting link")
	})

	t.Run("Should reject an on-site interview without a location", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newInterviewUC(repo, new(MockApplicationGateway), &recordingSink{})

		in := validScheduleInput()
		in.InterviewType = domain.InterviewTypeOnSite
		in.MeetingLink = nil
		in.Location = nil

		_, err := uc.Schedule(ctx, in)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Message, "Location")
	})

	t.Run("Should reject a duration outside bounds", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newInterviewUC(repo, new(MockApplicationGateway), &recordingSink{})

		in := validScheduleInput()
		in.Duration = 10

		_, err := uc.Schedule(ctx, in)
		assert.Error(t, err)
	})
}

func TestInterviewSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("Should force status SCHEDULED and notify", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		gw := new(MockApplicationGateway)
		sink := &recordingSink{}
		uc := newInterviewUC(repo, gw, sink)

		gw.On("GetApplicationByID", ctx, "a1").Return(appDetails(), nil)
		repo.On("HasActive", ctx, "a1").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Interview")).Return(nil).Run(func(args mock.Arguments) {
			iv := args.Get(1).(*domain.Interview)
			assert.Equal(t, domain.InterviewStatusScheduled, iv.Status)
		})
		gw.On("UpdateApplicationStatus", ctx, "a1", domain.ApplicationStatusInterviewScheduled).Return(nil)

		iv, err := uc.Schedule(ctx, validScheduleInput())

		assert.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusScheduled, iv.Status)
		assert.Equal(t, 1, sink.scheduled)
		repo.AssertExpectations(t)
		gw.AssertExpectations(t)
	})

	t.Run("Should treat an unreachable application engine as not found", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		gw := new(MockApplicationGateway)
		uc := newInterviewUC(repo, gw, &recordingSink{})

		gw.On("GetApplicationByID", ctx, "a1").Return(nil, errors.New("connection refused"))

		_, err := uc.Schedule(ctx, validScheduleInput())

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindInvalidInterviewData, appErr.Kind)
		assert.Contains(t, appErr.Message, "Application not found")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject when an active interview already exists", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		gw := new(MockApplicationGateway)
		uc := newInterviewUC(repo, gw, &recordingSink{})

		gw.On("GetApplicationByID", ctx, "a1").Return(appDetails(), nil)
		repo.On("HasActive", ctx, "a1").Return(true, nil)

		_, err := uc.Schedule(ctx, validScheduleInput())

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Message, "active interview already exists")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should map an insert conflict to the same active-interview error", func(t *testing.T) {
		// The pre-check raced a concurrent schedule; the partial unique index
		// rejected the second insert.
		repo := new(MockInterviewRepo)
		gw := new(MockApplicationGateway)
		uc := newInterviewUC(repo, gw, &recordingSink{})

		gw.On("GetApplicationByID", ctx, "a1").Return(appDetails(), nil)
		repo.On("HasActive", ctx, "a1").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Interview")).Return(domain.ErrConflict)

		_, err := uc.Schedule(ctx, validScheduleInput())

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Message, "active interview already exists")
	})

	t.Run("Should succeed even when the status push fails", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		gw := new(MockApplicationGateway)
		sink := &recordingSink{}
		uc := newInterviewUC(repo, gw, sink)

		gw.On("GetApplicationByID", ctx, "a1").Return(appDetails(), nil)
		repo.On("HasActive", ctx, "a1").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Interview")).Return(nil)
		gw.On("UpdateApplicationStatus", ctx, "a1", domain.ApplicationStatusInterviewScheduled).
			Return(errors.New("application service down"))

		iv, err := uc.Schedule(ctx, validScheduleInput())

		assert.NoError(t, err)
		assert.NotNil(t, iv)
		assert.Equal(t, 1, sink.scheduled)
	})
}

func TestInterviewUpdate(t *testing.T) {
	ctx := context.Background()

	stored := func(status domain.InterviewStatus) *domain.Interview {
		return &domain.Interview{
			ID:            1,
			ApplicationID: "a1",
			JobSeekerID:   "seeker-1",
			RecruiterID:   "recruiter-1",
			ScheduledDate: time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC),
			Duration:      60,
			InterviewType: domain.InterviewTypeTechnical,
			Status:        status,
		}
	}

	t.Run("Should force RESCHEDULED when the date changes", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		sink := &recordingSink{}
		uc := newInterviewUC(repo, new(MockApplicationGateway), sink)

		repo.On("GetByID", ctx, int64(1)).Return(stored(domain.InterviewStatusScheduled), nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Interview")).Return(nil)

		newDate := time.Date(2026, 10, 2, 10, 0, 0, 0, time.UTC)
		completed := domain.InterviewStatusCompleted
		iv, err := uc.Update(ctx, 1, domain.InterviewPatch{
			ScheduledDate: &newDate,
			Status:        &completed, // date change wins over this
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusRescheduled, iv.Status)
		assert.Equal(t, newDate, iv.ScheduledDate)
		assert.Equal(t, 1, sink.updated)
	})

	t.Run("Should keep status when the patched date equals the stored one", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newInterviewUC(repo, new(MockApplicationGateway), &recordingSink{})

		repo.On("GetByID", ctx, int64(1)).Return(stored(domain.InterviewStatusScheduled), nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Interview")).Return(nil)

		sameDate := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
		iv, err := uc.Update(ctx, 1, domain.InterviewPatch{ScheduledDate: &sameDate})

		assert.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusScheduled, iv.Status)
	})

	t.Run("Should apply a status when no date change happens", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newInterviewUC(repo, new(MockApplicationGateway), &recordingSink{})

		repo.On("GetByID", ctx, int64(1)).Return(stored(domain.InterviewStatusScheduled), nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Interview")).Return(nil)

		completed := domain.InterviewStatusCompleted
		iv, err := uc.Update(ctx, 1, domain.InterviewPatch{Status: &completed})

		assert.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusCompleted, iv.Status)
	})

	t.Run("Should refuse to update a final interview", func(t *testing.T) {
		for _, status := range []domain.InterviewStatus{
			domain.InterviewStatusCompleted,
			domain.InterviewStatusCancelled,
			domain.InterviewStatusNoShow,
		} {
			repo := new(MockInterviewRepo)
			uc := newInterviewUC(repo, new(MockApplicationGateway), &recordingSink{})

			repo.On("GetByID", ctx, int64(1)).Return(stored(status), nil)

			notes := "late notes"
			_, err := uc.Update(ctx, 1, domain.InterviewPatch{Notes: &notes})

			var appErr *apperror.AppError
			assert.ErrorAs(t, err, &appErr)
			assert.Contains(t, appErr.Message, "final status")
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		}
	})

	t.Run("Should reject notes over the length bound", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newInterviewUC(repo, new(MockApplicationGateway), &recordingSink{})

		repo.On("GetByID", ctx, int64(1)).Return(stored(domain.InterviewStatusScheduled), nil)

		long := string(make([]byte, domain.InterviewNotesMaxLen+1))
		_, err := uc.Update(ctx, 1, domain.InterviewPatch{Notes: &long})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Should return not-found for an unknown id", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newInterviewUC(repo, new(MockApplicationGateway), &recordingSink{})

		repo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

		_, err := uc.Update(ctx, 99, domain.InterviewPatch{})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestInterviewCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("Should cancel an active interview and notify", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		sink := &recordingSink{}
		uc := newInterviewUC(repo, new(MockApplicationGateway), sink)

		repo.On("GetByID", ctx, int64(1)).Return(&domain.Interview{
			ID: 1, Status: domain.InterviewStatusRescheduled,
		}, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Interview")).Return(nil).Run(func(args mock.Arguments) {
			iv := args.Get(1).(*domain.Interview)
			assert.Equal(t, domain.InterviewStatusCancelled, iv.Status)
		})

		err := uc.Cancel(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, 1, sink.cancelled)
	})

	t.Run("Should refuse to cancel a final interview", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newInterviewUC(repo, new(MockApplicationGateway), &recordingSink{})

		repo.On("GetByID", ctx, int64(1)).Return(&domain.Interview{
			ID: 1, Status: domain.InterviewStatusCompleted,
		}, nil)

		err := uc.Cancel(ctx, 1)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Message, "final status")
	})
}

func TestInterviewSendReminders(t *testing.T) {
	ctx := context.Background()

	t.Run("Should remind only scheduled interviews inside the window", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		sink := &recordingSink{}
		uc := newInterviewUC(repo, new(MockApplicationGateway), sink)

		inWindow := domain.Interview{
			ID:            1,
			ScheduledDate: time.Now().Add(3 * time.Hour),
			Status:        domain.InterviewStatusScheduled,
		}
		rescheduled := domain.Interview{
			ID:            2,
			ScheduledDate: time.Now().Add(3 * time.Hour),
			Status:        domain.InterviewStatusRescheduled,
		}
		repo.On("FindScheduledBetween", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return([]domain.Interview{inWindow, rescheduled}, nil)

		sent, err := uc.SendReminders(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Equal(t, 1, sink.reminders)
	})

	t.Run("Should send nothing when the window is empty", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		sink := &recordingSink{}
		uc := newInterviewUC(repo, new(MockApplicationGateway), sink)

		repo.On("FindScheduledBetween", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return([]domain.Interview{}, nil)

		sent, err := uc.SendReminders(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 0, sent)
		assert.Equal(t, 0, sink.reminders)
	})
}

func TestRecruiterStats(t *testing.T) {
	ctx := context.Background()

	t.Run("Should aggregate counts per status", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newInterviewUC(repo, new(MockApplicationGateway), &recordingSink{})

		repo.On("CountByRecruiterAndStatus", ctx, "r1", domain.InterviewStatusScheduled).Return(int64(3), nil)
		repo.On("CountByRecruiterAndStatus", ctx, "r1", domain.InterviewStatusRescheduled).Return(int64(1), nil)
		repo.On("CountByRecruiterAndStatus", ctx, "r1", domain.InterviewStatusCompleted).Return(int64(5), nil)
		repo.On("CountByRecruiterAndStatus", ctx, "r1", domain.InterviewStatusCancelled).Return(int64(2), nil)
		repo.On("CountByRecruiterAndStatus", ctx, "r1", domain.InterviewStatusNoShow).Return(int64(0), nil)

		stats, err := uc.GetRecruiterStats(ctx, "r1")

		assert.NoError(t, err)
		assert.Equal(t, int64(3), stats.Scheduled)
		assert.Equal(t, int64(1), stats.Rescheduled)
		assert.Equal(t, int64(5), stats.Completed)
		assert.Equal(t, int64(2), stats.Cancelled)
		assert.Equal(t, int64(0), stats.NoShow)
	})
}
