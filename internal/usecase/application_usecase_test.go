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

// Mock Repositories and Directories

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetAll(ctx context.Context) ([]domain.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByJobOfferID(ctx context.Context, jobOfferID int64) ([]domain.Application, error) {
	args := m.Called(ctx, jobOfferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByJobSeekerID(ctx context.Context, jobSeekerID int64) ([]domain.Application, error) {
	args := m.Called(ctx, jobSeekerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) Exists(ctx context.Context, jobOfferID, jobSeekerID int64) (bool, error) {
	args := m.Called(ctx, jobOfferID, jobSeekerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) Update(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) ValidateJobSeekerExists(ctx context.Context, jobSeekerID int64) (domain.Presence, error) {
	args := m.Called(ctx, jobSeekerID)
	return args.Get(0).(domain.Presence), args.Error(1)
}

func (m *MockUserDirectory) GetUserDetails(ctx context.Context, userID string) (*domain.UserDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserDetails), args.Error(1)
}

type MockJobOfferDirectory struct {
	mock.Mock
}

func (m *MockJobOfferDirectory) ValidateJobOfferExists(ctx context.Context, jobOfferID int64) (domain.Presence, error) {
	args := m.Called(ctx, jobOfferID)
	return args.Get(0).(domain.Presence), args.Error(1)
}

func newApplicationUC(repo *MockApplicationRepo, users *MockUserDirectory, offers *MockJobOfferDirectory) domain.ApplicationUsecase {
	return usecase.NewApplicationUsecase(repo, users, offers, validator.New())
}

func validCreateInput() domain.CreateApplicationInput {
	return domain.CreateApplicationInput{
		JobSeekerID:      7,
		JobOfferID:       42,
		CvLink:           "https://cdn.example.com/cv/7.pdf",
		MotivationLettre: "I would be a great fit.",
	}
}

func TestApplicationCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should persist with NEW status and a fresh application date", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		users := new(MockUserDirectory)
		offers := new(MockJobOfferDirectory)
		uc := newApplicationUC(repo, users, offers)

		users.On("ValidateJobSeekerExists", ctx, int64(7)).Return(domain.PresenceExists, nil)
		offers.On("ValidateJobOfferExists", ctx, int64(42)).Return(domain.PresenceExists, nil)
		repo.On("Exists", ctx, int64(42), int64(7)).Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)

		before := time.Now()
		app, err := uc.Create(ctx, validCreateInput())

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusNew, app.Status)
		assert.False(t, app.IsFavorite)
		assert.False(t, app.ApplicationDate.Before(before))
		repo.AssertExpectations(t)
	})

	t.Run("Should reject missing ids before any remote call", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		users := new(MockUserDirectory)
		offers := new(MockJobOfferDirectory)
		uc := newApplicationUC(repo, users, offers)

		_, err := uc.Create(ctx, domain.CreateApplicationInput{})

		assert.Error(t, err)
		users.AssertNotCalled(t, "ValidateJobSeekerExists", mock.Anything, mock.Anything)
	})

	t.Run("Should return reference-not-found when the job seeker is absent", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		users := new(MockUserDirectory)
		offers := new(MockJobOfferDirectory)
		uc := newApplicationUC(repo, users, offers)

		users.On("ValidateJobSeekerExists", ctx, int64(7)).Return(domain.PresenceAbsent, nil)

		_, err := uc.Create(ctx, validCreateInput())

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindReferenceNotFound, appErr.Kind)
		assert.Equal(t, 404, appErr.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should fail closed when the user service is unreachable", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		users := new(MockUserDirectory)
		offers := new(MockJobOfferDirectory)
		uc := newApplicationUC(repo, users, offers)

		users.On("ValidateJobSeekerExists", ctx, int64(7)).
			Return(domain.PresenceUnreachable, errors.New("dial tcp: connection refused"))

		_, err := uc.Create(ctx, validCreateInput())

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindReferenceNotFound, appErr.Kind)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should fail closed when the job offer service is unreachable", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		users := new(MockUserDirectory)
		offers := new(MockJobOfferDirectory)
		uc := newApplicationUC(repo, users, offers)

		users.On("ValidateJobSeekerExists", ctx, int64(7)).Return(domain.PresenceExists, nil)
		offers.On("ValidateJobOfferExists", ctx, int64(42)).
			Return(domain.PresenceUnreachable, errors.New("context deadline exceeded"))

		_, err := uc.Create(ctx, validCreateInput())

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindReferenceNotFound, appErr.Kind)
	})

	t.Run("Should reject a duplicate found by the pre-check", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		users := new(MockUserDirectory)
		offers := new(MockJobOfferDirectory)
		uc := newApplicationUC(repo, users, offers)

		users.On("ValidateJobSeekerExists", ctx, int64(7)).Return(domain.PresenceExists, nil)
		offers.On("ValidateJobOfferExists", ctx, int64(42)).Return(domain.PresenceExists, nil)
		repo.On("Exists", ctx, int64(42), int64(7)).Return(true, nil)

		_, err := uc.Create(ctx, validCreateInput())

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindDuplicateApplication, appErr.Kind)
		assert.Equal(t, 409, appErr.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should map a unique-violation on insert to duplicate-application", func(t *testing.T) {
		// Pre-check passed, but a concurrent create won the race. The store
		// surfaces ErrConflict from the unique index.
		repo := new(MockApplicationRepo)
		users := new(MockUserDirectory)
		offers := new(MockJobOfferDirectory)
		uc := newApplicationUC(repo, users, offers)

		users.On("ValidateJobSeekerExists", ctx, int64(7)).Return(domain.PresenceExists, nil)
		offers.On("ValidateJobOfferExists", ctx, int64(42)).Return(domain.PresenceExists, nil)
		repo.On("Exists", ctx, int64(42), int64(7)).Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(domain.ErrConflict)

		_, err := uc.Create(ctx, validCreateInput())

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindDuplicateApplication, appErr.Kind)
		assert.Equal(t, 409, appErr.Code)
	})
}

func TestApplicationUpdatePartial(t *testing.T) {
	ctx := context.Background()

	existing := func() *domain.Application {
		return &domain.Application{
			ID:               "a1",
			JobSeekerID:      7,
			JobOfferID:       42,
			CvLink:           "old-cv",
			MotivationLettre: "old-letter",
			Status:           domain.ApplicationStatusNew,
			IsFavorite:       false,
		}
	}

	t.Run("Should leave absent fields untouched", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		uc := newApplicationUC(repo, new(MockUserDirectory), new(MockJobOfferDirectory))

		repo.On("GetByID", ctx, "a1").Return(existing(), nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)

		newLink := "new-cv"
		app, err := uc.UpdatePartial(ctx, "a1", domain.ApplicationPatch{CvLink: &newLink})

		assert.NoError(t, err)
		assert.Equal(t, "new-cv", app.CvLink)
		assert.Equal(t, "old-letter", app.MotivationLettre)
		assert.Equal(t, domain.ApplicationStatusNew, app.Status)
		assert.Nil(t, app.LastStatusChange)
	})

	t.Run("Should stamp last status change when the patch carries a status", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		uc := newApplicationUC(repo, new(MockUserDirectory), new(MockJobOfferDirectory))

		repo.On("GetByID", ctx, "a1").Return(existing(), nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)

		status := domain.ApplicationStatusUnderReview
		app, err := uc.UpdatePartial(ctx, "a1", domain.ApplicationPatch{Status: &status})

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusUnderReview, app.Status)
		assert.NotNil(t, app.LastStatusChange)
	})

	t.Run("Should apply a provided zero value", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		uc := newApplicationUC(repo, new(MockUserDirectory), new(MockJobOfferDirectory))

		fav := existing()
		fav.IsFavorite = true
		repo.On("GetByID", ctx, "a1").Return(fav, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)

		off := false
		app, err := uc.UpdatePartial(ctx, "a1", domain.ApplicationPatch{IsFavorite: &off})

		assert.NoError(t, err)
		assert.False(t, app.IsFavorite)
	})

	t.Run("Should return not-found for an unknown id", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		uc := newApplicationUC(repo, new(MockUserDirectory), new(MockJobOfferDirectory))

		repo.On("GetByID", ctx, "missing").Return(nil, domain.ErrNotFound)

		_, err := uc.UpdatePartial(ctx, "missing", domain.ApplicationPatch{})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestApplicationUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Should accept any status move and stamp the change", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		uc := newApplicationUC(repo, new(MockUserDirectory), new(MockJobOfferDirectory))

		repo.On("GetByID", ctx, "a1").Return(&domain.Application{
			ID:     "a1",
			Status: domain.ApplicationStatusRejected,
		}, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)

		// REJECTED back to UNDER_REVIEW is allowed: no transition graph.
		app, err := uc.UpdateStatus(ctx, "a1", domain.ApplicationStatusUnderReview)

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusUnderReview, app.Status)
		assert.NotNil(t, app.LastStatusChange)
	})
}

func TestApplicationCheckDuplicate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should report existence without side effects", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		uc := newApplicationUC(repo, new(MockUserDirectory), new(MockJobOfferDirectory))

		repo.On("Exists", ctx, int64(42), int64(7)).Return(true, nil)

		exists, err := uc.CheckDuplicate(ctx, 42, 7)

		assert.NoError(t, err)
		assert.True(t, exists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
