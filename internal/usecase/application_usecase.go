package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobify-backend/internal/domain"
	"go-jobify-backend/pkg/apperror"
	"go-jobify-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	users           domain.UserDirectory
	jobOffers       domain.JobOfferDirectory
	validate        *validator.Validate
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	users domain.UserDirectory,
	jobOffers domain.JobOfferDirectory,
	validate *validator.Validate,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		users:           users,
		jobOffers:       jobOffers,
		validate:        validate,
	}
}

// failClosed collapses a tri-state presence result to the externally visible
// fail-closed outcome: anything short of a confirmed "exists", including the
// owning service being unreachable, becomes ReferenceNotFound. This is the
// single decision point for the policy.
func failClosed(entity string, id interface{}, presence domain.Presence, err error) error {
	switch presence {
	case domain.PresenceExists:
		return nil
	case domain.PresenceUnreachable:
		logger.Log.Warn("remote validation unreachable, failing closed",
			"entity", entity, "id", id, "error", err)
		return apperror.ReferenceNotFound(entity, id, err)
	default:
		return apperror.ReferenceNotFound(entity, id, nil)
	}
}

// Create validates both remote references, guards against duplicates and
// persists a new application.
func (uc *applicationUsecase) Create(ctx context.Context, in domain.CreateApplicationInput) (*domain.Application, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	// 1. Validate the job seeker exists (fail-closed)
	presence, err := uc.users.ValidateJobSeekerExists(ctx, in.JobSeekerID)
	if err := failClosed("JobSeeker", in.JobSeekerID, presence, err); err != nil {
		return nil, err
	}

	// 2. Validate the job offer exists (fail-closed)
	presence, err = uc.jobOffers.ValidateJobOfferExists(ctx, in.JobOfferID)
	if err := failClosed("JobOffer", in.JobOfferID, presence, err); err != nil {
		return nil, err
	}

	// 3. Duplicate pre-check (fast path; the unique index is authoritative)
	exists, err := uc.applicationRepo.Exists(ctx, in.JobOfferID, in.JobSeekerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.DuplicateApplication()
	}

	// 4. Persist
	status := domain.ApplicationStatusNew
	if in.Status != nil {
		status = *in.Status
	}
	isFavorite := false
	if in.IsFavorite != nil {
		isFavorite = *in.IsFavorite
	}

	app := &domain.Application{
		JobSeekerID:      in.JobSeekerID,
		JobOfferID:       in.JobOfferID,
		CvLink:           in.CvLink,
		MotivationLettre: in.MotivationLettre,
		Status:           status,
		IsFavorite:       isFavorite,
		ApplicationDate:  time.Now(),
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.DuplicateApplication()
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

func (uc *applicationUsecase) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found with ID: " + id)
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

func (uc *applicationUsecase) GetAll(ctx context.Context) ([]domain.Application, error) {
	return uc.applicationRepo.GetAll(ctx)
}

func (uc *applicationUsecase) GetByJobOfferID(ctx context.Context, jobOfferID int64) ([]domain.Application, error) {
	return uc.applicationRepo.GetByJobOfferID(ctx, jobOfferID)
}

func (uc *applicationUsecase) GetByJobSeekerID(ctx context.Context, jobSeekerID int64) ([]domain.Application, error) {
	return uc.applicationRepo.GetByJobSeekerID(ctx, jobSeekerID)
}

// UpdatePartial applies only the fields present in the patch. A present
// status also stamps last_status_change.
func (uc *applicationUsecase) UpdatePartial(ctx context.Context, id string, patch domain.ApplicationPatch) (*domain.Application, error) {
	app, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		app.Status = *patch.Status
		now := time.Now()
		app.LastStatusChange = &now
	}
	if patch.CvLink != nil {
		app.CvLink = *patch.CvLink
	}
	if patch.MotivationLettre != nil {
		app.MotivationLettre = *patch.MotivationLettre
	}
	if patch.AiScore != nil {
		app.AiScore = patch.AiScore
	}
	if patch.IsFavorite != nil {
		app.IsFavorite = *patch.IsFavorite
	}

	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}
	return app, nil
}

// UpdateStatus moves the application to the given status. No transition
// graph is enforced: collaborators push statuses directly and the source
// system accepts any move.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	app, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	app.Status = status
	now := time.Now()
	app.LastStatusChange = &now

	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}
	return app, nil
}

// UpdateAiScore records the ranking produced by the AI scoring collaborator.
// The score itself is never validated here.
func (uc *applicationUsecase) UpdateAiScore(ctx context.Context, id string, score float64) (*domain.Application, error) {
	app, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	app.AiScore = &score

	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}
	return app, nil
}

func (uc *applicationUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.applicationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found with ID: " + id)
		}
		return apperror.Internal(err)
	}
	return nil
}

// CheckDuplicate is the side-effect-free existence probe exposed so callers
// can pre-empt a failing create.
func (uc *applicationUsecase) CheckDuplicate(ctx context.Context, jobOfferID, jobSeekerID int64) (bool, error) {
	return uc.applicationRepo.Exists(ctx, jobOfferID, jobSeekerID)
}
