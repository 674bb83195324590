package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound = errors.New("resource not found")
	// ErrConflict is returned by stores when an insert collides with a
	// uniqueness constraint (duplicate application, second active interview).
	ErrConflict = errors.New("resource conflict")
)

// ApplicationStatus is the lifecycle status of a job application.
type ApplicationStatus string

const (
	ApplicationStatusPending            ApplicationStatus = "PENDING"
	ApplicationStatusNew                ApplicationStatus = "NEW"
	ApplicationStatusUnderReview        ApplicationStatus = "UNDER_REVIEW"
	ApplicationStatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	ApplicationStatusInterviewAnnulled  ApplicationStatus = "INTERVIEW_ANNULLED"
	ApplicationStatusOfferPending       ApplicationStatus = "OFFER_PENDING"
	ApplicationStatusAccepted           ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected           ApplicationStatus = "REJECTED"
)

// ParseApplicationStatus converts a raw string to an ApplicationStatus,
// returning an error for unknown values.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case ApplicationStatusPending, ApplicationStatusNew, ApplicationStatusUnderReview,
		ApplicationStatusInterviewScheduled, ApplicationStatusInterviewAnnulled,
		ApplicationStatusOfferPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// Application is a job seeker's submission against a specific job offer.
// Any status may move to any other status: there is no transition graph on
// applications, because remote collaborators (the interview engine, the AI
// ranking service) push statuses directly.
type Application struct {
	ID               string            `json:"id"`
	JobSeekerID      int64             `json:"job_seeker_id"`
	JobOfferID       int64             `json:"job_offer_id"`
	CvLink           string            `json:"cv_link"`
	MotivationLettre string            `json:"motivation_lettre"`
	Status           ApplicationStatus `json:"status"`
	AiScore          *float64          `json:"ai_score,omitempty"`
	IsFavorite       bool              `json:"is_favorite"`
	ApplicationDate  time.Time         `json:"application_date"`
	LastStatusChange *time.Time        `json:"last_status_change,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// ApplicationPatch carries a partial update. Nil means "field not provided,
// leave untouched", distinct from a provided zero value.
type ApplicationPatch struct {
	CvLink           *string            `json:"cv_link,omitempty"`
	MotivationLettre *string            `json:"motivation_lettre,omitempty"`
	AiScore          *float64           `json:"ai_score,omitempty"`
	IsFavorite       *bool              `json:"is_favorite,omitempty"`
	Status           *ApplicationStatus `json:"status,omitempty"`
}

// CreateApplicationInput is the payload for creating an application.
type CreateApplicationInput struct {
	JobSeekerID      int64              `json:"job_seeker_id" validate:"required,gt=0"`
	JobOfferID       int64              `json:"job_offer_id" validate:"required,gt=0"`
	CvLink           string             `json:"cv_link"`
	MotivationLettre string             `json:"motivation_lettre"`
	Status           *ApplicationStatus `json:"status,omitempty"`
	IsFavorite       *bool              `json:"is_favorite,omitempty"`
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	GetAll(ctx context.Context) ([]Application, error)
	GetByJobOfferID(ctx context.Context, jobOfferID int64) ([]Application, error)
	GetByJobSeekerID(ctx context.Context, jobSeekerID int64) ([]Application, error)
	Exists(ctx context.Context, jobOfferID, jobSeekerID int64) (bool, error)
	Update(ctx context.Context, app *Application) error
	Delete(ctx context.Context, id string) error
}

// ApplicationUsecase defines business logic for the application lifecycle
type ApplicationUsecase interface {
	Create(ctx context.Context, in CreateApplicationInput) (*Application, error)
	GetByID(ctx context.Context, id string) (*Application, error)
	GetAll(ctx context.Context) ([]Application, error)
	GetByJobOfferID(ctx context.Context, jobOfferID int64) ([]Application, error)
	GetByJobSeekerID(ctx context.Context, jobSeekerID int64) ([]Application, error)
	UpdatePartial(ctx context.Context, id string, patch ApplicationPatch) (*Application, error)
	UpdateStatus(ctx context.Context, id string, status ApplicationStatus) (*Application, error)
	UpdateAiScore(ctx context.Context, id string, score float64) (*Application, error)
	Delete(ctx context.Context, id string) error
	CheckDuplicate(ctx context.Context, jobOfferID, jobSeekerID int64) (bool, error)
}
