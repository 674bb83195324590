package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobify-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the SQLSTATE raised when an insert hits a unique index.
// The compound index on (job_offer_id, job_seeker_id) makes the store the
// authoritative duplicate guard; the usecase pre-check is only a fast path.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `id, job_seeker_id, job_offer_id, cv_link, motivation_lettre,
		status, ai_score, is_favorite, application_date, last_status_change, created_at, updated_at`

// Create inserts a new application. Returns domain.ErrConflict when the
// (job_offer_id, job_seeker_id) unique index rejects the row.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (id, job_seeker_id, job_offer_id, cv_link, motivation_lettre,
			status, ai_score, is_favorite, application_date, last_status_change, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now()
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	app.CreatedAt = now
	app.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		app.ID,
		app.JobSeekerID,
		app.JobOfferID,
		app.CvLink,
		app.MotivationLettre,
		app.Status,
		app.AiScore,
		app.IsFavorite,
		app.ApplicationDate,
		app.LastStatusChange,
		app.CreatedAt,
		app.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	err := row.Scan(
		&app.ID, &app.JobSeekerID, &app.JobOfferID, &app.CvLink, &app.MotivationLettre,
		&app.Status, &app.AiScore, &app.IsFavorite, &app.ApplicationDate,
		&app.LastStatusChange, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// GetByID retrieves an application by ID
func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	return scanApplication(r.db.QueryRow(ctx, query, id))
}

func (r *applicationRepo) queryList(ctx context.Context, query string, args ...interface{}) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobSeekerID, &app.JobOfferID, &app.CvLink, &app.MotivationLettre,
			&app.Status, &app.AiScore, &app.IsFavorite, &app.ApplicationDate,
			&app.LastStatusChange, &app.CreatedAt, &app.UpdatedAt,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// GetAll retrieves every application, newest first
func (r *applicationRepo) GetAll(ctx context.Context) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY application_date DESC`
	return r.queryList(ctx, query)
}

// GetByJobOfferID retrieves all applications against a job offer
func (r *applicationRepo) GetByJobOfferID(ctx context.Context, jobOfferID int64) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_offer_id = $1 ORDER BY application_date DESC`
	return r.queryList(ctx, query, jobOfferID)
}

// GetByJobSeekerID retrieves all applications submitted by a job seeker
func (r *applicationRepo) GetByJobSeekerID(ctx context.Context, jobSeekerID int64) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_seeker_id = $1 ORDER BY application_date DESC`
	return r.queryList(ctx, query, jobSeekerID)
}

// Exists checks whether an application already exists for the job offer /
// job seeker combination
func (r *applicationRepo) Exists(ctx context.Context, jobOfferID, jobSeekerID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_offer_id = $1 AND job_seeker_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, jobOfferID, jobSeekerID).Scan(&exists)
	return exists, err
}

// Update persists every mutable field and refreshes updated_at
func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	query := `
		UPDATE applications
		SET cv_link = $2, motivation_lettre = $3, status = $4, ai_score = $5,
			is_favorite = $6, last_status_change = $7, updated_at = $8
		WHERE id = $1`

	app.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		app.ID,
		app.CvLink,
		app.MotivationLettre,
		app.Status,
		app.AiScore,
		app.IsFavorite,
		app.LastStatusChange,
		app.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the application row. Hard delete: applications carry no
// soft-delete marker.
func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
