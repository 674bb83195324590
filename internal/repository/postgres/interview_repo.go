package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobify-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

// NewInterviewRepository creates a new interview repository
func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

const interviewColumns = `id, application_id, job_seeker_id, recruiter_id, scheduled_date,
		duration, location, interview_type, status, notes, meeting_link, created_at, updated_at`

// Create inserts a new interview. The partial unique index on
// (application_id) WHERE status IN ('SCHEDULED','RESCHEDULED') makes the
// store the authoritative active-interview guard; a colliding insert
// returns domain.ErrConflict.
func (r *interviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	query := `
		INSERT INTO interviews (application_id, job_seeker_id, recruiter_id, scheduled_date,
			duration, location, interview_type, status, notes, meeting_link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	now := time.Now()
	iv.CreatedAt = now
	iv.UpdatedAt = now
	if iv.Status == "" {
		iv.Status = domain.InterviewStatusScheduled
	}

	err := r.db.QueryRow(ctx, query,
		iv.ApplicationID,
		iv.JobSeekerID,
		iv.RecruiterID,
		iv.ScheduledDate,
		iv.Duration,
		iv.Location,
		iv.InterviewType,
		iv.Status,
		iv.Notes,
		iv.MeetingLink,
		iv.CreatedAt,
		iv.UpdatedAt,
	).Scan(&iv.ID)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

// GetByID retrieves an interview by ID
func (r *interviewRepo) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`

	var iv domain.Interview
	err := r.db.QueryRow(ctx, query, id).Scan(
		&iv.ID, &iv.ApplicationID, &iv.JobSeekerID, &iv.RecruiterID, &iv.ScheduledDate,
		&iv.Duration, &iv.Location, &iv.InterviewType, &iv.Status, &iv.Notes,
		&iv.MeetingLink, &iv.CreatedAt, &iv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &iv, nil
}

func (r *interviewRepo) queryList(ctx context.Context, query string, args ...interface{}) ([]domain.Interview, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []domain.Interview
	for rows.Next() {
		var iv domain.Interview
		if err := rows.Scan(
			&iv.ID, &iv.ApplicationID, &iv.JobSeekerID, &iv.RecruiterID, &iv.ScheduledDate,
			&iv.Duration, &iv.Location, &iv.InterviewType, &iv.Status, &iv.Notes,
			&iv.MeetingLink, &iv.CreatedAt, &iv.UpdatedAt,
		); err != nil {
			return nil, err
		}
		interviews = append(interviews, iv)
	}
	return interviews, rows.Err()
}

// GetByApplicationID retrieves all interviews for an application
func (r *interviewRepo) GetByApplicationID(ctx context.Context, applicationID string) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE application_id = $1 ORDER BY scheduled_date DESC`
	return r.queryList(ctx, query, applicationID)
}

// GetByJobSeekerID retrieves all interviews for a job seeker
func (r *interviewRepo) GetByJobSeekerID(ctx context.Context, jobSeekerID string) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE job_seeker_id = $1 ORDER BY scheduled_date DESC`
	return r.queryList(ctx, query, jobSeekerID)
}

// GetByRecruiterID retrieves all interviews held by a recruiter
func (r *interviewRepo) GetByRecruiterID(ctx context.Context, recruiterID string) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE recruiter_id = $1 ORDER BY scheduled_date DESC`
	return r.queryList(ctx, query, recruiterID)
}

// GetUpcomingByJobSeekerID retrieves a job seeker's active future interviews,
// soonest first
func (r *interviewRepo) GetUpcomingByJobSeekerID(ctx context.Context, jobSeekerID string, now time.Time) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
		WHERE job_seeker_id = $1 AND scheduled_date > $2 AND status = ANY($3)
		ORDER BY scheduled_date ASC`
	return r.queryList(ctx, query, jobSeekerID, now, activeStatusStrings())
}

// GetUpcomingByRecruiterID retrieves a recruiter's active future interviews,
// soonest first
func (r *interviewRepo) GetUpcomingByRecruiterID(ctx context.Context, recruiterID string, now time.Time) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
		WHERE recruiter_id = $1 AND scheduled_date > $2 AND status = ANY($3)
		ORDER BY scheduled_date ASC`
	return r.queryList(ctx, query, recruiterID, now, activeStatusStrings())
}

// HasActive checks whether the application already has a SCHEDULED or
// RESCHEDULED interview
func (r *interviewRepo) HasActive(ctx context.Context, applicationID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM interviews WHERE application_id = $1 AND status = ANY($2))`
	var exists bool
	err := r.db.QueryRow(ctx, query, applicationID, activeStatusStrings()).Scan(&exists)
	return exists, err
}

// Update persists every mutable field and refreshes updated_at
func (r *interviewRepo) Update(ctx context.Context, iv *domain.Interview) error {
	query := `
		UPDATE interviews
		SET scheduled_date = $2, duration = $3, location = $4, interview_type = $5,
			status = $6, notes = $7, meeting_link = $8, updated_at = $9
		WHERE id = $1`

	iv.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		iv.ID,
		iv.ScheduledDate,
		iv.Duration,
		iv.Location,
		iv.InterviewType,
		iv.Status,
		iv.Notes,
		iv.MeetingLink,
		iv.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindScheduledBetween retrieves SCHEDULED interviews whose date falls in
// [start, end], the candidate set for reminder emission
func (r *interviewRepo) FindScheduledBetween(ctx context.Context, start, end time.Time) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
		WHERE scheduled_date BETWEEN $1 AND $2 AND status = $3
		ORDER BY scheduled_date ASC`
	return r.queryList(ctx, query, start, end, domain.InterviewStatusScheduled)
}

// CountByRecruiterAndStatus counts a recruiter's interviews in one status
func (r *interviewRepo) CountByRecruiterAndStatus(ctx context.Context, recruiterID string, status domain.InterviewStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM interviews WHERE recruiter_id = $1 AND status = $2`
	var count int64
	err := r.db.QueryRow(ctx, query, recruiterID, status).Scan(&count)
	return count, err
}

func activeStatusStrings() []string {
	statuses := domain.ActiveInterviewStatuses()
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
