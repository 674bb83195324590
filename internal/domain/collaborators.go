package domain

import "context"

// Presence is the tri-state outcome of a remote existence check. The
// externally observed policy is fail-closed: Absent and Unreachable collapse
// to the same "reference not found" failure, but the engine keeps the two
// apart internally so the policy stays auditable and swappable.
type Presence int

const (
	PresenceExists Presence = iota
	PresenceAbsent
	PresenceUnreachable
)

func (p Presence) String() string {
	switch p {
	case PresenceExists:
		return "exists"
	case PresenceAbsent:
		return "absent"
	default:
		return "unreachable"
	}
}

// UserDetails is the denormalized display payload fetched from the user
// service. Consumed best-effort only.
type UserDetails struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// UserDirectory is the client capability against the user service.
type UserDirectory interface {
	// ValidateJobSeekerExists checks that a job seeker id is known. On
	// PresenceUnreachable the returned error carries the transport cause.
	ValidateJobSeekerExists(ctx context.Context, jobSeekerID int64) (Presence, error)
	// GetUserDetails fetches display details for a user; callers must
	// tolerate failure.
	GetUserDetails(ctx context.Context, userID string) (*UserDetails, error)
}

// JobOfferDirectory is the client capability against the job-offer service.
type JobOfferDirectory interface {
	ValidateJobOfferExists(ctx context.Context, jobOfferID int64) (Presence, error)
}

// ApplicationDetails is the subset of an application the interview engine
// needs from across the service boundary.
type ApplicationDetails struct {
	ID          string            `json:"id"`
	JobSeekerID int64             `json:"job_seeker_id"`
	JobOfferID  int64             `json:"job_offer_id"`
	Status      ApplicationStatus `json:"status"`
}

// ApplicationGateway is how the interview engine reaches the application
// engine. It is the only path across the ownership boundary: never the
// application store directly.
type ApplicationGateway interface {
	GetApplicationByID(ctx context.Context, id string) (*ApplicationDetails, error)
	UpdateApplicationStatus(ctx context.Context, id string, status ApplicationStatus) error
}

// NotificationSink receives interview lifecycle events, fire-and-forget.
// Implementations must not fail the triggering operation.
type NotificationSink interface {
	InterviewScheduled(iv *Interview)
	InterviewUpdated(iv *Interview)
	InterviewCancelled(iv *Interview)
	InterviewReminder(iv *Interview)
}
