package usecase

import (
	"context"

	"go-jobify-backend/internal/domain"
)

// localApplicationGateway adapts the in-process application usecase to the
// domain.ApplicationGateway contract, for single-binary deployments where
// both engines share a process. The interview engine still crosses the
// ownership boundary only through the application engine's public
// operations, never through its store.
type localApplicationGateway struct {
	applications domain.ApplicationUsecase
}

// NewLocalApplicationGateway wraps the application usecase as a gateway.
func NewLocalApplicationGateway(applications domain.ApplicationUsecase) domain.ApplicationGateway {
	return &localApplicationGateway{applications: applications}
}

func (g *localApplicationGateway) GetApplicationByID(ctx context.Context, id string) (*domain.ApplicationDetails, error) {
	app, err := g.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.ApplicationDetails{
		ID:          app.ID,
		JobSeekerID: app.JobSeekerID,
		JobOfferID:  app.JobOfferID,
		Status:      app.Status,
	}, nil
}

func (g *localApplicationGateway) UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	_, err := g.applications.UpdateStatus(ctx, id, status)
	return err
}
