package api

import (
	"context"

	"github.com/rpgo/lifeplan/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_projector.go -package=mocks

// Projector runs a projection. *calculation.Engine satisfies it.
type Projector interface {
	Project(ctx context.Context, in *domain.ProjectionInput) (*domain.ProjectionResult, error)
}
