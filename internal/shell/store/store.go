package store

import (
	"context"

	"github.com/artpar/swplanet/internal/core/domain"
)

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the persistence interface for planets.
type Store interface {
	// Planet operations
	CreatePlanet(ctx context.Context, planet *domain.Planet) error
	GetPlanet(ctx context.Context, id int64) (*domain.Planet, error)
	GetPlanetByName(ctx context.Context, name string) (*domain.Planet, error)
	ListPlanets(ctx context.Context, query domain.PlanetQuery) ([]domain.Planet, error)
	DeletePlanet(ctx context.Context, id int64) error

	// Transaction support
	WithTx(ctx context.Context, fn func(Store) error) error

	// Health
	Ping(ctx context.Context) error

	// Lifecycle
	Close() error
}
