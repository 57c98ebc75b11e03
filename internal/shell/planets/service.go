// Package planets provides the planet service.
// This is part of the Imperative Shell - it delegates to the store and adds no
// transformation of its own.
package planets

import (
	"context"
	"log/slog"

	"github.com/artpar/swplanet/internal/core/domain"
	"github.com/artpar/swplanet/internal/shell/store"
)

// =============================================================================
// Planet Service
// =============================================================================

// Service orchestrates store calls for the planet API.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// NewService creates a new planet service.
func NewService(s store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  s,
		logger: logger,
	}
}

// List returns planets matching terrain and climate case-insensitively.
// Empty values leave the field unconstrained.
func (s *Service) List(ctx context.Context, terrain, climate string) ([]domain.Planet, error) {
	return s.store.ListPlanets(ctx, domain.NewPlanetQuery(terrain, climate))
}

// Create persists a new planet and returns it with its assigned id.
// Store conflicts (duplicate name, blank field) are returned unchanged.
func (s *Service) Create(ctx context.Context, planet *domain.Planet) (*domain.Planet, error) {
	created := &domain.Planet{
		Name:    planet.Name,
		Climate: planet.Climate,
		Terrain: planet.Terrain,
	}
	if err := s.store.CreatePlanet(ctx, created); err != nil {
		return nil, err
	}

	s.logger.Info("planet created", "planet_id", created.ID, "name", created.Name)
	return created, nil
}

// Get returns the planet with the given id. The bool is false when no such
// planet exists.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Planet, bool, error) {
	return found(s.store.GetPlanet(ctx, id))
}

// GetByName returns the planet with exactly the given name.
func (s *Service) GetByName(ctx context.Context, name string) (*domain.Planet, bool, error) {
	return found(s.store.GetPlanetByName(ctx, name))
}

// Remove deletes the planet with the given id.
// Returns store.ErrNotFound (wrapped) when the planet does not exist.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.store.DeletePlanet(ctx, id); err != nil {
		return err
	}

	s.logger.Info("planet removed", "planet_id", id)
	return nil
}

func found(p *domain.Planet, err error) (*domain.Planet, bool, error) {
	if err != nil {
		if store.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return p, true, nil
}
