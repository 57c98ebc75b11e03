// Package seed loads planet fixtures from YAML files into the store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/artpar/swplanet/internal/core/domain"
	"github.com/artpar/swplanet/internal/shell/store"
	"gopkg.in/yaml.v3"
)

// ErrEmptySeed is returned when a seed document contains no planets.
var ErrEmptySeed = errors.New("seed file contains no planets")

// entry is one planet in a seed document.
type entry struct {
	Name    string `yaml:"name"`
	Climate string `yaml:"climate"`
	Terrain string `yaml:"terrain"`
}

// Result reports what Apply did.
type Result struct {
	Created int
	Skipped int
}

// =============================================================================
// Parsing
// =============================================================================

// Parse decodes a YAML sequence of planets and validates every entry.
//
// Example document:
//
//	- name: Tatooine
//	  climate: arid
//	  terrain: desert
func Parse(data []byte) ([]domain.Planet, error) {
	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrEmptySeed
	}

	planets := make([]domain.Planet, 0, len(entries))
	for i, e := range entries {
		p, err := domain.NewPlanet(e.Name, e.Climate, e.Terrain)
		if err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		planets = append(planets, *p)
	}
	return planets, nil
}

// LoadFile reads and parses the seed file at path.
func LoadFile(path string) ([]domain.Planet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// =============================================================================
// Applying
// =============================================================================

// Apply inserts planets in a single transaction. Planets whose name already
// exists are skipped, so applying the same file twice is a no-op.
func Apply(ctx context.Context, s store.Store, planets []domain.Planet, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var res Result
	err := s.WithTx(ctx, func(tx store.Store) error {
		res = Result{}
		for i := range planets {
			p := planets[i]
			_, err := tx.GetPlanetByName(ctx, p.Name)
			if err == nil {
				res.Skipped++
				continue
			}
			if !store.IsNotFound(err) {
				return err
			}

			p.ID = 0
			if err := tx.CreatePlanet(ctx, &p); err != nil {
				return err
			}
			res.Created++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logger.Info("seed applied", "created", res.Created, "skipped", res.Skipped)
	return res, nil
}

// ApplyFile loads the seed file at path and applies it.
func ApplyFile(ctx context.Context, s store.Store, path string, logger *slog.Logger) (Result, error) {
	planets, err := LoadFile(path)
	if err != nil {
		return Result{}, err
	}
	return Apply(ctx, s, planets, logger)
}
