// Package domain contains the core domain types and validation logic.
// This is part of the Functional Core - all functions are pure with no I/O.
package domain

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrValidation is the category error for every field validation failure.
	ErrValidation = errors.New("validation error")

	ErrNameRequired    = fmt.Errorf("%w: name is required", ErrValidation)
	ErrClimateRequired = fmt.Errorf("%w: climate is required", ErrValidation)
	ErrTerrainRequired = fmt.Errorf("%w: terrain is required", ErrValidation)
)

// =============================================================================
// Planet
// =============================================================================

// Planet is the single resource managed by the service.
// ID is assigned by storage and never changes afterwards.
type Planet struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Climate string `json:"climate"`
	Terrain string `json:"terrain"`
}

// NewPlanet creates a planet that has not been persisted yet.
func NewPlanet(name, climate, terrain string) (*Planet, error) {
	p := &Planet{
		Name:    name,
		Climate: climate,
		Terrain: terrain,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that every required field is present and not blank.
func (p *Planet) Validate() error {
	if IsBlank(p.Name) {
		return ErrNameRequired
	}
	if IsBlank(p.Climate) {
		return ErrClimateRequired
	}
	if IsBlank(p.Terrain) {
		return ErrTerrainRequired
	}
	return nil
}

// IsBlank reports whether s is empty or contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// =============================================================================
// PlanetQuery
// =============================================================================

// PlanetQuery is a partially populated planet used as a query example.
// A nil field is unconstrained; a set field must match case-insensitively.
type PlanetQuery struct {
	Name    *string
	Climate *string
	Terrain *string
}

// NewPlanetQuery builds a query from optional terrain and climate values.
// Empty strings are treated as absent.
func NewPlanetQuery(terrain, climate string) PlanetQuery {
	return PlanetQuery{
		Climate: optional(climate),
		Terrain: optional(terrain),
	}
}

// CompareFold orders a and b after Unicode case folding.
// Values that differ only in letter case compare equal.
func CompareFold(a, b string) int {
	return strings.Compare(cases.Fold().String(a), cases.Fold().String(b))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
