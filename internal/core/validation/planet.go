package validation

import (
	"strconv"

	"github.com/artpar/swplanet/internal/core/domain"
)

// =============================================================================
// Planet Validation Functions
// =============================================================================

// ValidateCreatePlanetFields validates required fields for planet creation.
// Returns the field name and error message if validation fails.
// Returns empty strings if all fields are valid.
//
// Example:
//
//	field, msg := ValidateCreatePlanetFields("Tatooine", "arid", "desert")
//	if field != "" {
//	    // Handle validation error
//	}
func ValidateCreatePlanetFields(name, climate, terrain string) (field, message string) {
	if domain.IsBlank(name) {
		return "name", "name is required"
	}
	if domain.IsBlank(climate) {
		return "climate", "climate is required"
	}
	if domain.IsBlank(terrain) {
		return "terrain", "terrain is required"
	}
	return "", ""
}

// ParsePlanetID parses a planet identifier taken from a URL path.
// Identifiers are positive integers assigned by storage.
func ParsePlanetID(raw string) (id int64, ok bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
