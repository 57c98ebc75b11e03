// Package validation provides pure validation functions for API handlers.
//
// All functions are pure (no I/O, no side effects). Handlers call them before
// touching the service layer so invalid requests never reach storage.
//
// # Functions
//
//   - ValidateCreatePlanetFields: Validate required fields for planet creation
//   - ParsePlanetID: Parse a planet id path parameter
//
// # Usage
//
//	if field, msg := validation.ValidateCreatePlanetFields(name, climate, terrain); field != "" {
//	    // Return 422 Unprocessable Entity with msg
//	}
package validation
