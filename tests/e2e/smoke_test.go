package e2e

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Smoke Tests
// =============================================================================

// TestE2E_HealthCheck verifies the server is running and responding.
func TestE2E_HealthCheck(t *testing.T) {
	resp := HTTPGet(t, baseURL+"/health")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

// TestE2E_ReadyCheck verifies the database is reachable.
func TestE2E_ReadyCheck(t *testing.T) {
	resp := HTTPGet(t, baseURL+"/ready")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestE2E_OpenAPIDocument verifies the API description is served.
func TestE2E_OpenAPIDocument(t *testing.T) {
	resp := HTTPGet(t, baseURL+"/openapi.json")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		OpenAPI string         `json:"openapi"`
		Paths   map[string]any `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Contains(t, doc.Paths, "/planets")
}

// TestE2E_FixturesLoaded verifies the seed fixtures are queryable.
func TestE2E_FixturesLoaded(t *testing.T) {
	resp := GetPlanetByName(t, "Yavin IV")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	planet := decode[Planet](t, resp)
	assert.Equal(t, "jungle, rainforests", planet.Terrain)

	arid := ListPlanets(t, "", "arid")
	require.Len(t, arid, 1)
	assert.Equal(t, "Tatooine", arid[0].Name)
}
