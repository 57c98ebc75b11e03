package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// API Types
// =============================================================================

// Planet mirrors the planet JSON returned by the API.
type Planet struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Climate string `json:"climate"`
	Terrain string `json:"terrain"`
}

// APIError mirrors the error body returned by the API.
type APIError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// =============================================================================
// API Client Helpers
// =============================================================================

// doRequest sends a JSON request and returns the raw response.
func doRequest(t *testing.T, method, target string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := testClient.Do(req)
	require.NoError(t, err)
	return resp
}

// decode reads a JSON body into T and closes it.
func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// CreatePlanet posts a planet and requires 201.
func CreatePlanet(t *testing.T, name, climate, terrain string) Planet {
	t.Helper()

	resp := doRequest(t, http.MethodPost, baseURL+"/planets", map[string]string{
		"name":    name,
		"climate": climate,
		"terrain": terrain,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[Planet](t, resp)
}

// GetPlanet fetches a planet by id and returns the raw response.
func GetPlanet(t *testing.T, id int64) *http.Response {
	t.Helper()
	return doRequest(t, http.MethodGet, baseURL+"/planets/"+strconv.FormatInt(id, 10), nil)
}

// GetPlanetByName fetches a planet by exact name and returns the raw response.
func GetPlanetByName(t *testing.T, name string) *http.Response {
	t.Helper()
	return doRequest(t, http.MethodGet, baseURL+"/planets/name/"+url.PathEscape(name), nil)
}

// ListPlanets lists planets with optional terrain and climate filters.
func ListPlanets(t *testing.T, terrain, climate string) []Planet {
	t.Helper()

	q := url.Values{}
	if terrain != "" {
		q.Set("terrain", terrain)
	}
	if climate != "" {
		q.Set("climate", climate)
	}
	target := baseURL + "/planets"
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	resp := doRequest(t, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[[]Planet](t, resp)
}

// DeletePlanet deletes a planet by id and returns the status code.
func DeletePlanet(t *testing.T, id int64) int {
	t.Helper()

	resp := doRequest(t, http.MethodDelete, baseURL+"/planets/"+strconv.FormatInt(id, 10), nil)
	resp.Body.Close()
	return resp.StatusCode
}

// HTTPGet performs a GET request.
func HTTPGet(t *testing.T, target string) *http.Response {
	t.Helper()
	return doRequest(t, http.MethodGet, target, nil)
}

// UniqueName returns a planet name no other test uses.
func UniqueName(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}
