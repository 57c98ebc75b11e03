package planets

import (
	"context"
	"errors"
	"testing"

	"github.com/artpar/swplanet/internal/core/domain"
	"github.com/artpar/swplanet/internal/shell/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

// testStore creates a test SQLite store
func testStore(t *testing.T) store.Store {
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// failingStore returns err from every operation.
type failingStore struct {
	store.Store
	err error
}

func (f *failingStore) GetPlanet(ctx context.Context, id int64) (*domain.Planet, error) {
	return nil, f.err
}

func (f *failingStore) GetPlanetByName(ctx context.Context, name string) (*domain.Planet, error) {
	return nil, f.err
}

func (f *failingStore) ListPlanets(ctx context.Context, q domain.PlanetQuery) ([]domain.Planet, error) {
	return nil, f.err
}

func seed(t *testing.T, svc *Service) []*domain.Planet {
	t.Helper()
	ctx := context.Background()
	var out []*domain.Planet
	for _, p := range []domain.Planet{
		{Name: "Tatooine", Climate: "arid", Terrain: "desert"},
		{Name: "Alderaan", Climate: "temperate", Terrain: "grasslands, mountains"},
		{Name: "Yavin IV", Climate: "temperate, tropical", Terrain: "jungle, rainforests"},
	} {
		created, err := svc.Create(ctx, &p)
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

// =============================================================================
// Create Tests
// =============================================================================

func TestCreate_ReturnsPlanetWithID(t *testing.T) {
	svc := NewService(testStore(t), nil)

	input := &domain.Planet{Name: "Tatooine", Climate: "arid", Terrain: "desert"}
	created, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Positive(t, created.ID)
	assert.Equal(t, "Tatooine", created.Name)
	assert.Equal(t, "arid", created.Climate)
	assert.Equal(t, "desert", created.Terrain)
	assert.Zero(t, input.ID, "input planet is not mutated")
}

func TestCreate_IgnoresClientSuppliedID(t *testing.T) {
	svc := NewService(testStore(t), nil)

	created, err := svc.Create(context.Background(), &domain.Planet{ID: 77, Name: "Hoth", Climate: "frozen", Terrain: "tundra"})
	require.NoError(t, err)
	assert.NotEqual(t, int64(77), created.ID)
}

func TestCreate_DuplicateNamePropagatesConflict(t *testing.T) {
	svc := NewService(testStore(t), nil)
	seed(t, svc)

	_, err := svc.Create(context.Background(), &domain.Planet{Name: "Tatooine", Climate: "arid", Terrain: "desert"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrDuplicateName)
	assert.True(t, store.IsConflict(err))
}

// =============================================================================
// Get Tests
// =============================================================================

func TestGet_Found(t *testing.T) {
	svc := NewService(testStore(t), nil)
	planets := seed(t, svc)

	got, ok, err := svc.Get(context.Background(), planets[1].ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, *planets[1], *got)
}

func TestGet_Missing(t *testing.T) {
	svc := NewService(testStore(t), nil)

	got, ok, err := svc.Get(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestGetByName(t *testing.T) {
	svc := NewService(testStore(t), nil)
	planets := seed(t, svc)

	got, ok, err := svc.GetByName(context.Background(), "Tatooine")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, planets[0].ID, got.ID)

	_, ok, err = svc.GetByName(context.Background(), "Naboo")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGet_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("disk on fire")
	svc := NewService(&failingStore{err: boom}, nil)

	_, ok, err := svc.Get(context.Background(), 1)
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)

	_, ok, err = svc.GetByName(context.Background(), "Tatooine")
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}

// =============================================================================
// List Tests
// =============================================================================

func TestList_NoFilters(t *testing.T) {
	svc := NewService(testStore(t), nil)
	seed(t, svc)

	planets, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, planets, 3)
}

func TestList_ByClimate(t *testing.T) {
	svc := NewService(testStore(t), nil)
	seeded := seed(t, svc)

	planets, err := svc.List(context.Background(), "", "Arid")
	require.NoError(t, err)
	require.Len(t, planets, 1)
	assert.Equal(t, *seeded[0], planets[0])
}

func TestList_ByTerrainAndClimate(t *testing.T) {
	svc := NewService(testStore(t), nil)
	seeded := seed(t, svc)

	planets, err := svc.List(context.Background(), "jungle, rainforests", "temperate, tropical")
	require.NoError(t, err)
	require.Len(t, planets, 1)
	assert.Equal(t, seeded[2].ID, planets[0].ID)
}

func TestList_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("disk on fire")
	svc := NewService(&failingStore{err: boom}, nil)

	_, err := svc.List(context.Background(), "", "")
	assert.ErrorIs(t, err, boom)
}

// =============================================================================
// Remove Tests
// =============================================================================

func TestRemove_Existing(t *testing.T) {
	svc := NewService(testStore(t), nil)
	planets := seed(t, svc)

	require.NoError(t, svc.Remove(context.Background(), planets[0].ID))

	_, ok, err := svc.Get(context.Background(), planets[0].ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemove_MissingPropagatesNotFound(t *testing.T) {
	svc := NewService(testStore(t), nil)

	err := svc.Remove(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, store.IsNotFound(err))
}
