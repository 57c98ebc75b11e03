package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/artpar/swplanet/internal/core/domain"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// =============================================================================
// Executor Interface - Shared by DB and Transaction
// =============================================================================

// executor abstracts database operations that can be performed on both
// a database connection and a transaction.
type executor interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// =============================================================================
// Driver
// =============================================================================

const (
	// driverName is go-sqlite3 with the fold collation registered on every connection.
	driverName = "sqlite3_planets"

	// foldCollation compares text under Unicode case folding.
	foldCollation = "UNICODE_NOCASE"
)

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterCollation(foldCollation, domain.CompareFold)
		},
	})
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// =============================================================================
// SQLiteStore
// =============================================================================

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore creates a new SQLite store and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	// Open database connection
	db, err := sqlx.Open(driverName, dsn+"?_busy_timeout=5000")
	if err != nil {
		return nil, NewStoreError("NewSQLiteStore", "", "", "failed to open database", ErrConnectionFailed)
	}

	// Every connection to :memory: is a separate database
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "", "failed to ping database", ErrConnectionFailed)
	}

	// Run migrations
	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "", err.Error(), ErrMigrationFailed)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return NewStoreError("Ping", "", "", err.Error(), ErrConnectionFailed)
	}
	return nil
}

// =============================================================================
// Planet Operations
// =============================================================================

// planetRow represents a planet row in the database.
type planetRow struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Climate string `db:"climate"`
	Terrain string `db:"terrain"`
}

func (s *SQLiteStore) CreatePlanet(ctx context.Context, planet *domain.Planet) error {
	return createPlanet(ctx, s.db, planet)
}

func (s *SQLiteStore) GetPlanet(ctx context.Context, id int64) (*domain.Planet, error) {
	return getPlanet(ctx, s.db, id)
}

func (s *SQLiteStore) GetPlanetByName(ctx context.Context, name string) (*domain.Planet, error) {
	return getPlanetByName(ctx, s.db, name)
}

func (s *SQLiteStore) ListPlanets(ctx context.Context, query domain.PlanetQuery) ([]domain.Planet, error) {
	return listPlanets(ctx, s.db, query)
}

func (s *SQLiteStore) DeletePlanet(ctx context.Context, id int64) error {
	return deletePlanet(ctx, s.db, id)
}

// =============================================================================
// Transaction Support
// =============================================================================

func (s *SQLiteStore) WithTx(ctx context.Context, fn func(Store) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return NewStoreError("WithTx", "", "", "failed to begin transaction", ErrTxFailed)
	}

	txS := &txSQLiteStore{tx: tx}

	if err := fn(txS); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return NewStoreError("WithTx", "", "", fmt.Sprintf("rollback failed: %v", rbErr), errors.Join(ErrTxFailed, err))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return NewStoreError("WithTx", "", "", "failed to commit transaction", ErrTxFailed)
	}

	return nil
}

// =============================================================================
// Transaction Store
// =============================================================================

// txSQLiteStore implements Store within a transaction.
type txSQLiteStore struct {
	tx *sqlx.Tx
}

func (s *txSQLiteStore) CreatePlanet(ctx context.Context, planet *domain.Planet) error {
	return createPlanet(ctx, s.tx, planet)
}

func (s *txSQLiteStore) GetPlanet(ctx context.Context, id int64) (*domain.Planet, error) {
	return getPlanet(ctx, s.tx, id)
}

func (s *txSQLiteStore) GetPlanetByName(ctx context.Context, name string) (*domain.Planet, error) {
	return getPlanetByName(ctx, s.tx, name)
}

func (s *txSQLiteStore) ListPlanets(ctx context.Context, query domain.PlanetQuery) ([]domain.Planet, error) {
	return listPlanets(ctx, s.tx, query)
}

func (s *txSQLiteStore) DeletePlanet(ctx context.Context, id int64) error {
	return deletePlanet(ctx, s.tx, id)
}

func (s *txSQLiteStore) WithTx(ctx context.Context, fn func(Store) error) error {
	// Already in a transaction, just run the function
	return fn(s)
}

func (s *txSQLiteStore) Ping(ctx context.Context) error {
	return nil
}

func (s *txSQLiteStore) Close() error {
	// No-op for tx store
	return nil
}

// =============================================================================
// Shared Implementation Functions
// =============================================================================

func createPlanet(ctx context.Context, exec executor, planet *domain.Planet) error {
	query := `
		INSERT INTO planets (name, climate, terrain)
		VALUES (:name, :climate, :terrain)`

	row := planetRow{
		Name:    planet.Name,
		Climate: planet.Climate,
		Terrain: planet.Terrain,
	}

	result, err := exec.NamedExecContext(ctx, query, row)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			if sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
				return NewStoreError("CreatePlanet", "planet", planet.Name, "planet with this name already exists", ErrDuplicateName)
			}
			return NewStoreError("CreatePlanet", "planet", planet.Name, sqliteErr.Error(), ErrConstraint)
		}
		return NewStoreError("CreatePlanet", "planet", planet.Name, err.Error(), err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return NewStoreError("CreatePlanet", "planet", planet.Name, "failed to read assigned id", err)
	}
	planet.ID = id

	return nil
}

func getPlanet(ctx context.Context, exec executor, id int64) (*domain.Planet, error) {
	query := `SELECT id, name, climate, terrain FROM planets WHERE id = ?`
	idStr := strconv.FormatInt(id, 10)

	var row planetRow
	err := exec.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetPlanet", "planet", idStr, "planet not found", ErrNotFound)
		}
		return nil, NewStoreError("GetPlanet", "planet", idStr, err.Error(), err)
	}

	return rowToPlanet(&row), nil
}

func getPlanetByName(ctx context.Context, exec executor, name string) (*domain.Planet, error) {
	query := `SELECT id, name, climate, terrain FROM planets WHERE name = ?`

	var row planetRow
	err := exec.GetContext(ctx, &row, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetPlanetByName", "planet", name, "planet not found", ErrNotFound)
		}
		return nil, NewStoreError("GetPlanetByName", "planet", name, err.Error(), err)
	}

	return rowToPlanet(&row), nil
}

func listPlanets(ctx context.Context, exec executor, q domain.PlanetQuery) ([]domain.Planet, error) {
	where, args := WhereClause(PlanetFilters(q))
	query := `SELECT id, name, climate, terrain FROM planets` + where + ` ORDER BY id ASC`

	var rows []planetRow
	err := exec.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, NewStoreError("ListPlanets", "planet", "", err.Error(), err)
	}

	planets := make([]domain.Planet, 0, len(rows))
	for _, row := range rows {
		planets = append(planets, *rowToPlanet(&row))
	}

	return planets, nil
}

func deletePlanet(ctx context.Context, exec executor, id int64) error {
	query := `DELETE FROM planets WHERE id = ?`
	idStr := strconv.FormatInt(id, 10)

	result, err := exec.ExecContext(ctx, query, id)
	if err != nil {
		return NewStoreError("DeletePlanet", "planet", idStr, err.Error(), err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return NewStoreError("DeletePlanet", "planet", idStr, "planet not found", ErrNotFound)
	}

	return nil
}

// =============================================================================
// Row Conversion Functions
// =============================================================================

// rowToPlanet converts a database row to a domain.Planet.
func rowToPlanet(row *planetRow) *domain.Planet {
	return &domain.Planet{
		ID:      row.ID,
		Name:    row.Name,
		Climate: row.Climate,
		Terrain: row.Terrain,
	}
}
