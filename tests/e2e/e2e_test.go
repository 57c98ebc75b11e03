// Package e2e provides end-to-end tests for the planet API.
//
// The suite boots the real store, seed loader and HTTP stack on a loopback
// port backed by a temporary SQLite file. Run with:
//
//	go test -v ./tests/e2e/...
package e2e

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/artpar/swplanet/internal/shell/api"
	"github.com/artpar/swplanet/internal/shell/planets"
	"github.com/artpar/swplanet/internal/shell/seed"
	"github.com/artpar/swplanet/internal/shell/store"
)

// =============================================================================
// Test Globals
// =============================================================================

var (
	testStore  store.Store
	testClient *http.Client
	baseURL    string
	testServer *http.Server
	tmpDir     string
)

// =============================================================================
// TestMain Setup
// =============================================================================

func TestMain(m *testing.M) {
	code := setup()
	if code != 0 {
		teardown()
		os.Exit(code)
	}

	result := m.Run()

	teardown()

	os.Exit(result)
}

func setup() int {
	log.Println("E2E Setup: Initializing test environment...")

	// 1. Create temp database
	var err error
	tmpDir, err = os.MkdirTemp("", "swplanet_e2e_")
	if err != nil {
		log.Printf("Failed to create temp dir: %v", err)
		return 1
	}
	tmpDB := filepath.Join(tmpDir, "test.db")
	log.Printf("E2E Setup: Using database: %s", tmpDB)

	// 2. Create SQLite store
	s, err := store.NewSQLiteStore(tmpDB)
	if err != nil {
		log.Printf("Failed to create store: %v", err)
		return 1
	}
	testStore = s
	log.Println("E2E Setup: SQLite store initialized")

	// 3. Load fixture planets
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	res, err := seed.ApplyFile(context.Background(), s, filepath.Join("fixtures", "planets.yaml"), logger)
	if err != nil {
		log.Printf("Failed to seed fixtures: %v", err)
		return 1
	}
	log.Printf("E2E Setup: Seeded %d planets", res.Created)

	// 4. Create HTTP handler
	handler := api.NewHandler(planets.NewService(s, logger), s, logger, "e2e")

	// 5. Find an available port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Printf("Failed to find available port: %v", err)
		return 1
	}
	port := listener.Addr().(*net.TCPAddr).Port
	baseURL = fmt.Sprintf("http://127.0.0.1:%d", port)
	log.Printf("E2E Setup: Server will listen on port %d", port)

	// 6. Start HTTP server
	testServer = &http.Server{
		Handler: handler.Routes(),
	}
	go func() {
		if err := testServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	testClient = &http.Client{
		Timeout: 10 * time.Second,
	}

	// 7. Wait for server to be ready
	if err := waitForReady(baseURL+"/ready", 10*time.Second); err != nil {
		log.Printf("Server failed to become ready: %v", err)
		return 1
	}

	log.Println("E2E Setup: Complete!")
	return 0
}

func teardown() {
	log.Println("E2E Teardown: Cleaning up...")

	if testServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		testServer.Shutdown(ctx)
	}

	if testStore != nil {
		testStore.Close()
	}

	if tmpDir != "" {
		os.RemoveAll(tmpDir)
	}

	log.Println("E2E Teardown: Complete!")
}

// waitForReady polls the readiness endpoint until it responds.
func waitForReady(url string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %v", timeout)
}
