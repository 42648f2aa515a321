package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"learntrack/backend/config"
	"learntrack/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app   *fiber.App
	cfg   *config.Config
	token string
}

func setup(t *testing.T, jwtSecret string) *testServer {
	t.Helper()

	cfg := &config.Config{
		DBDriver:    "sqlite",
		DBPath:      filepath.Join(t.TempDir(), "api.db"),
		JWTSecret:   jwtSecret,
		LogMode:     "production",
		Timezone:    "UTC",
		CORSOrigins: "*",
	}
	db, err := utils.InitDB(cfg)
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &testServer{app: NewApp(db, cfg, utils.NopLogger()), cfg: cfg}
}

// do sends body as JSON and decodes the response into out when out is non-nil.
func (s *testServer) do(t *testing.T, method, path string, body interface{}, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	return s.send(t, req, out)
}

func (s *testServer) send(t *testing.T, req *http.Request, out interface{}) int {
	t.Helper()

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}
