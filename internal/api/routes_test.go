package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/player"
	"github.com/VoidMesh/terrain/internal/terrain"
	"github.com/VoidMesh/terrain/internal/testutil"
)

func newTestServer(t *testing.T, generate bool) (http.Handler, *terrain.Service) {
	t.Helper()
	service, err := terrain.NewService(testutil.TerrainConfig(), nil)
	require.NoError(t, err)
	if generate {
		_, err = service.Generate(grid.Vec2{X: 0.5, Y: 0.5})
		require.NoError(t, err)
	}
	tracker := player.NewTracker(grid.Vec2{X: 0.5, Y: 0.5}, nil)
	router := SetupRoutes(NewHandler(service, nil), player.NewPlayerHandlers(tracker, service, nil))
	return router, service
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestRoutes_NotReady(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	router, _ := newTestServer(t, false)

	rec, body := get(t, router, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["generated"])

	rec, _ = get(t, router, "/api/v1/terrain/bounds")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRoutes_Terrain(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	router, service := newTestServer(t, true)
	bounds := service.Bounds()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		expect     func(t *testing.T, body map[string]interface{})
	}{
		{
			name:       "walkable at the spawn",
			path:       "/api/v1/terrain/walkable?x=0.5&y=0.5",
			wantStatus: http.StatusOK,
			expect: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, true, body["walkable"])
				assert.Equal(t, "grass", body["terrain"])
			},
		},
		{
			name:       "outside the bounds is not walkable",
			path:       "/api/v1/terrain/walkable?x=500&y=0",
			wantStatus: http.StatusOK,
			expect: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, false, body["walkable"])
				assert.Equal(t, "ungenerated", body["terrain"])
			},
		},
		{
			name:       "walkable needs both coordinates",
			path:       "/api/v1/terrain/walkable?x=1",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "cells clipped to bounds",
			path:       "/api/v1/terrain/cells?min_x=20&min_y=0&max_x=30&max_y=1",
			wantStatus: http.StatusOK,
			expect: func(t *testing.T, body map[string]interface{}) {
				assert.EqualValues(t, (bounds.Max.X-20+1)*2, body["count"])
			},
		},
		{
			name:       "whole map in one request",
			path:       "/api/v1/terrain/cells?min_x=-24&min_y=-24&max_x=23&max_y=23",
			wantStatus: http.StatusOK,
			expect: func(t *testing.T, body map[string]interface{}) {
				assert.EqualValues(t, 48*48, body["count"])
			},
		},
		{
			name:       "cells bad corner",
			path:       "/api/v1/terrain/cells?min_x=a&min_y=0&max_x=1&max_y=1",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "convert world",
			path:       "/api/v1/terrain/convert/world?x=-0.5&y=3.2",
			wantStatus: http.StatusOK,
			expect: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, map[string]interface{}{"x": -1.0, "y": 3.0}, body["cell"])
			},
		},
		{
			name:       "convert grid",
			path:       "/api/v1/terrain/convert/grid?x=2&y=-1",
			wantStatus: http.StatusOK,
			expect: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, map[string]interface{}{"x": 2.5, "y": -0.5}, body["world"])
			},
		},
		{
			name:       "vegetation",
			path:       "/api/v1/terrain/vegetation",
			wantStatus: http.StatusOK,
			expect: func(t *testing.T, body map[string]interface{}) {
				assert.EqualValues(t, len(service.Vegetation()), body["count"])
			},
		},
		{
			name:       "stats",
			path:       "/api/v1/terrain/stats",
			wantStatus: http.StatusOK,
			expect: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, true, body["generated"])
				assert.EqualValues(t, 42, body["seed"])
			},
		},
		{
			name:       "player position",
			path:       "/api/v1/player/position",
			wantStatus: http.StatusOK,
			expect: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, true, body["walkable"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := get(t, router, tt.path)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.expect != nil {
				tt.expect(t, body)
			}
		})
	}
}

func TestRoutes_CellsTooLarge(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	service, err := terrain.NewService(testutil.TerrainConfig().WithMapSize(200, 200), nil)
	require.NoError(t, err)
	_, err = service.Generate(grid.Vec2{})
	require.NoError(t, err)
	router := SetupRoutes(NewHandler(service, nil), player.NewPlayerHandlers(player.NewTracker(grid.Vec2{}, nil), service, nil))

	rec, body := get(t, router, "/api/v1/terrain/cells?min_x=-100&min_y=-100&max_x=99&max_y=99")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "exceeds limit")
}
