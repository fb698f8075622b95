package water_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/mocks"
	"github.com/VoidMesh/terrain/internal/random"
	"github.com/VoidMesh/terrain/internal/testutil"
	"github.com/VoidMesh/terrain/internal/water"
)

func testParams() water.Params {
	return water.Params{
		WaterFraction: 0.2,
		MinRadius:     2,
		MaxRadius:     4,
		Circularity:   0.7,
		MinSpacing:    8,
		BorderBuffer:  1,
		MaxAttempts:   300,
		NoiseFloor:    1,
	}
}

func TestGenerate_ZeroFractionPlacesNothing(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	params := testParams()
	params.WaterFraction = 0
	g := testutil.NewGrid(t, 20, 20, grid.Grass)
	gen := water.NewGenerator(params, nil, random.NewGenerator(1), nil)

	result := gen.Generate(g, g.Bounds(), nil)

	assert.Zero(t, result.Target)
	assert.Empty(t, result.Clusters)
	assert.Zero(t, g.Count(g.Bounds(), grid.Water))
}

func TestGenerate_ClusterInvariants(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name        string
		circularity float64
	}{
		{name: "strict discs", circularity: 1},
		{name: "jittered discs", circularity: 0.93},
		{name: "irregular blobs", circularity: 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := testParams()
			params.Circularity = tt.circularity
			g := testutil.NewGrid(t, 80, 80, grid.Grass)
			region := grid.Bounds{Min: grid.Cell{X: 10, Y: 10}, Max: grid.Cell{X: 69, Y: 69}}
			gen := water.NewGenerator(params, nil, random.NewGenerator(42), nil)

			result := gen.Generate(g, region, nil)
			require.NotEmpty(t, result.Clusters)
			assert.False(t, result.Skipped)

			for i, a := range result.Clusters {
				assert.True(t, region.Inset(params.MaxRadius+params.BorderBuffer).Contains(a.Center),
					"center %s violates the border buffer", a.Center)
				for _, c := range a.Cells {
					assert.True(t, region.Contains(c), "cluster cell %s leaks out of the region", c)
					assert.LessOrEqual(t, float64(grid.DistSq(c, a.Center)), (float64(params.MaxRadius)+0.5)*(float64(params.MaxRadius)+0.5))
				}
				for _, b := range result.Clusters[i+1:] {
					assert.GreaterOrEqual(t, grid.Chebyshev(a.Center, b.Center), params.MinSpacing,
						"centers %s and %s are too close", a.Center, b.Center)
				}
			}

			outside := 0
			g.Bounds().Each(func(c grid.Cell) bool {
				if !region.Contains(c) && g.Get(c) == grid.Water {
					outside++
				}
				return true
			})
			assert.Zero(t, outside, "no water outside the region")
			assert.Len(t, gen.Centers(), len(result.Clusters))
		})
	}
}

func TestGenerate_StrictClusterIsExactDisc(t *testing.T) {
	params := testParams()
	params.Circularity = 1
	params.MinRadius, params.MaxRadius = 3, 3
	g := testutil.NewGrid(t, 30, 30, grid.Grass)
	gen := water.NewGenerator(params, nil, random.NewGenerator(5), nil)

	cluster, err := gen.PlaceAt(g, g.Bounds(), grid.Cell{X: 15, Y: 15}, nil)
	require.NoError(t, err)

	assert.Len(t, cluster.Cells, 29)
	assert.Equal(t, 29, g.Count(g.Bounds(), grid.Water))
	for _, c := range cluster.Cells {
		assert.LessOrEqual(t, grid.DistSq(c, cluster.Center), 9)
	}
}

func TestPlaceAt_Rejections(t *testing.T) {
	params := testParams()
	params.Circularity = 1
	params.MinRadius, params.MaxRadius = 3, 3
	params.MinSpacing = 5
	params.BorderBuffer = 2

	tests := []struct {
		name    string
		center  grid.Cell
		zones   []water.Zone
		wantErr error
	}{
		{name: "chebyshev three from an existing center", center: grid.Cell{X: 23, Y: 21}, wantErr: water.ErrTooClose},
		{name: "exactly min spacing away", center: grid.Cell{X: 25, Y: 20}},
		{name: "would clip the region edge", center: grid.Cell{X: 2, Y: 20}, wantErr: water.ErrClipsBoundary},
		{name: "inside the border buffer", center: grid.Cell{X: 4, Y: 20}, wantErr: water.ErrForbidden},
		{
			name:    "inside a forbidden zone",
			center:  grid.Cell{X: 30, Y: 30},
			zones:   []water.Zone{water.CircleZone{Center: grid.Cell{X: 32, Y: 32}, Radius: 4}},
			wantErr: water.ErrForbidden,
		},
		{
			name:    "inside a rectangular zone",
			center:  grid.Cell{X: 10, Y: 30},
			zones:   []water.Zone{water.RectZone{Bounds: grid.Bounds{Min: grid.Cell{X: 8, Y: 28}, Max: grid.Cell{X: 12, Y: 32}}}},
			wantErr: water.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.NewGrid(t, 40, 40, grid.Grass)
			gen := water.NewGenerator(params, nil, random.NewGenerator(3), nil)
			_, err := gen.PlaceAt(g, g.Bounds(), grid.Cell{X: 20, Y: 20}, nil)
			require.NoError(t, err)

			before := g.Count(g.Bounds(), grid.Water)
			_, err = gen.PlaceAt(g, g.Bounds(), tt.center, tt.zones)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.Greater(t, g.Count(g.Bounds(), grid.Water), before)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, g.Count(g.Bounds(), grid.Water), "rejected placements leave the grid untouched")
		})
	}
}

func TestGenerate_SkipsRegionTooSmall(t *testing.T) {
	logger := testutil.NewMockLogger()
	params := testParams()
	g := testutil.NewGrid(t, 40, 40, grid.Grass)
	gen := water.NewGenerator(params, nil, random.NewGenerator(9), logger)

	strip := grid.Bounds{Min: grid.Cell{X: 0, Y: 0}, Max: grid.Cell{X: 39, Y: params.MinRegionSpan() - 2}}
	result := gen.Generate(g, strip, nil)

	assert.True(t, result.Skipped)
	assert.Empty(t, result.Clusters)
	assert.Zero(t, g.Count(g.Bounds(), grid.Water))
	assert.True(t, logger.HasMessage("warn", "Region cannot fit a water cluster, skipping"))
}

func TestGenerate_RespectsForbiddenZone(t *testing.T) {
	params := testParams()
	params.WaterFraction = 0.4
	g := testutil.NewGrid(t, 60, 60, grid.Grass)
	gen := water.NewGenerator(params, nil, random.NewGenerator(11), nil)
	zone := water.CircleZone{Center: grid.Cell{X: 30, Y: 30}, Radius: 12}

	result := gen.Generate(g, g.Bounds(), []water.Zone{zone})

	for _, cl := range result.Clusters {
		assert.False(t, zone.Contains(cl.Center), "center %s inside forbidden zone", cl.Center)
	}
}

func TestGenerate_NoiseFieldGatesPlacement(t *testing.T) {
	ctrl := gomock.NewController(t)
	field := mocks.NewMockNoiseField(ctrl)
	field.EXPECT().Coherence(gomock.Any(), gomock.Any()).Return(0.0).AnyTimes()

	params := testParams()
	params.NoiseFloor = 0
	params.MaxAttempts = 50
	g := testutil.NewGrid(t, 40, 40, grid.Grass)
	gen := water.NewGenerator(params, field, random.NewGenerator(2), nil)

	result := gen.Generate(g, g.Bounds(), nil)

	assert.Empty(t, result.Clusters, "zero coherence with no floor rejects every center")
	assert.Equal(t, params.MaxAttempts, result.Attempts)
}

func TestGenerate_Deterministic(t *testing.T) {
	run := func() []grid.Tile {
		g := testutil.NewGrid(t, 50, 50, grid.Grass)
		gen := water.NewGenerator(testParams(), nil, random.NewGenerator(77), nil)
		gen.Generate(g, g.Bounds(), nil)
		return g.Snapshot(g.Bounds())
	}
	assert.Equal(t, run(), run())
}
