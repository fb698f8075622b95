package player

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/terrain/internal/grid"
)

func TestTracker_SetPosition(t *testing.T) {
	tests := []struct {
		name    string
		pos     grid.Vec2
		wantErr error
	}{
		{name: "finite position", pos: grid.Vec2{X: 12.5, Y: -3}},
		{name: "nan x", pos: grid.Vec2{X: math.NaN(), Y: 0}, wantErr: ErrInvalidPosition},
		{name: "infinite y", pos: grid.Vec2{X: 0, Y: math.Inf(-1)}, wantErr: ErrInvalidPosition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(grid.Vec2{X: 1, Y: 1}, nil)

			err := tr.SetPosition(tt.pos)
			pos, moves := tr.Snapshot()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, grid.Vec2{X: 1, Y: 1}, tr.Position(), "rejected updates keep the old position")
				assert.Zero(t, moves)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.pos, tr.Position())
			assert.Equal(t, tt.pos, pos.Vec2())
			assert.Equal(t, int64(1), moves)
		})
	}
}

func TestTracker_ConcurrentAccess(t *testing.T) {
	tr := NewTracker(grid.Vec2{}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = tr.SetPosition(grid.Vec2{X: float64(i), Y: float64(j)})
				_ = tr.Position()
			}
		}(i)
	}
	wg.Wait()

	_, moves := tr.Snapshot()
	assert.Equal(t, int64(400), moves)
}
