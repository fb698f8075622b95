package models

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/terrain/internal/db"
	"github.com/VoidMesh/terrain/internal/grid"
	"github.com/VoidMesh/terrain/internal/terrain"
	"github.com/VoidMesh/terrain/internal/testutil"
)

func newTestMenu(t *testing.T) MenuModel {
	t.Helper()
	service, err := terrain.NewService(testutil.TerrainConfig(), nil)
	require.NoError(t, err)
	_, err = service.Generate(grid.Vec2{X: 0.5, Y: 0.5})
	require.NoError(t, err)
	return NewMenuModel(service, db.NewJournal(nil, 1, nil))
}

func TestMenuModel_ViewShowsSession(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	view := newTestMenu(t).View()

	assert.Contains(t, view, "idle at [(-24,-24)..(23,23)]")
	assert.Contains(t, view, "seed 42")
	assert.Contains(t, view, "0 committed")
	assert.NotContains(t, view, "dropped")
}

func TestMenuModel_Update(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name   string
		key    tea.KeyPressMsg
		cursor int
		opens  *ViewType
	}{
		{name: "up wraps to the last entry", key: tea.KeyPressMsg{Code: tea.KeyUp}, cursor: 2},
		{name: "down moves to the next entry", key: tea.KeyPressMsg{Code: tea.KeyDown}, cursor: 1},
		{name: "enter opens the map", key: tea.KeyPressMsg{Code: tea.KeyEnter}, cursor: 0, opens: viewPtr(MapView)},
		{name: "number opens directly", key: tea.KeyPressMsg{Code: '3', Text: "3"}, cursor: 2, opens: viewPtr(JournalView)},
		{name: "out of range number is ignored", key: tea.KeyPressMsg{Code: '9', Text: "9"}, cursor: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, cmd := newTestMenu(t).Update(tt.key)
			menu := model.(MenuModel)

			assert.Equal(t, tt.cursor, menu.cursor)
			if tt.opens == nil {
				assert.Nil(t, cmd)
				return
			}
			require.NotNil(t, cmd)
			assert.Equal(t, NewSwitchViewMsg(*tt.opens), cmd())
		})
	}
}

func viewPtr(v ViewType) *ViewType {
	return &v
}
