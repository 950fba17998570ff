package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

type stubGame struct {
	id    string
	title string
	desc  string
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

type describedGame struct{ stubGame }

func (g *describedGame) Description() string { return g.desc }

func TestRegisterAndCreate(t *testing.T) {
	Register("test-zeta", func() Game { return &stubGame{id: "test-zeta", title: "Zeta"} })
	Register("test-alpha", func() Game {
		return &describedGame{stubGame{id: "test-alpha", title: "Alpha", desc: "first"}}
	})
	t.Cleanup(func() {
		unregister("test-zeta")
		unregister("test-alpha")
	})

	assert.True(t, Exists("test-alpha"))
	assert.False(t, Exists("test-missing"))

	g, err := Create("test-zeta")
	require.NoError(t, err)
	assert.Equal(t, "Zeta", g.Title())

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.ID == "test-alpha" {
			assert.Equal(t, "first", info.Description)
		}
	}
	assert.Subset(t, ids, []string{"test-alpha", "test-zeta"})
	assert.IsIncreasing(t, ids)
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("test-missing")
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestRegisterPanics(t *testing.T) {
	f := func() Game { return &stubGame{id: "test-dup", title: "Dup"} }
	Register("test-dup", f)
	t.Cleanup(func() { unregister("test-dup") })

	assert.Panics(t, func() { Register("test-dup", f) })
	assert.Panics(t, func() { Register("", f) })
	assert.Panics(t, func() { Register("test-nil", nil) })
}
