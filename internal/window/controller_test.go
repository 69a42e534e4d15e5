package window

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbar/internal/appstate"
	"chatbar/internal/config"
)

type fakeHost struct {
	visible   bool
	exists    bool
	bounds    Bounds
	devtools  bool
	shows     int
	hides     int
	reloads   int
	minimised int
}

func (h *fakeHost) ShowWindow()            { h.shows++; h.visible = true }
func (h *fakeHost) HideWindow()            { h.hides++; h.visible = false }
func (h *fakeHost) IsVisible() bool        { return h.visible }
func (h *fakeHost) Reload()                { h.reloads++ }
func (h *fakeHost) ToggleDevTools()        { h.devtools = !h.devtools }
func (h *fakeHost) IsDevToolsOpened() bool { return h.devtools }
func (h *fakeHost) Minimise()              { h.minimised++ }
func (h *fakeHost) Bounds() (Bounds, bool) { return h.bounds, h.exists }

type fakePlatform struct {
	appHidden  int
	workspaces []bool
}

func (p *fakePlatform) HideApp()                         { p.appHidden++ }
func (p *fakePlatform) SetVisibleOnAllWorkspaces(v bool) { p.workspaces = append(p.workspaces, v) }

type failingSettings struct{ config.AppSettings }

func (f failingSettings) Load(context.Context) config.AppSettings { return f.AppSettings }
func (f failingSettings) SaveWindow(context.Context, config.Window) error {
	return errors.New("disk full")
}

type fixture struct {
	host     *fakeHost
	platform *fakePlatform
	store    *config.Store
	state    *appstate.State
	ctrl     *Controller
}

func newFixture(t *testing.T, goos string) *fixture {
	t.Helper()
	f := &fixture{
		host:     &fakeHost{exists: true, bounds: Bounds{X: 100, Y: 50, Width: 420, Height: 600}},
		platform: &fakePlatform{},
		store:    config.Open(filepath.Join(t.TempDir(), "settings.json"), zerolog.Nop()),
		state:    appstate.New(),
	}
	f.ctrl = NewController(f.host, f.store, f.state, zerolog.Nop(), WithGOOS(goos), WithPlatform(f.platform))
	return f
}

func TestToggle(t *testing.T) {
	f := newFixture(t, "linux")

	f.ctrl.Toggle()
	assert.True(t, f.host.visible)
	f.ctrl.Toggle()
	assert.False(t, f.host.visible)
	assert.Equal(t, 1, f.host.shows)
	assert.Equal(t, 1, f.host.hides)
}

func TestToggleNoopWhileRecording(t *testing.T) {
	f := newFixture(t, "linux")
	f.host.visible = true
	f.state.SetRecording(true)

	f.ctrl.Toggle()
	f.ctrl.Toggle()

	assert.True(t, f.host.visible)
	assert.Zero(t, f.host.hides)
	assert.Zero(t, f.host.shows)
}

func TestHidePersistsBounds(t *testing.T) {
	f := newFixture(t, "linux")
	f.host.visible = true

	f.ctrl.Toggle()

	w := f.store.Load(context.Background()).Window
	require.NotNil(t, w.X)
	require.NotNil(t, w.Y)
	assert.Equal(t, 100, *w.X)
	assert.Equal(t, 50, *w.Y)
	assert.Equal(t, 420, w.Width)
	assert.Equal(t, 600, w.Height)
}

func TestHideWhenAlreadyHidden(t *testing.T) {
	f := newFixture(t, "linux")

	f.ctrl.Hide()

	assert.Zero(t, f.host.hides)
	assert.Nil(t, f.store.Load(context.Background()).Window.X)
}

func TestHideWithoutWindowSkipsPersist(t *testing.T) {
	f := newFixture(t, "linux")
	f.host.visible = true
	f.host.exists = false

	f.ctrl.Hide()

	assert.Equal(t, 1, f.host.hides)
	assert.Nil(t, f.store.Load(context.Background()).Window.X)
}

func TestHideSurvivesPersistFailure(t *testing.T) {
	host := &fakeHost{visible: true, exists: true}
	ctrl := NewController(host, failingSettings{config.Defaults()}, appstate.New(), zerolog.Nop(), WithGOOS("linux"))

	assert.NotPanics(t, ctrl.Hide)
	assert.False(t, host.visible)
}

func TestMacHidesAppUnlessShownInDock(t *testing.T) {
	f := newFixture(t, "darwin")
	f.host.visible = true

	f.ctrl.Hide()
	assert.Equal(t, 1, f.platform.appHidden)

	require.NoError(t, f.store.Set(context.Background(), config.KeyShowInDock, true))
	f.ctrl.Show()
	f.ctrl.Hide()
	assert.Equal(t, 1, f.platform.appHidden)

	assert.Equal(t, []bool{true}, f.platform.workspaces)
}

func TestMacQuittingDoesNotHideApp(t *testing.T) {
	f := newFixture(t, "darwin")
	f.host.visible = true
	f.state.MarkQuitting()

	f.ctrl.Hide()

	assert.Zero(t, f.platform.appHidden)
}

func TestLinuxIgnoresPlatform(t *testing.T) {
	f := newFixture(t, "linux")

	f.ctrl.Show()
	f.ctrl.Hide()

	assert.Zero(t, f.platform.appHidden)
	assert.Empty(t, f.platform.workspaces)
}

func TestHandleBlur(t *testing.T) {
	f := newFixture(t, "linux")
	ctx := context.Background()
	f.host.visible = true

	f.ctrl.HandleBlur()
	assert.True(t, f.host.visible, "hideOnBlur is off by default")

	require.NoError(t, f.store.Set(ctx, config.KeyHideOnBlur, true))

	f.state.SetRecording(true)
	f.ctrl.HandleBlur()
	assert.True(t, f.host.visible)
	f.state.SetRecording(false)

	f.host.devtools = true
	f.ctrl.HandleBlur()
	assert.True(t, f.host.visible)
	f.host.devtools = false

	f.ctrl.HandleBlur()
	assert.False(t, f.host.visible)
}

func TestHandleCloseRequest(t *testing.T) {
	f := newFixture(t, "linux")
	f.host.visible = true

	assert.True(t, f.ctrl.HandleCloseRequest())
	assert.False(t, f.host.visible)

	f.state.MarkQuitting()
	assert.False(t, f.ctrl.HandleCloseRequest())
}

func TestPassThroughActions(t *testing.T) {
	f := newFixture(t, "linux")

	f.ctrl.Reload()
	f.ctrl.ToggleDevTools()
	f.ctrl.Minimise()

	assert.Equal(t, 1, f.host.reloads)
	assert.True(t, f.host.devtools)
	assert.Equal(t, 1, f.host.minimised)
	assert.False(t, f.ctrl.Visible())
}
