package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbar/internal/config"
)

func TestRegistry(t *testing.T) {
	require.Len(t, Registry, 5)

	p, ok := Get("claude")
	require.True(t, ok)
	assert.Equal(t, "https://claude.ai", p.URL)

	_, ok = Get("bard")
	assert.False(t, ok)

	_, ok = ByIndex(5)
	assert.False(t, ok)
}

func TestVisible(t *testing.T) {
	assert.Equal(t, []int{3, 1}, Visible([]int{3, 0, 1, 2}, []int{1, 3}))
	assert.Equal(t, []int{2, 0}, Visible([]int{2, 2, 9, 0}, []int{0, 2, 9}))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, Visible([]int{0, 1}, []int{4}), "nothing visible falls back to all")
}

func TestBuildTabsDefault(t *testing.T) {
	s := config.Defaults()
	s.ProviderOrder = []int{4, 3, 2, 1, 0}
	s.SelectedProviders = []int{1, 2, 4}
	s.DefaultProvider = 2
	s.LastTab = 7

	tabs := BuildTabs(s)

	require.Len(t, tabs.Tabs, 3)
	assert.Equal(t, "deepseek", tabs.Tabs[0].Provider.ID)
	assert.Equal(t, "CommandOrControl+1", tabs.Tabs[0].Shortcut)
	assert.Equal(t, 1, tabs.Active, "lastTab out of range, default provider position used")
}

func TestBuildTabsRestoresLastTab(t *testing.T) {
	s := config.Defaults()
	s.LastTab = 3

	assert.Equal(t, 3, BuildTabs(s).Active)
}

func TestBuildTabsDefaultNotVisible(t *testing.T) {
	s := config.Defaults()
	s.SelectedProviders = []int{1}
	s.DefaultProvider = 0
	s.LastTab = 2

	tabs := BuildTabs(s)
	require.Len(t, tabs.Tabs, 1)
	assert.Zero(t, tabs.Active)
}

func TestToggleSelected(t *testing.T) {
	sel, err := ToggleSelected([]int{0, 2}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, sel)

	sel, err = ToggleSelected(sel, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, sel)

	_, err = ToggleSelected([]int{3}, 3)
	assert.ErrorIs(t, err, ErrLastSelected)

	_, err = ToggleSelected([]int{3}, 42)
	assert.Error(t, err)
}
