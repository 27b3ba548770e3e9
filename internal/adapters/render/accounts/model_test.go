package accounts

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/launcher-core/internal/application"
	"github.com/bnema/launcher-core/internal/domain"
)

func TestListModelKeepsRegistryOrder(t *testing.T) {
	t.Parallel()

	m := newListModel([]application.AccountView{
		{ID: "first", Username: "Alex", Kind: domain.AccountKindOffline, HasProfile: true},
		{ID: "second", Username: "Steve", Kind: domain.AccountKindOffline, HasProfile: true},
	}, RenderOptions{})

	second := m.renderSection(1)().(sectionMsg)
	first := m.renderSection(0)().(sectionMsg)

	next, cmd := m.Update(second)
	assert.Nil(t, cmd)
	// A repeated section must not count twice.
	next, cmd = next.Update(second)
	assert.Nil(t, cmd)
	next, cmd = next.Update(first)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	view := next.View()
	assert.Less(t, strings.Index(view, "Alex (first)"), strings.Index(view, "Steve (second)"))
	assert.Equal(t, 0, next.(listModel).pending)
}

func TestListModelQuitsImmediatelyWhenEmpty(t *testing.T) {
	t.Parallel()

	m := newListModel(nil, RenderOptions{})
	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), "No accounts stored")
}

func TestListModelIgnoresUnrelatedMessages(t *testing.T) {
	t.Parallel()

	m := newListModel([]application.AccountView{{ID: "only", Username: "Alex", Kind: domain.AccountKindOffline}}, RenderOptions{})
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, next.(listModel).pending)
}
