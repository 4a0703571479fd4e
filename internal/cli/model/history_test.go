package model

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/cardver/internal/application/port/mocks"
	"github.com/bnema/cardver/internal/cli/styles"
	"github.com/bnema/cardver/internal/domain/entity"
)

func sampleRuns() []*entity.CheckRun {
	now := time.Now()
	return []*entity.CheckRun{
		{ID: "11111111-aaaa", CardType: "demo-card", ManifestVersion: "1.4.0", OK: true, StartedAt: now},
		{
			ID: "22222222-bbbb", CardType: "demo-card", ManifestVersion: "1.4.0", EmbeddedVersion: "1.3.9",
			Problems: []string{"embedded version mismatch"}, StartedAt: now.Add(-time.Hour),
		},
	}
}

func loaded(t *testing.T, runs []*entity.CheckRun, err error) HistoryModel {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCheckRunRepository(ctrl)
	repo.EXPECT().GetRecent(gomock.Any(), 5).Return(runs, err)

	m := NewHistoryModel(context.Background(), styles.NewTheme(), repo, 5)
	msg := m.Init()()
	next, _ := m.Update(msg)
	return next.(HistoryModel)
}

func press(t *testing.T, m HistoryModel, k tea.KeyMsg) (HistoryModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	return next.(HistoryModel), cmd
}

func TestHistoryModel_LoadsRuns(t *testing.T) {
	m := loaded(t, sampleRuns(), nil)

	view := m.View()
	assert.Contains(t, view, "11111111")
	assert.Contains(t, view, "FAILED (1)")
	assert.Nil(t, m.Selected())
}

func TestHistoryModel_DetailAndBack(t *testing.T) {
	m := loaded(t, sampleRuns(), nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.Selected())
	assert.Equal(t, "22222222-bbbb", m.Selected().ID)
	assert.Contains(t, m.View(), "embedded version mismatch")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.Selected())
}

func TestHistoryModel_Quit(t *testing.T) {
	m := loaded(t, nil, nil)
	assert.Contains(t, m.View(), "No check runs recorded yet.")

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHistoryModel_LoadError(t *testing.T) {
	m := loaded(t, nil, errors.New("database is locked"))

	assert.Contains(t, m.View(), "database is locked")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.Selected())
}
