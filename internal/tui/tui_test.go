package tui

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/poll/internal/model"
	"github.com/idilsaglam/poll/internal/poll"
	"github.com/idilsaglam/poll/internal/store/memstore"
)

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	esc       = tea.KeyMsg{Type: tea.KeyEsc}
	tab       = tea.KeyMsg{Type: tea.KeyTab}
	down      = tea.KeyMsg{Type: tea.KeyDown}
	space     = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	ctrlN     = tea.KeyMsg{Type: tea.KeyCtrlN}
	ctrlX     = tea.KeyMsg{Type: tea.KeyCtrlX}
	ctrlC     = tea.KeyMsg{Type: tea.KeyCtrlC}
	quietLogs = poll.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
)

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type brokenBackend struct{ *memstore.Store }

func (brokenBackend) Write(string, string) error { return errors.New("disk full") }

func newModel(t *testing.T, polls ...[]string) (Model, *poll.Store) {
	t.Helper()
	s, err := poll.Open(memstore.New(), quietLogs)
	require.NoError(t, err)
	for _, p := range polls {
		_, err := s.CreatePoll(p[0], p[1:])
		require.NoError(t, err)
	}
	m := New(s)
	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30}), s
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestCreatePollThroughForm(t *testing.T) {
	m, s := newModel(t)

	m = send(t, m, typed("c"))
	require.Equal(t, screenCreate, m.screen)

	m = send(t, m,
		typed("Favorite Color"), tab,
		typed("Red"), ctrlN,
		typed("Blue"), enter)

	assert.Equal(t, screenPolls, m.screen)
	polls := s.Polls()
	require.Len(t, polls, 1)
	assert.Equal(t, "Favorite Color", polls[0].Name)
	assert.Equal(t, []model.Option{{Name: "Red"}, {Name: "Blue"}}, polls[0].Options)
	assert.Len(t, m.polls.Items(), 1)
	assert.Contains(t, m.status, "created")

	// form is cleared for the next poll
	name, opts := m.form.values()
	assert.Empty(t, name)
	assert.Equal(t, []string{""}, opts)
}

func TestCreateFormShowsValidationError(t *testing.T) {
	m, s := newModel(t)

	m = send(t, m, typed("c"), enter)
	assert.Equal(t, screenCreate, m.screen)
	assert.Equal(t, "poll name is required", m.form.err)

	m = send(t, m, typed("Lunch"), enter)
	assert.Equal(t, "option 1 is empty", m.form.err)
	assert.Contains(t, m.View(), "option 1 is empty")
	assert.Empty(t, s.Polls())
}

func TestCreateFormRemoveOption(t *testing.T) {
	m, s := newModel(t)

	m = send(t, m, typed("c"),
		typed("Pet"), tab,
		typed("Cat"), ctrlN,
		typed("Dog"), ctrlN,
		typed("Fish"), ctrlX)

	_, opts := m.form.values()
	assert.Equal(t, []string{"Cat", "Dog"}, opts)
	assert.Equal(t, 2, m.form.focus, "focus moves to the row that took the removed one's place")

	m = send(t, m, ctrlX, ctrlX)
	_, opts = m.form.values()
	assert.Equal(t, []string{""}, opts, "last row is cleared, not removed")

	m = send(t, m, typed("Bird"), enter)
	require.Len(t, s.Polls(), 1)
	assert.Equal(t, []model.Option{{Name: "Bird"}}, s.Polls()[0].Options)
}

func TestCreateSelectsNewPollWhileFiltered(t *testing.T) {
	m, s := newModel(t, []string{"Alpha", "a"}, []string{"Beta", "b"})
	m.polls.SetFilterText("Alpha")
	require.Equal(t, list.FilterApplied, m.polls.FilterState())

	m = send(t, m, typed("c"), typed("Gamma"), tab, typed("g"), enter)

	require.Len(t, s.Polls(), 3)
	assert.Equal(t, list.Unfiltered, m.polls.FilterState())
	it, ok := m.polls.SelectedItem().(pollItem)
	require.True(t, ok)
	assert.Equal(t, "Gamma", it.poll.Name)
}

func TestCancelCreate(t *testing.T) {
	m, s := newModel(t)

	m = send(t, m, typed("c"), typed("Draft"), esc)
	assert.Equal(t, screenPolls, m.screen)
	assert.Empty(t, s.Polls())
}

func TestVoteFromPollScreen(t *testing.T) {
	m, s := newModel(t, []string{"Favorite Color", "Red", "Blue"})

	m = send(t, m, enter)
	require.Equal(t, screenPoll, m.screen)

	m = send(t, m, down, enter, space)
	assert.Equal(t, []model.Option{{Name: "Red"}, {Name: "Blue", Votes: 2}}, s.Polls()[0].Options)
	assert.Contains(t, m.status, `voted "Blue"`)

	it, ok := m.options.Items()[1].(optionItem)
	require.True(t, ok)
	assert.Equal(t, 2, it.Votes)
	assert.Equal(t, 100, it.Percent)
	assert.Contains(t, m.View(), "100%")

	m = send(t, m, esc)
	assert.Equal(t, screenPolls, m.screen)
	pi, ok := m.polls.Items()[0].(pollItem)
	require.True(t, ok)
	assert.Equal(t, "2 options · 2 votes", pi.Description())
}

func TestVoteWriteFailureShowsError(t *testing.T) {
	b := brokenBackend{memstore.New()}
	require.NoError(t, b.Store.Write(poll.Key, `[{"id":1,"name":"Q","options":[{"name":"a","votes":0}]}]`))
	s, err := poll.Open(b, quietLogs)
	require.NoError(t, err)
	m := send(t, New(s), tea.WindowSizeMsg{Width: 80, Height: 24})

	m = send(t, m, enter, enter)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "disk full")
	assert.Zero(t, s.Polls()[0].TotalVotes())
}

func TestRecoveredSnapshotIsReported(t *testing.T) {
	b := memstore.New()
	require.NoError(t, b.Write(poll.Key, "{broken"))
	s, err := poll.Open(b, quietLogs)
	require.NoError(t, err)

	m := New(s)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "unreadable")
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(ctrlC)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewListsPolls(t *testing.T) {
	m, _ := newModel(t, []string{"Lunch", "Pizza", "Sushi"})
	v := m.View()
	assert.Contains(t, v, "Lunch")
	assert.Contains(t, v, "2 options · 0 votes")
}
