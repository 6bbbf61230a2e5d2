package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/poll/internal/model"
	"github.com/idilsaglam/poll/internal/poll"
	"github.com/idilsaglam/poll/internal/ui"
)

type screen int

const (
	screenPolls screen = iota
	screenPoll
	screenCreate
)

const barWidth = 20

// pollItem adapts a poll to bubbles/list with the default delegate.
type pollItem struct {
	poll model.Poll
}

func (i pollItem) Title() string { return i.poll.Name }
func (i pollItem) Description() string {
	n, v := len(i.poll.Options), i.poll.TotalVotes()
	return fmt.Sprintf("%d %s · %d %s", n, plural(n, "option", "options"), v, plural(v, "vote", "votes"))
}
func (i pollItem) FilterValue() string { return i.poll.Name }

// optionItem is one row on the poll screen.
type optionItem struct {
	Name    string
	Votes   int
	Percent int
}

func (i optionItem) FilterValue() string { return i.Name }

// Custom delegate to render options on a single line with their share bar.
type optionDelegate struct{}

func (d optionDelegate) Height() int                               { return 1 }
func (d optionDelegate) Spacing() int                              { return 0 }
func (d optionDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d optionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(optionItem)
	if !ok {
		return
	}
	t := ui.Current()

	nameWidth := max(10, m.Width()-barWidth-20)
	name := ui.Truncate(it.Name, nameWidth)
	name += strings.Repeat(" ", max(0, nameWidth-len([]rune(name))))

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(t.SymCursor) + " "
		name = t.Selected.Render(name)
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, name,
		t.Accent.Render(ui.ShareBar(it.Percent, barWidth)),
		t.Muted.Render(fmt.Sprintf("%d %s", it.Votes, plural(it.Votes, "vote", "votes"))))
}

// Model is the interactive poll browser. Every vote and creation goes
// straight to the store, so quitting never loses state.
type Model struct {
	store *poll.Store
	keys  keyMap

	screen  screen
	polls   list.Model
	options list.Model
	current int64
	form    form

	status    string
	statusErr bool

	width, height int
}

// New builds the model over s with the poll list showing.
func New(s *poll.Store) Model {
	keys := defaultKeys()
	t := ui.Current()

	pl := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	pl.Title = "Polling System"
	pl.Styles.Title = t.Title
	pl.SetStatusBarItemName("poll", "polls")
	pl.FilterInput.Prompt = "/ "
	pl.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{keys.Create, keys.Open} }
	pl.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{keys.Create, keys.Open} }

	ol := list.New(nil, optionDelegate{}, 0, 0)
	ol.Styles.Title = t.Title
	ol.SetFilteringEnabled(false)
	ol.SetShowStatusBar(false)
	ol.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{keys.Vote, keys.Back} }
	ol.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{keys.Vote, keys.Back} }

	m := Model{
		store:   s,
		keys:    keys,
		polls:   pl,
		options: ol,
		form:    newForm(),
		width:   80,
		height:  24,
	}
	m.refreshPolls()
	if err := s.Recovered(); err != nil {
		m.setError(fmt.Errorf("stored polls were unreadable and have been reset: %w", err))
	}
	m.resize()
	return m
}

// Run starts the TUI on the alternate screen and blocks until quit.
func Run(s *poll.Store) error {
	_, err := tea.NewProgram(New(s), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
	}

	switch m.screen {
	case screenCreate:
		return m.updateCreate(msg)
	case screenPoll:
		return m.updatePoll(msg)
	}
	return m.updatePolls(msg)
}

func (m Model) updatePolls(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && m.polls.FilterState() != list.Filtering {
		switch {
		case key.Matches(km, m.keys.Create):
			m.screen = screenCreate
			m.form = newForm()
			m.status = ""
			cmd := m.form.focusAt(0)
			return m, cmd
		case key.Matches(km, m.keys.Open):
			if it, ok := m.polls.SelectedItem().(pollItem); ok {
				m.openPoll(it.poll)
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.polls, cmd = m.polls.Update(msg)
	return m, cmd
}

func (m Model) updatePoll(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, m.keys.Back):
			m.screen = screenPolls
			m.refreshPolls()
			return m, nil
		case key.Matches(km, m.keys.Vote):
			m.vote(m.options.Index())
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.options, cmd = m.options.Update(msg)
	return m, cmd
}

func (m Model) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, m.keys.Cancel):
			m.screen = screenPolls
			m.form = newForm()
			return m, nil
		case key.Matches(km, m.keys.Submit):
			m.submit()
			return m, nil
		case key.Matches(km, m.keys.Next):
			cmd := m.form.next()
			return m, cmd
		case key.Matches(km, m.keys.Prev):
			cmd := m.form.prev()
			return m, cmd
		case key.Matches(km, m.keys.AddOption):
			cmd := m.form.addOption()
			return m, cmd
		case key.Matches(km, m.keys.RemoveOption):
			cmd := m.form.removeOption()
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m *Model) submit() {
	name, opts := m.form.values()
	p, err := m.store.CreatePoll(name, opts)
	if err != nil {
		if poll.IsValidation(err) {
			m.form.err = err.Error()
		} else {
			m.form.err = "save failed: " + err.Error()
		}
		return
	}
	m.form = newForm()
	m.screen = screenPolls
	m.refreshPolls()
	// an applied filter would make the position below point elsewhere
	m.polls.ResetFilter()
	m.polls.Select(len(m.polls.Items()) - 1)
	m.setStatus(fmt.Sprintf("created %q", p.Name))
}

func (m *Model) vote(i int) {
	p, err := m.store.CastVote(m.current, i)
	if err != nil {
		m.setError(err)
		return
	}
	m.showOptions(p)
	m.setStatus(fmt.Sprintf("voted %q", p.Options[i].Name))
}

func (m *Model) openPoll(p model.Poll) {
	m.screen = screenPoll
	m.current = p.ID
	m.status = ""
	m.options.Select(0)
	m.showOptions(p)
}

func (m *Model) showOptions(p model.Poll) {
	total := p.TotalVotes()
	m.options.Title = fmt.Sprintf("%s  (%d %s)", p.Name, total, plural(total, "vote", "votes"))
	items := make([]list.Item, len(p.Options))
	for i, o := range p.Options {
		items[i] = optionItem{Name: o.Name, Votes: o.Votes, Percent: p.Percent(i)}
	}
	m.options.SetItems(items)
}

func (m *Model) refreshPolls() {
	polls := m.store.Polls()
	items := make([]list.Item, len(polls))
	for i, p := range polls {
		items[i] = pollItem{poll: p}
	}
	m.polls.SetItems(items)
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	msg := err.Error()
	if errors.Is(err, poll.ErrNotFound) {
		msg = "that poll or option no longer exists"
	}
	m.status, m.statusErr = msg, true
}

func (m *Model) resize() {
	// border + padding + status line
	w, h := max(20, m.width-4), max(5, m.height-4)
	m.polls.SetSize(w, h)
	m.options.SetSize(w, h)
}

func (m Model) View() string {
	t := ui.Current()
	var content string
	switch m.screen {
	case screenCreate:
		help := make([]string, 0, 5)
		for _, b := range m.keys.formHelp() {
			h := b.Help()
			help = append(help, h.Key+" "+h.Desc)
		}
		content = m.form.view() + "\n" + t.Muted.Render(strings.Join(help, " • "))
	case screenPoll:
		content = m.options.View()
	default:
		content = m.polls.View()
	}
	if m.status != "" {
		style := t.Success
		if m.statusErr {
			style = t.Error
		}
		content += "\n" + style.Render(m.status)
	}
	return ui.Box(content)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
