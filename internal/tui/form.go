package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/poll/internal/ui"
)

const inputLimit = 200

// form is the create-poll form: a name field followed by one row per
// option. focus 0 is the name, focus i>0 is options[i-1].
type form struct {
	name    textinput.Model
	options []textinput.Model
	focus   int
	err     string
}

func newForm() form {
	name := textinput.New()
	name.Prompt = "> "
	name.Placeholder = "Enter poll name"
	name.CharLimit = inputLimit
	f := form{name: name}
	f.options = append(f.options, newOptionInput(1))
	return f
}

func newOptionInput(n int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = fmt.Sprintf("%d. ", n)
	ti.Placeholder = fmt.Sprintf("Option %d", n)
	ti.CharLimit = inputLimit
	return ti
}

func (f *form) fields() int { return 1 + len(f.options) }

func (f *form) input(i int) *textinput.Model {
	if i == 0 {
		return &f.name
	}
	return &f.options[i-1]
}

func (f *form) focusAt(i int) tea.Cmd {
	if i < 0 {
		i = f.fields() - 1
	}
	if i >= f.fields() {
		i = 0
	}
	f.input(f.focus).Blur()
	f.focus = i
	return f.input(i).Focus()
}

func (f *form) next() tea.Cmd { return f.focusAt(f.focus + 1) }
func (f *form) prev() tea.Cmd { return f.focusAt(f.focus - 1) }

func (f *form) addOption() tea.Cmd {
	f.options = append(f.options, newOptionInput(len(f.options)+1))
	return f.focusAt(f.fields() - 1)
}

// removeOption drops the focused option row. The last remaining row is
// cleared instead so the form always has somewhere to type an option.
func (f *form) removeOption() tea.Cmd {
	if f.focus == 0 {
		return nil
	}
	if len(f.options) == 1 {
		f.options[0].SetValue("")
		return nil
	}
	idx := f.focus - 1
	f.options = append(f.options[:idx], f.options[idx+1:]...)
	for i := range f.options {
		f.options[i].Prompt = fmt.Sprintf("%d. ", i+1)
		f.options[i].Placeholder = fmt.Sprintf("Option %d", i+1)
	}
	f.focus = 0
	return f.focusAt(min(idx+1, f.fields()-1))
}

func (f form) values() (string, []string) {
	opts := make([]string, len(f.options))
	for i, o := range f.options {
		opts[i] = o.Value()
	}
	return f.name.Value(), opts
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	in := f.input(f.focus)
	*in, cmd = in.Update(msg)
	return f, cmd
}

func (f form) view() string {
	t := ui.Current()
	var b strings.Builder
	b.WriteString(t.Title.Render("Create a New Poll"))
	b.WriteString("\n\n")
	b.WriteString(t.Accent.Render("Poll Name"))
	b.WriteString("\n")
	b.WriteString(f.name.View())
	b.WriteString("\n\n")
	b.WriteString(t.Accent.Render("Options"))
	b.WriteString("\n")
	for _, o := range f.options {
		b.WriteString(o.View())
		b.WriteString("\n")
	}
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(t.Error.Render(f.err))
		b.WriteString("\n")
	}
	return b.String()
}
