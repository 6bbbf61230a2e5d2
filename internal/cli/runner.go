package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/idilsaglam/poll/internal/model"
	"github.com/idilsaglam/poll/internal/poll"
	"github.com/idilsaglam/poll/internal/ui"
)

// Options carries the store and output streams into the subcommands.
type Options struct {
	Store *poll.Store
	Out   io.Writer
	Err   io.Writer
	// Interactive starts the TUI for the "tui" subcommand.
	Interactive func(*poll.Store) error
}

const barWidth = 24

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp(opt.Err)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "ls":
		return doList(opt)

	case "create":
		if len(a) < 2 {
			ui.Fail(opt.Err, "usage: poll create <name> <option> [option...]")
			return 2
		}
		return doCreate(opt, a[0], a[1:])

	case "vote":
		if len(a) != 2 {
			ui.Fail(opt.Err, "usage: poll vote <poll-id> <option-number>")
			return 2
		}
		id, err := strconv.ParseInt(a[0], 10, 64)
		if err != nil {
			ui.Fail(opt.Err, "vote: not a poll id: "+a[0])
			return 2
		}
		n, err := strconv.Atoi(a[1])
		if err != nil {
			ui.Fail(opt.Err, "vote: not a number: "+a[1])
			return 2
		}
		return doVote(opt, id, n)

	case "results":
		if len(a) != 1 {
			ui.Fail(opt.Err, "usage: poll results <poll-id>")
			return 2
		}
		id, err := strconv.ParseInt(a[0], 10, 64)
		if err != nil {
			ui.Fail(opt.Err, "results: not a poll id: "+a[0])
			return 2
		}
		return doResults(opt, id)

	case "tui":
		if opt.Interactive == nil {
			ui.Fail(opt.Err, "tui: not available")
			return 1
		}
		if err := opt.Interactive(opt.Store); err != nil {
			ui.Fail(opt.Err, "tui: "+err.Error())
			return 1
		}
		return 0
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `poll - local polls in your terminal

Usage:
  poll [flags] <subcommand> [args]

Subcommands:
  ls                          List polls with live vote counts
  create <name> <option>...   Create a poll (quote multi-word values)
  vote <poll-id> <option>     Vote for the option at 1-based position
  results <poll-id>           Show each option's share of the votes
  tui                         Interactive mode

Flags:
  -backend file|sqlite|memory   Storage backend (POLL_BACKEND)
  -data <dir>                   Data directory (POLL_DATA_DIR, default ~/.poll)
  -theme classic|neon|mono      Color theme (POLL_THEME)
  -log-level <level>            debug, info, warn, error (POLL_LOG_LEVEL)
  -log-file <path>              Log destination (POLL_LOG_FILE)
  -no-color                     Disable colors (NO_COLOR)

Examples:
  poll create "Favorite Color" Red Blue
  poll ls
  poll vote 1718000000000 2
  poll results 1718000000000
`)
}

// -------------- subcommand impls ----------------

func doList(opt Options) int {
	t := ui.Current()
	polls := opt.Store.Polls()

	votes := 0
	for _, p := range polls {
		votes += p.TotalVotes()
	}
	header := fmt.Sprintf("%s  %s %d  %s %d",
		t.Title.Render("Polls"),
		t.Accent.Render("Total"), len(polls),
		t.Success.Render("Votes"), votes,
	)

	lines := []string{header, ""}
	lines = append(lines, pollLines(polls)...)
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: vote with `poll vote <poll-id> <option>`"))
	if err := opt.Store.Recovered(); err != nil {
		lines = append(lines, t.Pending.Render("Stored polls were unreadable and have been reset: "+err.Error()))
	}
	ui.Panel(opt.Out, lines)
	return 0
}

func doCreate(opt Options, name string, options []string) int {
	p, err := opt.Store.CreatePoll(name, options)
	if err != nil {
		if poll.IsValidation(err) {
			ui.Fail(opt.Err, "create: "+err.Error())
			return 2
		}
		ui.Fail(opt.Err, "save: "+err.Error())
		return 1
	}
	ui.OK(opt.Out, fmt.Sprintf("created poll %d", p.ID))
	return 0
}

func doVote(opt Options, id int64, userIndex int) int {
	p, err := opt.Store.CastVote(id, userIndex-1)
	switch {
	case errors.Is(err, poll.ErrPollNotFound):
		ui.Fail(opt.Err, fmt.Sprintf("no poll with id %d", id))
		fmt.Fprintln(opt.Err, ui.Current().Muted.Render("Hint: run `poll ls` to see poll ids"))
		return 2
	case errors.Is(err, poll.ErrOptionNotFound):
		have, _ := opt.Store.Poll(id)
		ui.Fail(opt.Err, fmt.Sprintf("option out of range: have %d, got %d", len(have.Options), userIndex))
		return 2
	case err != nil:
		ui.Fail(opt.Err, "save: "+err.Error())
		return 1
	}
	o := p.Options[userIndex-1]
	ui.OK(opt.Out, fmt.Sprintf("voted %q (%d %s)", o.Name, o.Votes, plural(o.Votes, "vote", "votes")))
	return 0
}

func doResults(opt Options, id int64) int {
	p, err := opt.Store.Poll(id)
	if err != nil {
		ui.Fail(opt.Err, fmt.Sprintf("no poll with id %d", id))
		return 2
	}
	ui.Panel(opt.Out, resultLines(p))
	return 0
}

// -------------- rendering helpers --------------

func pollLines(polls []model.Poll) []string {
	t := ui.Current()
	if len(polls) == 0 {
		return []string{t.Muted.Render("no polls yet")}
	}
	var out []string
	for i, p := range polls {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, fmt.Sprintf("%s %s", t.Muted.Render(strconv.FormatInt(p.ID, 10)), t.Title.Render(ui.Truncate(p.Name, 60))))
		for j, o := range p.Options {
			out = append(out, fmt.Sprintf("  %s %s %s",
				t.Muted.Render(fmt.Sprintf("%2d.", j+1)),
				ui.Truncate(o.Name, 60),
				t.Accent.Render(fmt.Sprintf("- Votes: %d", o.Votes))))
		}
	}
	return out
}

func resultLines(p model.Poll) []string {
	t := ui.Current()
	total := p.TotalVotes()
	lines := []string{
		t.Title.Render(p.Name),
		t.Muted.Render(fmt.Sprintf("%d %s", total, plural(total, "vote", "votes"))),
		"",
	}
	width := 0
	for _, o := range p.Options {
		width = max(width, len([]rune(ui.Truncate(o.Name, 30))))
	}
	for i, o := range p.Options {
		name := ui.Truncate(o.Name, 30)
		pad := strings.Repeat(" ", width-len([]rune(name)))
		lines = append(lines, fmt.Sprintf("%s%s  %s  %s",
			name, pad,
			t.Accent.Render(ui.ShareBar(p.Percent(i), barWidth)),
			t.Muted.Render(fmt.Sprintf("%d %s", o.Votes, plural(o.Votes, "vote", "votes")))))
	}
	return lines
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
