// Package tui is the interactive browser over the chat archive: a hit list
// on the left, the surrounding conversation on the right.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zuo-Peng/chatprint/internal/index"
	"github.com/Zuo-Peng/chatprint/internal/search"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const settleDelay = 200 * time.Millisecond

type resultsMsg struct {
	query  string
	sender string
	hits   []search.Result
	err    error
}

// settleMsg fires once typing pauses; it is dropped if the query moved on.
type settleMsg struct {
	query string
}

type browser struct {
	db   *index.DB
	base search.Options
	list bool // chats instead of messages when the query is empty
	user string

	input  textinput.Model
	query  string
	sender string

	hits []search.Result
	sel  int
	top  int

	pane   viewport.Model
	shown  string // paneKey of the rendered chat
	groups []int

	w, h   int
	sized  bool
	done   bool
	picked *search.Result
}

func newBrowser(db *index.DB, query string, opts search.Options, list bool, user string) browser {
	in := textinput.New()
	in.Prompt = "> "
	in.PromptStyle = stylePrompt
	in.CharLimit = 256
	in.Placeholder = "Search messages..."
	if list {
		in.Placeholder = "Filter chats..."
	}
	in.SetValue(query)
	in.Focus()

	return browser{
		db:     db,
		base:   opts,
		list:   list,
		user:   user,
		input:  in,
		query:  query,
		sender: opts.Sender,
		pane:   viewport.New(0, 0),
	}
}

// Run opens the browser on the messages matching query. Enter copies the
// selected message to the clipboard.
func Run(db *index.DB, query string, opts search.Options, user string) error {
	return run(newBrowser(db, query, opts, false, user))
}

// RunList opens the browser on every chat, most recently active first.
func RunList(db *index.DB, opts search.Options, user string) error {
	return run(newBrowser(db, "", opts, true, user))
}

func run(b browser) error {
	final, err := tea.NewProgram(b, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if fb := final.(browser); fb.picked != nil {
		return copyMessage(fb.db, *fb.picked)
	}
	return nil
}

func (b browser) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, b.fetch())
}

func (b browser) fetch() tea.Cmd {
	db, list := b.db, b.list
	opts := b.base
	opts.Query, opts.Sender = b.query, b.sender
	return func() tea.Msg {
		msg := resultsMsg{query: opts.Query, sender: opts.Sender}
		switch {
		case opts.Query != "":
			msg.hits, msg.err = search.Search(db, opts)
		case list:
			msg.hits, msg.err = search.ListAll(db, opts)
		}
		return msg
	}
}

func (b browser) current() (search.Result, bool) {
	if b.sel < 0 || b.sel >= len(b.hits) {
		return search.Result{}, false
	}
	return b.hits[b.sel], true
}

func (b browser) loadCurrent() tea.Cmd {
	r, ok := b.current()
	if !ok || paneKey(r) == b.shown {
		return nil
	}
	return loadPane(b.db, r, b.query, b.user, b.paneWidth())
}

func (b *browser) clearPane(text string) {
	b.pane.SetContent(text)
	b.shown = ""
	b.groups = nil
}

func (b *browser) move(delta int) tea.Cmd {
	next := b.sel + delta
	if next < 0 || next >= len(b.hits) {
		return nil
	}
	b.sel = next
	b.top = scrollTo(b.sel, b.top, b.panelHeight()/rowHeight)
	return b.loadCurrent()
}

func (b browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.w, b.h, b.sized = msg.Width, msg.Height, true
		b.pane = viewport.New(b.paneWidth(), b.panelHeight())
		b.shown = ""
		return b, b.loadCurrent()

	case tea.KeyMsg:
		return b.onKey(msg)

	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonWheelUp && msg.Button != tea.MouseButtonWheelDown {
			return b, nil
		}
		if msg.X < b.listWidth()+2 {
			if msg.Button == tea.MouseButtonWheelUp {
				return b, b.move(-1)
			}
			return b, b.move(1)
		}
		var cmd tea.Cmd
		b.pane, cmd = b.pane.Update(msg)
		return b, cmd

	case settleMsg:
		if msg.query != b.query {
			return b, nil
		}
		return b, b.fetch()

	case resultsMsg:
		if msg.query != b.query || msg.sender != b.sender {
			return b, nil
		}
		b.sel, b.top = 0, 0
		if msg.err != nil {
			b.hits = nil
			b.clearPane("Error: " + msg.err.Error())
			return b, nil
		}
		b.hits = msg.hits
		if len(b.hits) == 0 {
			b.clearPane("")
			return b, nil
		}
		return b, b.loadCurrent()

	case paneMsg:
		r, ok := b.current()
		if !ok || paneKey(r) != msg.key {
			return b, nil
		}
		b.shown = msg.key
		if msg.err != nil {
			b.pane.SetContent("Preview error: " + msg.err.Error())
			b.groups = nil
			return b, nil
		}
		b.pane.SetContent(msg.content)
		b.groups = msg.layout.Groups
		if msg.layout.Hit > 0 {
			b.pane.SetYOffset(msg.layout.Hit)
		} else {
			b.pane.GotoTop()
		}
		return b, nil
	}
	return b, nil
}

func (b browser) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		b.done = true
		return b, tea.Quit

	case key.Matches(msg, keys.Copy):
		if r, ok := b.current(); ok {
			b.picked = &r
			b.done = true
			return b, tea.Quit
		}
		return b, nil

	case key.Matches(msg, keys.Up):
		return b, b.move(-1)

	case key.Matches(msg, keys.Down):
		return b, b.move(1)

	case key.Matches(msg, keys.NextGroup):
		b.pane.SetYOffset(nextGroup(b.groups, b.pane.YOffset, 1))
		return b, nil

	case key.Matches(msg, keys.PrevGroup):
		b.pane.SetYOffset(nextGroup(b.groups, b.pane.YOffset, -1))
		return b, nil

	case key.Matches(msg, keys.HalfUp):
		b.pane.LineUp(b.panelHeight() / 2)
		return b, nil

	case key.Matches(msg, keys.HalfDown):
		b.pane.LineDown(b.panelHeight() / 2)
		return b, nil

	case key.Matches(msg, keys.Sender):
		var senders []string
		if r, ok := b.current(); ok {
			var err error
			if senders, err = chatSenders(b.db, r.ChatKey); err != nil {
				b.clearPane("Error: " + err.Error())
				return b, nil
			}
		}
		next := nextSender(b.sender, senders)
		if next == b.sender {
			return b, nil
		}
		b.sender = next
		return b, b.fetch()
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	if v := b.input.Value(); v != b.query {
		b.query = v
		return b, tea.Batch(cmd, tea.Tick(settleDelay, func(time.Time) tea.Msg {
			return settleMsg{query: v}
		}))
	}
	return b, cmd
}

func (b browser) View() string {
	if b.done || !b.sized {
		return ""
	}
	lw, pw, ph := b.listWidth(), b.paneWidth(), b.panelHeight()
	list := styleList.Width(lw).Height(ph).Render(b.renderRows(lw, ph))
	pane := stylePane.Width(pw).Height(ph).Render(b.pane.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		b.input.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, list, pane),
		b.status(),
	)
}

func (b browser) status() string {
	noun := "hits"
	if b.list && b.query == "" {
		noun = "chats"
	}
	parts := []string{fmt.Sprintf("%d %s", len(b.hits), noun)}
	if b.sender != "" {
		parts = append(parts, styleFilter.Render("from "+b.sender))
	}
	if n := len(b.groups); n > 0 {
		parts = append(parts, fmt.Sprintf("period %d/%d", groupAt(b.groups, b.pane.YOffset), n))
	}
	for _, k := range keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	st := styleStatus
	if b.w > 0 {
		st = st.MaxWidth(b.w)
	}
	return st.Render(strings.Join(parts, " · "))
}

// Panel sizes exclude the rounded borders.
func (b browser) listWidth() int {
	return max(b.w*2/5-2, 20)
}

func (b browser) paneWidth() int {
	return max(b.w-b.listWidth()-4, 20)
}

func (b browser) panelHeight() int {
	return max(b.h-4, 1)
}
