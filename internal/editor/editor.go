// Package editor implements the umlpad terminal editor.
//
// The editor is a bubbletea model over a line buffer. Edits are autosaved
// through a draft.Autosaver; rendering builds the diagram URL and hands it
// to a viewer.Viewer, which keeps a single display surface open.
//
// Key bindings:
//
//	ctrl+r          render and show the diagram
//	ctrl+s          save now
//	ctrl+o/t/k      insert loop / alt / class snippet
//	tab             complete the entity name before the cursor
//	ctrl+x          clear: restore the default document and delete the draft
//	esc, ctrl+c     save and quit
package editor

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/umlpad/pkg/draft"
	"github.com/matzehuels/umlpad/pkg/plantuml"
	"github.com/matzehuels/umlpad/pkg/render"
	"github.com/matzehuels/umlpad/pkg/viewer"
)

// Options configures a Model.
type Options struct {
	Store    draft.Store
	DraftID  string
	Renderer *render.Renderer
	Viewer   *viewer.Viewer

	// AutosaveDelay defaults to draft.AutosaveDelay.
	AutosaveDelay time.Duration

	// DefaultCode is the document shown when no draft exists and after a
	// clear. Defaults to plantuml.DefaultCode.
	DefaultCode string

	Logger *log.Logger
}

// Model is the editor state.
type Model struct {
	ctx         context.Context
	buf         *buffer
	id          string
	defaultCode string
	autosaver   *draft.Autosaver
	renderer    *render.Renderer
	viewer      *viewer.Viewer
	logger      *log.Logger

	width  int
	height int
	offset int

	comp    *completion
	status  string
	failed  bool
	lastURL string

	quitting bool
	err      error
}

// completion tracks a tab-completion cycle. The current option occupies
// the runes [start, start+len(options[idx])).
type completion struct {
	start   int
	options []string
	idx     int
}

type (
	savedMsg    struct{ err error }
	renderedMsg struct {
		url string
		err error
	}
	clearedMsg struct{ err error }
	quitMsg    struct{ err error }
)

// New loads the draft and creates the editor model.
func New(ctx context.Context, opts Options) (Model, error) {
	if opts.Store == nil || opts.Renderer == nil {
		return Model{}, fmt.Errorf("editor: store and renderer are required")
	}
	if opts.DraftID == "" {
		opts.DraftID = draft.DefaultID
	}
	if opts.DefaultCode == "" {
		opts.DefaultCode = plantuml.DefaultCode
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	code, err := draft.LoadOrDefault(ctx, opts.Store, opts.DraftID, opts.DefaultCode)
	if err != nil {
		return Model{}, fmt.Errorf("load draft %s: %w", opts.DraftID, err)
	}

	return Model{
		ctx:         ctx,
		buf:         newBuffer(code),
		id:          opts.DraftID,
		defaultCode: opts.DefaultCode,
		autosaver:   draft.NewAutosaver(opts.Store, opts.DraftID, opts.AutosaveDelay, opts.Logger),
		renderer:    opts.Renderer,
		viewer:      opts.Viewer,
		logger:      opts.Logger,
		width:       80,
		height:      24,
	}, nil
}

// Text returns the current document.
func (m Model) Text() string { return m.buf.text() }

// Err returns the error that ended the session, if any.
func (m Model) Err() error { return m.err }

// LastURL returns the URL of the most recent render.
func (m Model) LastURL() string { return m.lastURL }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.scroll()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.setError("save failed: %v", msg.err)
		} else {
			m.setStatus("saved")
		}
		return m, nil

	case renderedMsg:
		if msg.err != nil {
			m.setError("render failed: %v", msg.err)
			return m, nil
		}
		m.lastURL = msg.url
		m.setStatus("rendered")
		return m, nil

	case clearedMsg:
		if msg.err != nil {
			m.setError("clear failed: %v", msg.err)
		} else {
			m.setStatus("cleared")
		}
		return m, nil

	case quitMsg:
		m.err = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "tab" {
		m.comp = nil
	}

	switch key {
	case "ctrl+c", "esc":
		if m.quitting {
			return m, nil
		}
		m.quitting = true
		m.autosaver.Touch(m.buf.text())
		return m, m.flushCmd(func(err error) tea.Msg { return quitMsg{err} })
	case "ctrl+s":
		m.autosaver.Touch(m.buf.text())
		return m, m.flushCmd(func(err error) tea.Msg { return savedMsg{err} })
	case "ctrl+r":
		m.setStatus("rendering...")
		return m, m.renderCmd()
	case "ctrl+o":
		m.insertSnippet(plantuml.SnippetLoop)
	case "ctrl+t":
		m.insertSnippet(plantuml.SnippetAlt)
	case "ctrl+k":
		m.insertSnippet(plantuml.SnippetClass)
	case "ctrl+x":
		return m.clear()
	case "tab":
		m.complete()
	case "enter":
		m.buf.newline()
		m.edited()
	case "backspace":
		m.buf.backspace()
		m.edited()
	case "delete":
		m.buf.deleteForward()
		m.edited()
	case "left":
		m.buf.left()
	case "right":
		m.buf.right()
	case "up":
		m.buf.up()
	case "down":
		m.buf.down()
	case "home", "ctrl+a":
		m.buf.home()
	case "end", "ctrl+e":
		m.buf.end()
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.buf.insert(msg.Runes)
			m.edited()
		case tea.KeySpace:
			m.buf.insert([]rune{' '})
			m.edited()
		}
	}
	m.scroll()
	return m, nil
}

// edited schedules an autosave of the current text.
func (m *Model) edited() {
	m.status = ""
	m.autosaver.Touch(m.buf.text())
}

func (m *Model) insertSnippet(s plantuml.Snippet) {
	text, cursor := plantuml.InsertSnippet(m.buf.text(), m.buf.offset(), m.buf.offset(), s.Text)
	m.buf.setText(text)
	m.buf.setOffset(cursor)
	m.edited()
	m.setStatus("inserted " + s.Name)
}

// complete replaces the word before the cursor with the next matching
// entity name. Repeated tabs cycle through the matches.
func (m *Model) complete() {
	text := m.buf.text()

	if c := m.comp; c != nil && len(c.options) > 1 {
		cur := c.options[c.idx]
		c.idx = (c.idx + 1) % len(c.options)
		text, cursor := plantuml.InsertSnippet(text, c.start, c.start+len([]rune(cur)), c.options[c.idx])
		m.buf.setText(text)
		m.buf.setOffset(cursor)
		m.edited()
		return
	}

	word, start := plantuml.WordBefore(text, m.buf.offset())
	if word == "" {
		m.comp = nil
		return
	}
	var options []string
	for _, name := range plantuml.Complete(text, word) {
		if name != word {
			options = append(options, name)
		}
	}
	if len(options) == 0 {
		m.comp = nil
		m.setStatus("no completions for " + word)
		return
	}

	text, cursor := plantuml.InsertSnippet(text, start, m.buf.offset(), options[0])
	m.buf.setText(text)
	m.buf.setOffset(cursor)
	m.edited()
	m.comp = &completion{start: start, options: options}
}

// clear restores the default document, drops the pending autosave, closes
// the diagram surface and deletes the stored draft.
func (m Model) clear() (tea.Model, tea.Cmd) {
	m.buf.setText(m.defaultCode)
	m.offset = 0
	m.lastURL = ""
	if m.viewer != nil {
		if err := m.viewer.Close(); err != nil {
			m.logger.Debug("close viewer", "err", err)
		}
	}

	a, ctx := m.autosaver, m.ctx
	return m, func() tea.Msg {
		return clearedMsg{err: a.Clear(ctx)}
	}
}

func (m Model) flushCmd(done func(error) tea.Msg) tea.Cmd {
	a, ctx := m.autosaver, m.ctx
	return func() tea.Msg {
		return done(a.Flush(ctx))
	}
}

func (m Model) renderCmd() tea.Cmd {
	r, v, ctx, code := m.renderer, m.viewer, m.ctx, m.buf.text()
	return func() tea.Msg {
		res, err := r.Render(ctx, code)
		if err != nil {
			return renderedMsg{err: err}
		}
		if v != nil {
			if err := v.Show(ctx, res.URL); err != nil {
				return renderedMsg{url: res.URL, err: err}
			}
		}
		return renderedMsg{url: res.URL}
	}
}

func (m *Model) setStatus(s string) {
	m.status, m.failed = s, false
}

func (m *Model) setError(format string, args ...any) {
	m.status, m.failed = fmt.Sprintf(format, args...), true
}

// textRows is the number of buffer lines that fit on screen.
func (m Model) textRows() int {
	return max(m.height-4, 1)
}

func (m *Model) scroll() {
	rows := m.textRows()
	if m.buf.row < m.offset {
		m.offset = m.buf.row
	}
	if m.buf.row >= m.offset+rows {
		m.offset = m.buf.row - rows + 1
	}
}

func (m Model) View() string {
	var b strings.Builder

	title := titleStyle.Render("umlpad") + " " + dimStyle.Render(m.id)
	if m.autosaver.Pending() {
		title += dimStyle.Render(" •")
	}
	b.WriteString(title)
	b.WriteString("\n")

	end := min(m.offset+m.textRows(), len(m.buf.lines))
	for i := m.offset; i < end; i++ {
		b.WriteString(gutterStyle.Render(fmt.Sprintf("%d", i+1)))
		b.WriteString(m.renderLine(i))
		b.WriteString("\n")
	}

	switch {
	case m.comp != nil:
		parts := make([]string, len(m.comp.options))
		for i, o := range m.comp.options {
			if i == m.comp.idx {
				parts[i] = selectedStyle.Render(o)
			} else {
				parts[i] = optionStyle.Render(o)
			}
		}
		b.WriteString(strings.Join(parts, dimStyle.Render(" · ")))
	case m.failed:
		b.WriteString(errStyle.Render(m.status))
	case m.lastURL != "" && m.status == "rendered":
		b.WriteString(okStyle.Render("rendered ") + linkStyle.Render(m.lastURL))
	default:
		b.WriteString(okStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("^r render  ^s save  ^o/^t/^k loop/alt/class  tab complete  ^x clear  esc quit"))
	return b.String()
}

func (m Model) renderLine(i int) string {
	line := m.buf.lines[i]
	if i != m.buf.row {
		return string(line)
	}
	col := m.buf.col
	if col >= len(line) {
		return string(line) + cursorStyle.Render(" ")
	}
	return string(line[:col]) + cursorStyle.Render(string(line[col])) + string(line[col+1:])
}

// Run starts the editor in the terminal and blocks until the user quits.
// Pending edits are saved before Run returns.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.autosaver.OnSave(func(_ *draft.Draft, err error) {
		p.Send(savedMsg{err})
	})
	defer m.autosaver.Stop()

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	if flushErr := m.autosaver.Flush(context.Background()); flushErr != nil && err == nil {
		err = flushErr
	}
	if err != nil {
		return m, err
	}
	return m, m.err
}
