// Package tui provides the interactive terminal UI: document preview on
// the left, patch payload entry on the right, run log underneath.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kvit-s/tokpatch/internal/patch"
	"github.com/kvit-s/tokpatch/internal/runner"
	"github.com/kvit-s/tokpatch/internal/schema"
)

const (
	focusPatch = iota
	focusPreview
)

var (
	focusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))
	blurredBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	logStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Model is the bubbletea model for an interactive patch session.
type Model struct {
	filePath string
	text     string // current document text, updated after each apply
	dirty    bool   // text differs from what is on disk

	run *runner.Runner

	preview viewport.Model
	entry   textarea.Model
	logs    []string
	status  string
	statErr bool
	focus   int

	width  int
	height int
	ready  bool
}

// New loads filePath and builds the initial model.
func New(filePath string, run *runner.Runner) (*Model, error) {
	data, err := runner.ReadDocument(filePath)
	if err != nil {
		return nil, err
	}

	ta := textarea.New()
	ta.Placeholder = schema.Text
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Focus()

	return &Model{
		filePath: filePath,
		text:     data,
		run:      run,
		entry:    ta,
		status:   "ready",
		focus:    focusPatch,
	}, nil
}

// Run starts the interactive session and blocks until it exits.
func Run(filePath string, run *runner.Runner) error {
	m, err := New(filePath, run)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.toggleFocus()
			return m, nil
		case "ctrl+p":
			m.applyPatch()
			return m, nil
		case "ctrl+s":
			m.save()
			return m, nil
		case "ctrl+g":
			if err := schema.CopyToClipboard(); err != nil {
				m.setStatus("schema copy failed: "+err.Error(), true)
			} else {
				m.setStatus("schema copied to clipboard", false)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == focusPatch {
		m.entry, cmd = m.entry.Update(msg)
	} else {
		m.preview, cmd = m.preview.Update(msg)
	}
	return m, cmd
}

func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	previewPane := blurredBorder.Render(m.preview.View())
	entryPane := blurredBorder.Render(m.entry.View())
	if m.focus == focusPreview {
		previewPane = focusedBorder.Render(m.preview.View())
	} else {
		entryPane = focusedBorder.Render(m.entry.View())
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, previewPane, entryPane)

	var b strings.Builder
	b.WriteString(titleStyle.Render("tokpatch: " + m.filePath))
	if m.dirty {
		b.WriteString(" *")
	}
	b.WriteString("\n")
	b.WriteString(top)
	b.WriteString("\n")
	b.WriteString(logStyle.Render(m.logTail()))
	b.WriteString("\n")
	if m.statErr {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString(logStyle.Render("  [tab] switch  [ctrl+p] apply  [ctrl+s] save  [ctrl+g] schema  [ctrl+c] quit"))
	return b.String()
}

func (m *Model) layout() {
	paneWidth := m.width/2 - 3
	logLines := 6
	paneHeight := m.height - logLines - 5
	if paneHeight < 3 {
		paneHeight = 3
	}

	if !m.ready {
		m.preview = viewport.New(paneWidth, paneHeight)
		m.preview.SetContent(m.text)
		m.ready = true
	} else {
		m.preview.Width = paneWidth
		m.preview.Height = paneHeight
	}
	m.entry.SetWidth(paneWidth)
	m.entry.SetHeight(paneHeight)
}

func (m *Model) toggleFocus() {
	if m.focus == focusPatch {
		m.focus = focusPreview
		m.entry.Blur()
	} else {
		m.focus = focusPatch
		m.entry.Focus()
	}
}

func (m *Model) applyPatch() {
	payload := strings.TrimSpace(m.entry.Value())
	if payload == "" {
		m.setStatus("no patch to apply", true)
		return
	}

	res, err := m.run.Engine().ApplyPayload(m.text, []byte(payload))
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}

	m.text = res.Text
	m.dirty = true
	m.preview.SetContent(m.text)
	for _, o := range res.Outcomes {
		m.logs = append(m.logs, outcomeLine(o))
	}
	m.setStatus(fmt.Sprintf("%d/%d hunks applied", res.AppliedCount(), len(res.Outcomes)),
		!res.AllApplied())
}

func (m *Model) save() {
	if !m.dirty {
		m.setStatus("nothing to save", false)
		return
	}
	out := runner.VersionedPath(m.filePath, runner.NextVersionSuffix(m.filePath))
	if err := runner.WriteFileAtomic(out, m.text); err != nil {
		m.setStatus("save failed: "+err.Error(), true)
		return
	}
	m.dirty = false
	m.setStatus("saved: "+out, false)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statErr = isErr
}

func (m *Model) logTail() string {
	const keep = 6
	start := 0
	if len(m.logs) > keep {
		start = len(m.logs) - keep
	}
	return strings.Join(m.logs[start:], "\n")
}

func outcomeLine(o patch.Outcome) string {
	label := fmt.Sprintf("hunk %d", o.Index+1)
	if o.Description != "" {
		label += " (" + o.Description + ")"
	}
	if o.Applied() {
		return fmt.Sprintf("%s: applied, %s match at line %d", label, o.Mode, o.Span.Start+1)
	}
	return fmt.Sprintf("%s: failed: %s", label, o.Reason)
}
