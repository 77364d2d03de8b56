// Package ui provides the terminal preview of a selection before it is written.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skycat/internal/astro"
	"github.com/litescript/ls-skycat/internal/catalog"
	"github.com/litescript/ls-skycat/internal/encode"
)

// ErrAborted is returned when the user leaves the preview without confirming.
var ErrAborted = errors.New("preview aborted")

const (
	minWidth  = 40
	minHeight = 12

	// Rows taken by header, separators and footer
	chromeRows = 5
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135")) // violet
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))             // muted purple
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))            // gold
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d0c8ff")).Bold(true)
)

// PreviewModel lists the selected records and plots them on a small
// equirectangular sky map.
type PreviewModel struct {
	records []catalog.Record
	opts    encode.Options

	width  int
	height int

	cursor int
	offset int

	confirmed bool
	aborted   bool
}

// NewPreview creates a preview over records. Coordinates are shown as they
// will be written under opts.
func NewPreview(records []catalog.Record, opts encode.Options) PreviewModel {
	return PreviewModel{
		records: records,
		opts:    opts,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (m PreviewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		case "q", "enter":
			m.confirmed = true
			return m, tea.Quit
		case "up", "k":
			m = m.moveCursor(-1)
		case "down", "j":
			m = m.moveCursor(1)
		case "pgup", "b":
			m = m.moveCursor(-m.listRows())
		case "pgdown", "f", " ":
			m = m.moveCursor(m.listRows())
		case "home", "g":
			m = m.moveCursor(-len(m.records))
		case "end", "G":
			m = m.moveCursor(len(m.records))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m = m.moveCursor(0)
	}

	return m, nil
}

// Cursor returns the index of the focused record.
func (m PreviewModel) Cursor() int {
	return m.cursor
}

// Aborted reports whether the user cancelled.
func (m PreviewModel) Aborted() bool {
	return m.aborted
}

// Confirmed reports whether the user accepted the selection.
func (m PreviewModel) Confirmed() bool {
	return m.confirmed
}

func (m PreviewModel) moveCursor(delta int) PreviewModel {
	if len(m.records) == 0 {
		m.cursor, m.offset = 0, 0
		return m
	}

	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.records) {
		m.cursor = len(m.records) - 1
	}

	// Keep the cursor inside the visible window
	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	return m
}

// listRows is the number of list lines that fit beside the sky plot.
func (m PreviewModel) listRows() int {
	rows := m.height - chromeRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View implements tea.Model.
func (m PreviewModel) View() string {
	if m.width < minWidth || m.height < minHeight {
		return "Preview requires larger terminal"
	}

	listWidth := m.width / 2
	plotWidth := m.width - listWidth - 1
	rows := m.listRows()

	list := m.renderList(listWidth, rows)
	plot := renderSkyPlot(m.records, m.cursor, m.opts, plotWidth, rows)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, " ", plot))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("j/k move • f/b page • enter/q write • esc abort"))

	return b.String()
}

func (m PreviewModel) renderHeader() string {
	title := titleStyle.Render("skycat preview")
	count := accentStyle.Render(fmt.Sprintf("%d objects", len(m.records)))

	flags := []string{m.opts.Mode.String()}
	if m.opts.InvertRA {
		flags = append(flags, "invert-ra")
	}
	if m.opts.IncludeName {
		flags = append(flags, "includename")
	}
	return fmt.Sprintf("%s | %s | %s", title, count, dimStyle.Render(strings.Join(flags, " ")))
}

func (m PreviewModel) renderList(width, rows int) string {
	lines := make([]string, 0, rows)
	for i := m.offset; i < len(m.records) && i < m.offset+rows; i++ {
		text := truncate(m.describe(m.records[i]), width-2)
		if i == m.cursor {
			lines = append(lines, cursorStyle.Render("▸ "+text))
		} else {
			lines = append(lines, "  "+text)
		}
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

// describe renders one list line.
func (m PreviewModel) describe(r catalog.Record) string {
	switch r.Kind {
	case catalog.KindObject:
		o := r.Object
		return fmt.Sprintf("%-10s %5.2f %-9s %s %s",
			o.ID, o.Magnitude, truncate(o.Type.String(), 9),
			astro.FormatRA(m.opts.RA(o.RAdeg)), astro.FormatDec(o.DecDeg))
	case catalog.KindConstellation:
		c := r.Constellation
		return fmt.Sprintf("%-10s %s (%d segments)", c.Abbr, c.Name, c.Segments())
	default:
		return fmt.Sprintf("%v", r.Value)
	}
}

func (m PreviewModel) renderStatus() string {
	if len(m.records) == 0 {
		return dimStyle.Render("Nothing selected")
	}

	r := m.records[m.cursor]
	switch r.Kind {
	case catalog.KindObject:
		o := r.Object
		status := fmt.Sprintf(">>> %s | mag %.2f | RA %.3f° Dec %.3f°", o.ID, o.Magnitude, m.opts.RA(o.RAdeg), o.DecDeg)
		if len(o.Aliases) > 0 {
			status += " | " + strings.Join(o.Aliases, ", ")
		}
		return accentStyle.Render(truncate(status, m.width))
	case catalog.KindConstellation:
		c := r.Constellation
		return accentStyle.Render(fmt.Sprintf(">>> %s %s | %d lines", c.Abbr, c.Name, len(c.Lines)))
	default:
		return ""
	}
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 2 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-2]) + ".."
}

// RunPreview shows the preview on output (normally the terminal on stderr)
// and blocks until the user confirms or aborts.
func RunPreview(records []catalog.Record, opts encode.Options, input io.Reader, output io.Writer) error {
	p := tea.NewProgram(NewPreview(records, opts),
		tea.WithAltScreen(),
		tea.WithInput(input),
		tea.WithOutput(output),
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run preview: %w", err)
	}
	if m, ok := final.(PreviewModel); ok && m.Aborted() {
		return ErrAborted
	}
	return nil
}
