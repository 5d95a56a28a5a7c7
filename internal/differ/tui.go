// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/forkctl/forkctl/internal/artifact"
)

// BrowseEntry is one selectable row in the interactive artifact browser.
type BrowseEntry struct {
	Crate string
	Lines int
}

// Browse runs the interactive artifact browser. The list shows every
// entry; opening one reads its artifact from store into a scrollable
// viewport.
func Browse(store artifact.Store, entries []BrowseEntry) error {
	p := tea.NewProgram(browseModel{store: store, entries: entries}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type browseModel struct {
	store   artifact.Store
	entries []BrowseEntry
	cursor  int
	viewing bool
	vp      viewport.Model
	width   int
	height  int
	status  string
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-2, 1)
		return m, nil

	case tea.KeyMsg:
		if m.viewing {
			switch msg.String() {
			case "q", "esc":
				m.viewing = false
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "w":
			return m, tea.WindowSize()
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.entries) == 0 {
				return m, nil
			}
			body, err := m.store.Read(m.entries[m.cursor].Crate)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.vp = viewport.New(m.width, max(m.height-2, 1))
			m.vp.SetContent(string(body))
			m.viewing = true
			m.status = ""
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	title := lipgloss.NewStyle().Foreground(lipgloss.Color("#DEA584")).Bold(true)

	if m.viewing {
		header := title.Render(m.entries[m.cursor].Crate + artifact.Ext)
		return header + "\n" + m.vp.View() + "\n↑/↓: scroll, Q/ESCAPE: back\n"
	}

	s := title.Render("Crates with differences:") + "\n\n"
	for i, e := range m.entries {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		s += fmt.Sprintf("%s %-24s %8s lines\n", cursor, e.Crate, humanize.Comma(int64(e.Lines)))
	}
	if m.status != "" {
		s += "\n" + m.status + "\n"
	}
	return s + "\nENTER: view, Q/ESCAPE: quit\n"
}
