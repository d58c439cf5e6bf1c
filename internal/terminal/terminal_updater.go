package terminal

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	switch m.uiState {
	case VIEW_LIST_PORTS:
		return m.updatePortSelection(msg)
	case VIEW_LOADING:
		return m.updateLoading(msg)
	}

	return m, nil
}

func (m model) updatePortSelection(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.potentialPorts)-1 {
				m.cursor++
			}
		case "r":
			m.uiState = VIEW_LOADING
			return m, refreshPorts(m.lister)
		case "enter":
			if len(m.potentialPorts) == 0 {
				return m, nil
			}
			m.portName = m.potentialPorts[m.cursor]
			m.uiState = VIEW_DONE
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m model) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case portsMsg:
		m.potentialPorts = msg
		m.err = nil
		m.cursor = 0
		m.uiState = VIEW_LIST_PORTS
		return m, nil
	case portsErrorMsg:
		m.err = msg
		m.uiState = VIEW_LIST_PORTS
		return m, nil
	}
	return m, nil
}
