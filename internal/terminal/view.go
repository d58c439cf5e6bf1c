package terminal

import (
	"fmt"
	"strings"
)

func (m model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Turret serial link"))
	s.WriteString("\n\n")

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error %v", m.err)))
		s.WriteString("\n\n")
	}

	switch m.uiState {
	case VIEW_LIST_PORTS:
		s.WriteString(mutedStyle.Render("Select a port:"))
		s.WriteString("\n\n")
		if len(m.potentialPorts) == 0 {
			s.WriteString(mutedStyle.Render("  (none)"))
			s.WriteString("\n")
		}
		for i, port := range m.potentialPorts {
			s.WriteString(renderCursor(i == m.cursor))
			s.WriteString(" ")
			s.WriteString(renderPort(port, i == m.cursor))
			s.WriteString("\n")
		}
		s.WriteString("\n")
		s.WriteString(renderHint("↑/↓ move • enter select • r rescan • q quit"))
	case VIEW_LOADING:
		s.WriteString(mutedStyle.Render("Scanning ports..."))
	case VIEW_DONE:
		s.WriteString(successStyle.Render(iconSuccess + " " + m.portName))
	}

	return containerStyle.Render(s.String()) + "\n"
}
