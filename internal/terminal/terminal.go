package terminal

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type UIState int

const (
	VIEW_LIST_PORTS UIState = iota
	VIEW_LOADING
	VIEW_DONE
)

var (
	ErrNoPorts   = errors.New("no serial ports found")
	ErrCancelled = errors.New("port selection cancelled")
)

type PortLister func() ([]string, error)

type portsMsg []string
type portsErrorMsg error

// defines the internal state of the TUI
type model struct {
	lister PortLister

	uiState UIState
	cursor  int
	err     error

	potentialPorts []string
	portName       string
	cancelled      bool
}

// PickPort lets the operator choose one of the ports returned by lister.
func PickPort(lister PortLister, in io.Reader, out io.Writer, logger *zap.Logger) (string, error) {
	ports, err := lister()
	if err != nil {
		return "", fmt.Errorf("list serial ports: %w", err)
	}
	if len(ports) == 0 {
		return "", ErrNoPorts
	}

	final, err := tea.NewProgram(initialModel(lister, ports), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		logger.Error("Error running port picker", zap.Error(err))
		return "", err
	}

	m := final.(model)
	if m.cancelled || m.portName == "" {
		return "", ErrCancelled
	}

	logger.Info("Selected serial port", zap.String("portName", m.portName))
	return m.portName, nil
}

func initialModel(lister PortLister, ports []string) model {
	return model{
		lister:         lister,
		uiState:        VIEW_LIST_PORTS,
		potentialPorts: ports,
	}
}

func refreshPorts(lister PortLister) tea.Cmd {
	return func() tea.Msg {
		ports, err := lister()
		if err != nil {
			return portsErrorMsg(err)
		}
		return portsMsg(ports)
	}
}

func (m model) Init() tea.Cmd {
	return nil
}
