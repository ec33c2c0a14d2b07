// Package tui provides an interactive progress view for builds.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/sob/internal/core/domain"
)

const (
	listWidthRatio     = 0.3
	logPaneBorderWidth = 4
)

// TargetNode is one row of the target list.
type TargetNode struct {
	Name    string
	Command string
	Status  domain.BuildStatus
	Outcome domain.Outcome
	Term    *Vterm
}

// Model is the Bubble Tea model of the progress view.
type Model struct {
	Targets    []*TargetNode
	targetMap  map[string]*TargetNode
	Selected   int
	ListOffset int
	ListHeight int
	LogWidth   int
	LogHeight  int
	// FollowMode moves the selection to every target that starts.
	FollowMode bool
	// Done is set once the build is over.
	Done bool
	Err  error
}

// NewModel creates a model listing targets in execution order.
func NewModel(targets []string) *Model {
	m := &Model{
		Targets:    make([]*TargetNode, len(targets)),
		targetMap:  make(map[string]*TargetNode, len(targets)),
		FollowMode: true,
	}
	for i, name := range targets {
		m.Targets[i] = &TargetNode{Name: name, Term: NewVterm()}
		m.targetMap[name] = m.Targets[i]
	}
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // message dispatch
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		listWidth := int(float64(msg.Width) * listWidthRatio)
		m.LogWidth = max(msg.Width-listWidth-logPaneBorderWidth, 1)
		m.LogHeight = max(msg.Height-lipgloss.Height(titleStyle.Render("LOGS")), 1)
		m.ListHeight = max(msg.Height-lipgloss.Height(titleStyle.Render("TARGETS")+"\n\n"), 1)
		for _, node := range m.Targets {
			node.Term.Resize(m.LogWidth, m.LogHeight)
		}
		m.ensureVisible()

	case MsgStart:
		node := m.node(msg.Target)
		node.Status = domain.StatusInProgress
		node.Command = msg.Command
		_, _ = node.Term.Write([]byte("$ " + msg.Command + "\r\n"))
		if m.FollowMode {
			m.selectTarget(msg.Target)
		}

	case MsgOutput:
		_, _ = m.node(msg.Target).Term.Write(msg.Data)

	case MsgFinish:
		node := m.node(msg.Target)
		node.Status = msg.Outcome.Status
		node.Outcome = msg.Outcome

	case MsgDone:
		m.Done = true
		m.Err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "k", "up":
		if m.Selected > 0 {
			m.Selected--
			m.FollowMode = false
			m.ensureVisible()
		}
	case "j", "down":
		if m.Selected < len(m.Targets)-1 {
			m.Selected++
			m.FollowMode = false
			m.ensureVisible()
		}
	case "esc":
		m.FollowMode = true
		for i, node := range m.Targets {
			if node.Status == domain.StatusInProgress {
				m.Selected = i
				break
			}
		}
		m.ensureVisible()
		if node := m.selected(); node != nil {
			node.Term.ScrollToBottom()
		}
	case "pgup":
		if node := m.selected(); node != nil {
			node.Term.Scroll(-node.Term.Height())
		}
	case "pgdown":
		if node := m.selected(); node != nil {
			node.Term.Scroll(node.Term.Height())
		}
	}
	return nil
}

// node returns the row of target, adding one for targets that were not planned.
func (m *Model) node(target string) *TargetNode {
	if node, ok := m.targetMap[target]; ok {
		return node
	}
	node := &TargetNode{Name: target, Term: NewVterm()}
	if m.LogWidth > 0 {
		node.Term.Resize(m.LogWidth, m.LogHeight)
	}
	m.Targets = append(m.Targets, node)
	m.targetMap[target] = node
	return node
}

func (m *Model) selectTarget(target string) {
	for i, node := range m.Targets {
		if node.Name == target {
			m.Selected = i
			break
		}
	}
	m.ensureVisible()
}

func (m *Model) selected() *TargetNode {
	if m.Selected >= 0 && m.Selected < len(m.Targets) {
		return m.Targets[m.Selected]
	}
	return nil
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.Selected < m.ListOffset {
		m.ListOffset = m.Selected
	} else if m.Selected >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.Selected - m.ListHeight + 1
	}
}
